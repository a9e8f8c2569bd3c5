package dto

import (
	"time"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// ChatbotRequest is the POST /chatbot payload.
type ChatbotRequest struct {
	Message   string `json:"message"`
	StudentID *int64 `json:"student_id,omitempty"`
	UserID    *int64 `json:"user_id,omitempty"`
}

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Message      string `json:"message"`
	UserID       *int64 `json:"user_id,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
}

// ChatSentiment reports the scored mood of the message.
type ChatSentiment struct {
	Polarity            float64 `json:"polarity"`
	Sentiment           string  `json:"sentiment"`
	HasEmpatheticPrefix bool    `json:"has_empathetic_prefix"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	MessageID   int64                  `json:"message_id"`
	Response    string                 `json:"response"`
	Intent      string                 `json:"intent"`
	Confidence  float64                `json:"confidence"`
	Suggestions []string               `json:"suggestions"`
	Parameters  map[string]interface{} `json:"parameters"`
	Timestamp   time.Time              `json:"timestamp"`
	SessionID   string                 `json:"session_id"`
	Sentiment   ChatSentiment          `json:"sentiment"`
	Table       *models.Table          `json:"table,omitempty"`
}

// ChatbotStatusResponse answers GET /chatbot.
type ChatbotStatusResponse struct {
	OK       bool   `json:"ok"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}
