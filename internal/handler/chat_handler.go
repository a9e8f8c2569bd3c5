package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/service"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

type chatbotResponder interface {
	Respond(ctx context.Context, req dto.ChatbotRequest, caller *service.Caller) (models.Reply, error)
}

type chatResponder interface {
	Chat(ctx context.Context, req dto.ChatRequest, caller *service.Caller) (*dto.ChatResponse, error)
	History(ctx context.Context, userID int64) ([]models.ChatLogEntry, error)
}

// ChatHandler serves the keyword chatbot and the NLU chat endpoints.
type ChatHandler struct {
	chatbot chatbotResponder
	chat    chatResponder
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chatbot chatbotResponder, chat chatResponder) *ChatHandler {
	return &ChatHandler{chatbot: chatbot, chat: chat}
}

// Chatbot godoc
// @Summary Ask the keyword chatbot
// @Description Classifies the message and answers with text plus structured data. Lookup failures degrade to fallback text with 200.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param payload body dto.ChatbotRequest true "Message"
// @Success 200 {object} models.Reply
// @Failure 400 {object} response.Envelope
// @Router /chatbot [post]
func (h *ChatHandler) Chatbot(c *gin.Context) {
	var req dto.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	reply, err := h.chatbot.Respond(c.Request.Context(), req, callerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, reply)
}

// ChatbotStatus godoc
// @Summary Chatbot status
// @Tags Chatbot
// @Produce json
// @Success 200 {object} dto.ChatbotStatusResponse
// @Router /chatbot [get]
func (h *ChatHandler) ChatbotStatus(c *gin.Context) {
	response.Raw(c, http.StatusOK, dto.ChatbotStatusResponse{OK: true, Endpoint: "/chatbot", Method: http.MethodPost})
}

// Chat godoc
// @Summary Chat with NLU intents
// @Description Labels the message through the NLU server, adds sentiment and a role-based table, and stores the exchange.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	res, err := h.chat.Chat(c.Request.Context(), req, callerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}

// History godoc
// @Summary Chat history
// @Tags Chatbot
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /chat/{user_id} [get]
func (h *ChatHandler) History(c *gin.Context) {
	userID, err := int64Param(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.chat.History(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
