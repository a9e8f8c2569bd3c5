package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
	"github.com/noah-isme/smartedu-api/pkg/nlu"
)

const (
	chatEndpoint      = "chat"
	nluFallbackIntent = "help_request"
	nluFallbackReply  = "I can help with fees, attendance, or events."
	chatHistoryLimit  = 50
)

// nluReplies are the canned answers for intents the NLU model labels.
var nluReplies = map[string]string{
	"greet":            "Hello! How can I help you today?",
	"fee_query":        "Here are your fee details:",
	"attendance_query": "Here is your attendance information:",
	"event_query":      "Here are the upcoming events:",
	"goodbye":          "Goodbye!",
	"bye":              "Goodbye!",
}

var defaultSuggestions = []string{"Course Information", "Events", "Announcements", "Help"}

var intentSuggestions = map[string][]string{
	"course_inquiry": {"Python Programming", "Web Development", "Database Design", "View All Courses"},
	"event_inquiry":  {"View Events", "Register for Event", "Event Details", "Upcoming Workshops"},
	"help_request":   {"Course Information", "Events", "Announcements", "Contact Support"},
	"greeting":       {"Course Information", "Events", "Help", "About SmartEdu"},
	"goodbye":        {},
}

var empatheticPrefixes = []string{
	"I understand this might be frustrating. ",
	"I can see you're having some concerns. ",
	"I'm here to help with whatever is troubling you. ",
	"I sense you might be feeling stressed about this. ",
	"I want to make sure I address your concerns properly. ",
}

type intentParser interface {
	Parse(ctx context.Context, text string) (*nlu.Result, error)
}

type chatLogStore interface {
	Create(ctx context.Context, entry *models.ChatLogEntry) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.ChatLogEntry, error)
}

// ChatService answers /chat with NLU intents, sentiment and role-based tables.
type ChatService struct {
	parser     intentParser
	sentiment  *SentimentAnalyzer
	picker     Picker
	users      chatUserLookup
	students   chatTableStudents
	marks      composerMarks
	attendance composerAttendance
	fees       composerFees
	logs       chatLogStore
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
	newSession func() string
}

// ChatServiceParams groups constructor dependencies.
type ChatServiceParams struct {
	Parser     intentParser
	Sentiment  *SentimentAnalyzer
	Picker     Picker
	Users      chatUserLookup
	Students   chatTableStudents
	Marks      composerMarks
	Attendance composerAttendance
	Fees       composerFees
	Logs       chatLogStore
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// NewChatService constructs a ChatService.
func NewChatService(params ChatServiceParams) *ChatService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	analyzer := params.Sentiment
	if analyzer == nil {
		analyzer = NewSentimentAnalyzer()
	}
	picker := params.Picker
	if picker == nil {
		picker = NewRandomPicker()
	}
	return &ChatService{
		parser:     params.Parser,
		sentiment:  analyzer,
		picker:     picker,
		users:      params.Users,
		students:   params.Students,
		marks:      params.Marks,
		attendance: params.Attendance,
		fees:       params.Fees,
		logs:       params.Logs,
		metrics:    params.Metrics,
		logger:     logger,
		now:        time.Now,
		newSession: uuid.NewString,
	}
}

// Chat labels the message, builds the reply and appends it to the chat log.
// NLU and table failures degrade; only validation and log writes fail.
func (s *ChatService) Chat(ctx context.Context, req dto.ChatRequest, caller *Caller) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message is required")
	}

	userID := req.UserID
	var role models.UserRole
	if caller != nil {
		id := caller.UserID
		userID = &id
		role = caller.Role
	} else if userID != nil {
		role = lookupUserRole(ctx, s.users, s.logger, *userID)
	}
	if role == "" {
		role = models.RoleStudent
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		if userID != nil {
			sessionID = fmt.Sprintf("smartedu-session-%d", *userID)
		} else {
			sessionID = "smartedu-session-" + s.newSession()
		}
	}

	sentiment := s.sentiment.Analyze(message)
	parsed, reply := s.detectIntent(ctx, message)

	prefix := ""
	if sentiment.Polarity < 0 {
		prefix = empatheticPrefixes[s.picker.Pick(len(empatheticPrefixes))]
	}

	table, err := s.tableFor(ctx, parsed.Intent, role, userID)
	if err != nil {
		s.logger.Warn("chat table lookup failed", zap.String("intent", parsed.Intent), zap.Error(err))
		s.metrics.RecordChatFallback(models.Intent(parsed.Intent))
		table = nil
	}

	entry := &models.ChatLogEntry{
		UserID:              userID,
		Message:             message,
		Response:            prefix + reply,
		Intent:              parsed.Intent,
		Confidence:          parsed.Confidence,
		SentimentPolarity:   sentiment.Polarity,
		SentimentLabel:      sentiment.Label,
		HasEmpatheticPrefix: prefix != "",
		Timestamp:           s.now().UTC(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "chat processing failed")
	}
	s.metrics.RecordChatIntent(chatEndpoint, models.Intent(parsed.Intent))

	return &dto.ChatResponse{
		MessageID:   entry.ID,
		Response:    entry.Response,
		Intent:      parsed.Intent,
		Confidence:  parsed.Confidence,
		Suggestions: suggestionsFor(parsed.Intent),
		Parameters:  parsed.Parameters,
		Timestamp:   entry.Timestamp,
		SessionID:   sessionID,
		Sentiment: dto.ChatSentiment{
			Polarity:            sentiment.Polarity,
			Sentiment:           sentiment.Label,
			HasEmpatheticPrefix: entry.HasEmpatheticPrefix,
		},
		Table: table,
	}, nil
}

// History lists the user's chat log, newest first.
func (s *ChatService) History(ctx context.Context, userID int64) ([]models.ChatLogEntry, error) {
	entries, err := s.logs.ListByUser(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chat history")
	}
	if entries == nil {
		entries = []models.ChatLogEntry{}
	}
	return entries, nil
}

// detectIntent asks the NLU server for the intent and falls back to
// help_request with zero confidence when it cannot answer.
func (s *ChatService) detectIntent(ctx context.Context, message string) (nlu.Result, string) {
	fallback := nlu.Result{
		Intent:     nluFallbackIntent,
		Parameters: map[string]interface{}{},
		QueryText:  message,
	}
	if s.parser == nil {
		return fallback, nluFallbackReply
	}

	start := time.Now()
	result, err := s.parser.Parse(ctx, message)
	s.metrics.ObserveNLURequest(time.Since(start))
	if err != nil {
		s.logger.Warn("nlu parse failed", zap.Error(err))
		return fallback, nluFallbackReply
	}

	parsed := *result
	if parsed.Intent == "" {
		parsed.Intent = nluFallbackIntent
	}
	if parsed.Parameters == nil {
		parsed.Parameters = map[string]interface{}{}
	}
	reply, ok := nluReplies[parsed.Intent]
	if !ok {
		reply = nluFallbackReply
	}
	return parsed, reply
}

func suggestionsFor(intent string) []string {
	if suggestions, ok := intentSuggestions[intent]; ok {
		return suggestions
	}
	return defaultSuggestions
}
