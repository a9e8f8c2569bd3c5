package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

const chatbotEndpoint = "chatbot"

type chatUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type replyComposer interface {
	Compose(ctx context.Context, req ComposeRequest) models.Reply
}

// Caller is the identity taken from a verified bearer token.
type Caller struct {
	UserID int64
	Role   models.UserRole
}

// ChatbotService answers the stateless keyword chatbot.
type ChatbotService struct {
	classifier *IntentClassifier
	composer   replyComposer
	users      chatUserLookup
	metrics    *MetricsService
	logger     *zap.Logger
}

// ChatbotServiceParams groups constructor dependencies.
type ChatbotServiceParams struct {
	Classifier *IntentClassifier
	Composer   replyComposer
	Users      chatUserLookup
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// NewChatbotService constructs a ChatbotService.
func NewChatbotService(params ChatbotServiceParams) *ChatbotService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier := params.Classifier
	if classifier == nil {
		classifier = NewIntentClassifier(nil)
	}
	return &ChatbotService{
		classifier: classifier,
		composer:   params.Composer,
		users:      params.Users,
		metrics:    params.Metrics,
		logger:     logger,
	}
}

// Respond classifies the message and composes the reply. Only an empty
// message is an error; lookup failures come back as fallback text.
func (s *ChatbotService) Respond(ctx context.Context, req dto.ChatbotRequest, caller *Caller) (models.Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return models.Reply{}, appErrors.Clone(appErrors.ErrValidation, "message is required")
	}

	compose := ComposeRequest{
		Message:   message,
		StudentID: req.StudentID,
		UserID:    req.UserID,
	}
	switch {
	case caller != nil:
		userID := caller.UserID
		compose.UserID = &userID
		compose.Role = caller.Role
		if !caller.Role.IsAdmin() {
			// token holders only ever see their own student row
			compose.StudentID = nil
		}
	case req.UserID != nil:
		compose.Role = lookupUserRole(ctx, s.users, s.logger, *req.UserID)
	}

	compose.Intent = s.classifier.Classify(message)
	reply := s.composer.Compose(ctx, compose)
	reply.Confidence = KeywordConfidence
	s.metrics.RecordChatIntent(chatbotEndpoint, reply.Intent)
	s.logger.Debug("chatbot reply",
		zap.String("intent", string(reply.Intent)),
		zap.Float64("confidence", reply.Confidence),
		zap.String("role", string(compose.Role)),
	)
	return reply, nil
}

// lookupUserRole reads the role of userID, or "" when it cannot be resolved.
func lookupUserRole(ctx context.Context, users chatUserLookup, logger *zap.Logger, userID int64) models.UserRole {
	if users == nil {
		return ""
	}
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("chat role lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return ""
	}
	return user.Role
}
