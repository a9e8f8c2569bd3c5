package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type notificationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
	CreateMany(ctx context.Context, userIDs []int64, title, message string, kind models.NotificationType) (int, error)
}

type recipientLister interface {
	ListIDs(ctx context.Context, role *models.UserRole) ([]int64, error)
}

// NotificationService delivers announcements to users.
type NotificationService struct {
	repo       notificationRepository
	recipients recipientLister
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationRepository, recipients recipientLister, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, recipients: recipients, validator: validate, logger: logger}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if items == nil {
		items = []models.Notification{}
	}
	return items, nil
}

// UnreadCount counts the user's unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notifications")
	}
	return count, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	changed, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notification")
	}
	if !changed {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// Create notifies one user, or every active user of a role when no user is given.
func (s *NotificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	kind := req.Type
	if kind == "" {
		kind = models.NotificationInfo
	}

	var userIDs []int64
	if req.UserID != nil {
		userIDs = []int64{*req.UserID}
	} else {
		ids, err := s.recipients.ListIDs(ctx, req.Role)
		if err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve recipients")
		}
		userIDs = ids
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	created, err := s.repo.CreateMany(ctx, userIDs, strings.TrimSpace(req.Title), strings.TrimSpace(req.Message), kind)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notifications")
	}
	s.logger.Info("notifications created", zap.Int("count", created), zap.String("type", string(kind)))
	return created, nil
}
