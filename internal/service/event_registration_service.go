package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/repository"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type registrationStore interface {
	Register(ctx context.Context, eventID, studentID int64, at time.Time) (*models.EventRegistration, error)
	Cancel(ctx context.Context, eventID, studentID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.RegisteredEvent, error)
}

type registrantLookup interface {
	FindByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
}

// EventRegistrationService signs the calling student up for events.
type EventRegistrationService struct {
	regs     registrationStore
	students registrantLookup
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
}

// NewEventRegistrationService constructs an EventRegistrationService.
func NewEventRegistrationService(regs registrationStore, students registrantLookup, cache *CacheService, logger *zap.Logger) *EventRegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRegistrationService{regs: regs, students: students, cache: cache, logger: logger, now: time.Now}
}

// Register signs up the student owned by userID.
func (s *EventRegistrationService) Register(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	registration, err := s.regs.Register(ctx, eventID, student.ID, s.now().UTC())
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return nil, appErrors.Clone(appErrors.ErrConflict, "already registered for this event")
	case errors.Is(err, repository.ErrEventFull):
		return nil, appErrors.Clone(appErrors.ErrConflict, "event is full")
	case err != nil:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register for event")
	}
	s.invalidate(ctx)
	s.logger.Info("event registration", zap.Int64("event_id", eventID), zap.Int64("student_id", student.ID))
	return registration, nil
}

// Cancel withdraws the registration of the student owned by userID.
func (s *EventRegistrationService) Cancel(ctx context.Context, eventID, userID int64) error {
	student, err := s.student(ctx, userID)
	if err != nil {
		return err
	}
	removed, err := s.regs.Cancel(ctx, eventID, student.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel registration")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	s.invalidate(ctx)
	return nil
}

// Mine lists the registrations of the student owned by userID. Users without
// a student row get an empty list.
func (s *EventRegistrationService) Mine(ctx context.Context, userID int64) ([]models.RegisteredEvent, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.RegisteredEvent{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	items, err := s.regs.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	if items == nil {
		items = []models.RegisteredEvent{}
	}
	return items, nil
}

func (s *EventRegistrationService) student(ctx context.Context, userID int64) (*models.StudentDetail, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// invalidate drops cached listings, which carry the participant count.
func (s *EventRegistrationService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyEvents); err != nil {
		s.logger.Warn("failed to invalidate events cache", zap.Error(err))
	}
}
