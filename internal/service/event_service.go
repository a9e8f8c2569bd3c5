package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type eventRepository interface {
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Deactivate(ctx context.Context, id int64) (bool, error)
}

// EventServiceConfig tunes the upcoming-events read.
type EventServiceConfig struct {
	CacheTTL time.Duration
	Limit    int
}

// EventService lists and manages college events behind the events cache.
type EventService struct {
	repo      eventRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       EventServiceConfig
	now       func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg EventServiceConfig) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	return &EventService{repo: repo, cache: cache, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// Upcoming returns active events from today on, soonest first.
func (s *EventService) Upcoming(ctx context.Context) ([]models.Event, error) {
	today := truncateDay(s.now())
	key := cacheKey(cacheKeyEvents, "upcoming", today.Format(dateLayout), s.cfg.Limit)
	events, err := cachedLoad(ctx, s.cache, key, s.cfg.CacheTTL, func(ctx context.Context) ([]models.Event, error) {
		events, err := s.repo.ListUpcoming(ctx, today, s.cfg.Limit)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
		}
		if events == nil {
			events = []models.Event{}
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Create validates and stores a new event, then drops cached listings.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest, createdBy int64) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
	}

	eventType := strings.ToLower(strings.TrimSpace(req.EventType))
	if eventType == "" {
		eventType = "general"
	}
	event := &models.Event{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		EventDate:       eventDate,
		EventTime:       req.EventTime,
		Location:        req.Location,
		EventType:       eventType,
		Active:          true,
		CreatedBy:       &createdBy,
		MaxParticipants: req.MaxParticipants,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.invalidate(ctx)
	return event, nil
}

// Deactivate hides an event from listings.
func (s *EventService) Deactivate(ctx context.Context, id int64) error {
	changed, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate event")
	}
	if !changed {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyEvents); err != nil {
		s.logger.Warn("failed to invalidate events cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, cacheKeyDashboard); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
