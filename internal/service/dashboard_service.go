package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type dashboardStatsRepository interface {
	Stats(ctx context.Context, today time.Time) (*models.DashboardStats, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService serves the admin totals from cache when it can.
type DashboardService struct {
	repo   dashboardStatsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Repo    dashboardStatsRepository
	Cache   *CacheService
	Metrics *MetricsService
	Logger  *zap.Logger
	Config  DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:    params.Repo,
		cache:   params.Cache,
		metrics: params.Metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Stats returns the college totals and reports whether they came from cache.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool, error) {
	today := truncateDay(s.now())
	key := cacheKey(cacheKeyDashboard, "stats", today.Format(dateLayout))

	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	stats, err := s.repo.Stats(ctx, today)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard stats")
	}
	s.metrics.ObserveDBQuery("dashboard_stats", time.Since(start))
	stats.GeneratedAt = s.now().UTC()

	if err := s.cache.Set(ctx, key, stats, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("dashboard stats not cached", zap.Error(err))
	}
	return stats, false, nil
}
