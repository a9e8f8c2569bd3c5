package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// DashboardRepository aggregates college-wide counters.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats counts students, classes, subjects, events and outstanding fees.
func (r *DashboardRepository) Stats(ctx context.Context, today time.Time) (*models.DashboardStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS total_students,
        (SELECT COUNT(*) FROM classes) AS total_classes,
        (SELECT COUNT(*) FROM subjects) AS total_subjects,
        (SELECT COUNT(*) FROM events WHERE is_active = TRUE) AS total_events,
        (SELECT COUNT(*) FROM events WHERE is_active = TRUE AND event_date >= $1) AS upcoming_events,
        (SELECT COUNT(*) FROM fees WHERE payment_status = 'Unpaid') AS unpaid_fees,
        (SELECT COUNT(*) FROM fees WHERE payment_status = 'Partial') AS partial_fees`
	var stats models.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, today); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
