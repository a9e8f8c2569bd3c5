package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const eventColumns = `event_id, title, description, event_date, event_time, location, event_type, is_active, created_by, max_participants, current_participants`

// EventRepository manages college events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListUpcoming returns active events dated on or after from, soonest first.
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM events WHERE is_active = TRUE AND event_date >= $1 ORDER BY event_date, event_id LIMIT %d`, eventColumns, limit)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, from); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// Create inserts a new event and sets its identifier.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	const query = `INSERT INTO events (title, description, event_date, event_time, location, event_type, is_active, created_by, max_participants, current_participants)
        VALUES (:title, :description, :event_date, :event_time, :location, :event_type, :is_active, :created_by, :max_participants, 0) RETURNING event_id`
	rows, err := r.db.NamedQueryContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&event.ID); err != nil {
			return fmt.Errorf("scan event id: %w", err)
		}
	}
	return rows.Err()
}

// Deactivate hides an event. It reports whether a row was changed.
func (r *EventRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE events SET is_active = FALSE WHERE event_id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deactivate event: %w", err)
	}
	return affected > 0, nil
}
