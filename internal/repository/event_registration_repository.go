package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

var (
	// ErrEventNotFound is returned when the event is missing or inactive.
	ErrEventNotFound = errors.New("event not found")
	// ErrAlreadyRegistered is returned for a second registration by the same student.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrEventFull is returned once registrations reach max_participants.
	ErrEventFull = errors.New("event is full")
)

// EventRegistrationRepository signs students up for events and keeps the
// participant count on the event row in step.
type EventRegistrationRepository struct {
	db *sqlx.DB
}

// NewEventRegistrationRepository constructs an EventRegistrationRepository.
func NewEventRegistrationRepository(db *sqlx.DB) *EventRegistrationRepository {
	return &EventRegistrationRepository{db: db}
}

// Register adds studentID to the event. The event row is locked for the
// duration so the capacity check and the insert see the same count.
func (r *EventRegistrationRepository) Register(ctx context.Context, eventID, studentID int64, at time.Time) (*models.EventRegistration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var capacity sql.NullInt64
	if err := tx.GetContext(ctx, &capacity, `SELECT max_participants FROM events WHERE event_id = $1 AND is_active = TRUE FOR UPDATE`, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	var registered bool
	if err := tx.GetContext(ctx, &registered, `SELECT EXISTS(SELECT 1 FROM event_registrations WHERE event_id = $1 AND student_id = $2)`, eventID, studentID); err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	var count int64
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if capacity.Valid && count >= capacity.Int64 {
		return nil, ErrEventFull
	}

	registration := &models.EventRegistration{EventID: eventID, StudentID: studentID, RegisteredAt: at}
	if err := tx.GetContext(ctx, &registration.ID,
		`INSERT INTO event_registrations (event_id, student_id, registered_at) VALUES ($1, $2, $3) RETURNING registration_id`,
		eventID, studentID, at); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE events SET current_participants = $2 WHERE event_id = $1`, eventID, count+1); err != nil {
		return nil, fmt.Errorf("update participant count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}
	return registration, nil
}

// Cancel removes the registration of studentID. It reports whether one existed.
func (r *EventRegistrationRepository) Cancel(ctx context.Context, eventID, studentID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM event_registrations WHERE event_id = $1 AND student_id = $2`, eventID, studentID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	if affected == 0 {
		return false, nil
	}
	const recount = `UPDATE events SET current_participants = (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1) WHERE event_id = $1`
	if _, err := tx.ExecContext(ctx, recount, eventID); err != nil {
		return false, fmt.Errorf("update participant count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit cancel: %w", err)
	}
	return true, nil
}

// ListByStudent returns the events a student is registered for, soonest first.
func (r *EventRegistrationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.RegisteredEvent, error) {
	const query = `SELECT r.registration_id, r.event_id, e.title, e.event_date, e.event_time, e.location, r.registered_at
        FROM event_registrations r
        JOIN events e ON e.event_id = r.event_id
        WHERE r.student_id = $1
        ORDER BY e.event_date, r.registration_id`
	var items []models.RegisteredEvent
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return items, nil
}
