package models

import "time"

// Event is a college event shown to students.
type Event struct {
	ID          int64     `db:"event_id" json:"event_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	EventTime   *string   `db:"event_time" json:"event_time,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	EventType   string    `db:"event_type" json:"event_type"`
	Active      bool      `db:"is_active" json:"is_active"`
	CreatedBy   *int64    `db:"created_by" json:"created_by,omitempty"`

	// MaxParticipants caps registrations; nil means unlimited.
	MaxParticipants     *int `db:"max_participants" json:"max_participants,omitempty"`
	CurrentParticipants int  `db:"current_participants" json:"current_participants"`
}

// EventRegistration records a student signed up for an event.
type EventRegistration struct {
	ID           int64     `db:"registration_id" json:"registration_id"`
	EventID      int64     `db:"event_id" json:"event_id"`
	StudentID    int64     `db:"student_id" json:"student_id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// RegisteredEvent is a registration joined with its event.
type RegisteredEvent struct {
	RegistrationID int64     `db:"registration_id" json:"id"`
	EventID        int64     `db:"event_id" json:"event_id"`
	Title          string    `db:"title" json:"title"`
	EventDate      time.Time `db:"event_date" json:"event_date"`
	EventTime      *string   `db:"event_time" json:"event_time"`
	Location       *string   `db:"location" json:"location"`
	RegisteredAt   time.Time `db:"registered_at" json:"registered_at"`
}
