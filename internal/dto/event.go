package dto

// CreateEventRequest is the POST /events payload.
type CreateEventRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	EventDate       string  `json:"event_date" validate:"required"`
	EventTime       *string `json:"event_time,omitempty"`
	Location        *string `json:"location,omitempty"`
	EventType       string  `json:"event_type" validate:"omitempty,oneof=workshop seminar hackathon club_event competition conference cultural sports academic general"`
	MaxParticipants *int    `json:"max_participants,omitempty" validate:"omitempty,gt=0"`
}
