package models

import "time"

// DashboardStats summarises the college for the admin dashboard.
type DashboardStats struct {
	TotalStudents  int       `db:"total_students" json:"total_students"`
	TotalClasses   int       `db:"total_classes" json:"total_classes"`
	TotalSubjects  int       `db:"total_subjects" json:"total_subjects"`
	TotalEvents    int       `db:"total_events" json:"total_events"`
	UpcomingEvents int       `db:"upcoming_events" json:"upcoming_events"`
	UnpaidFees     int       `db:"unpaid_fees" json:"unpaid_fees"`
	PartialFees    int       `db:"partial_fees" json:"partial_fees"`
	GeneratedAt    time.Time `db:"-" json:"generated_at"`
}
