package models

// Subject is a course taught to a class.
type Subject struct {
	ID          int64   `db:"subject_id" json:"subject_id"`
	ClassID     int64   `db:"class_id" json:"class_id"`
	SubjectName string  `db:"subject_name" json:"subject_name"`
	SubjectCode *string `db:"subject_code" json:"subject_code,omitempty"`
	Credits     *int    `db:"credits" json:"credits,omitempty"`
}
