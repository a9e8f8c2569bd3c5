package models

import "time"

const (
	// DefaultMarksTotal is the paper total used when none is supplied.
	DefaultMarksTotal = 35.0
	// PassPercentage is the minimum percentage for a subject pass.
	PassPercentage = 35.0
)

// Mark is a student's score in one subject, joined with the subject catalogue.
type Mark struct {
	ID            int64      `db:"mark_id" json:"mark_id"`
	StudentID     int64      `db:"student_id" json:"student_id"`
	SubjectID     int64      `db:"subject_id" json:"subject_id"`
	TotalMarks    float64    `db:"total_marks" json:"total_marks"`
	ObtainedMarks float64    `db:"obtained_marks" json:"obtained_marks"`
	ExamDate      *time.Time `db:"exam_date" json:"exam_date,omitempty"`
	SubjectName   string     `db:"subject_name" json:"subject_name"`
	SubjectCode   *string    `db:"subject_code" json:"subject_code,omitempty"`
	Credits       *int       `db:"credits" json:"credits,omitempty"`
}

// Percentage returns obtained/total*100, or 0 for an empty paper.
func (m Mark) Percentage() float64 {
	if m.TotalMarks <= 0 {
		return 0
	}
	return m.ObtainedMarks / m.TotalMarks * 100
}

// Passed reports whether the mark clears the pass threshold.
func (m Mark) Passed() bool {
	return m.Percentage() >= PassPercentage
}
