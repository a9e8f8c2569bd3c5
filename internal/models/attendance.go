package models

import "math"

// Attendance thresholds used to badge a percentage.
const (
	AttendanceGood     = 75.0
	AttendanceModerate = 60.0
	// DefaultTotalClasses is assumed when an update omits the class count.
	DefaultTotalClasses = 50
)

// AttendanceSummary is the pre-aggregated attendance of one student in one subject.
type AttendanceSummary struct {
	ID                   int64   `db:"attendance_id" json:"attendance_id"`
	StudentID            int64   `db:"student_id" json:"student_id"`
	SubjectID            int64   `db:"subject_id" json:"subject_id"`
	SubjectName          string  `db:"subject_name" json:"subject_name"`
	SubjectCode          *string `db:"subject_code" json:"subject_code,omitempty"`
	PresentCount         int     `db:"present_count" json:"present_count"`
	AbsentCount          int     `db:"absent_count" json:"absent_count"`
	LateCount            int     `db:"late_count" json:"late_count"`
	TotalClasses         int     `db:"total_classes" json:"total_classes"`
	AttendancePercentage float64 `db:"attendance_percentage" json:"attendance_percentage"`
	AcademicYear         string  `db:"academic_year" json:"academic_year"`
}

// AttendancePercentage returns present/total*100 rounded to two decimals, or 0 when total is 0.
func AttendancePercentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*100*100) / 100
}
