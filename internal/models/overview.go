package models

// StudentRow carries the identity columns shared by per-student overview rows.
type StudentRow struct {
	StudentID int64  `db:"student_id" json:"student_id"`
	ClassName string `db:"class_name" json:"class_name"`
	RollNo    string `db:"roll_no" json:"roll_no"`
	Name      string `db:"name" json:"name"`
}

// MarkOverview sums a student's marks across subjects.
type MarkOverview struct {
	StudentRow
	Obtained  float64 `db:"obtained" json:"obtained"`
	Total     float64 `db:"total" json:"total"`
	MarkCount int     `db:"mark_count" json:"mark_count"`
}

// Percentage returns obtained/total*100, or 0 without marks.
func (m MarkOverview) Percentage() float64 {
	if m.Total <= 0 {
		return 0
	}
	return m.Obtained / m.Total * 100
}

// AttendanceOverview sums a student's attendance across subjects.
type AttendanceOverview struct {
	StudentRow
	Present     int `db:"present" json:"present"`
	Total       int `db:"total" json:"total"`
	RecordCount int `db:"record_count" json:"record_count"`
}

// Percentage returns present/total*100, or 0 without classes.
func (a AttendanceOverview) Percentage() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Present) / float64(a.Total) * 100
}

// FeeOverview pairs a student with the fee account when one exists.
type FeeOverview struct {
	StudentRow
	FeeID         *int64         `db:"fee_id" json:"fee_id,omitempty"`
	TotalAmount   *float64       `db:"total_amount" json:"total_amount,omitempty"`
	PaidAmount    *float64       `db:"paid_amount" json:"paid_amount,omitempty"`
	DueAmount     *float64       `db:"due_amount" json:"due_amount,omitempty"`
	PaymentStatus *PaymentStatus `db:"payment_status" json:"payment_status,omitempty"`
}

// StudentMark is one mark row joined with the student it belongs to.
type StudentMark struct {
	Mark
	StudentName string `db:"student_name" json:"student_name"`
	RollNo      string `db:"roll_no" json:"roll_no"`
}
