package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// MarkEntry sets one subject's marks. TotalMarks defaults to 35.
type MarkEntry struct {
	SubjectID     int64    `json:"subject_id" validate:"required,gt=0"`
	ObtainedMarks float64  `json:"obtained_marks" validate:"gte=0,lte=35"`
	TotalMarks    *float64 `json:"total_marks,omitempty" validate:"omitempty,gt=0"`
}

// Total is the supplied paper total or the default.
func (e MarkEntry) Total() float64 {
	if e.TotalMarks != nil {
		return *e.TotalMarks
	}
	return models.DefaultMarksTotal
}

// UpdateMarksRequest is the PUT /admin/students/:id/marks payload.
type UpdateMarksRequest struct {
	Marks []MarkEntry `json:"marks" validate:"required,min=1,dive"`
}

// AttendanceEntry sets one subject's attendance. TotalClasses defaults to 50.
type AttendanceEntry struct {
	SubjectID    int64 `json:"subject_id" validate:"required,gt=0"`
	PresentCount int   `json:"present_count" validate:"gte=0"`
	TotalClasses *int  `json:"total_classes,omitempty" validate:"omitempty,gt=0"`
}

// Total is the supplied class count or the default.
func (e AttendanceEntry) Total() int {
	if e.TotalClasses != nil {
		return *e.TotalClasses
	}
	return models.DefaultTotalClasses
}

// UpdateAttendanceRequest is the PUT /admin/students/:id/attendance payload.
type UpdateAttendanceRequest struct {
	Attendance []AttendanceEntry `json:"attendance" validate:"required,min=1,dive"`
}

// UpdateFeesRequest is the PUT /admin/students/:id/fees payload.
type UpdateFeesRequest struct {
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
	PaidAmount  float64 `json:"paid_amount" validate:"gte=0,ltefield=TotalAmount"`
}

// RegisterValidations adds the checks of an entry against its effective total.
func RegisterValidations(v *validator.Validate) {
	v.RegisterStructValidation(markEntryValidation, MarkEntry{})
	v.RegisterStructValidation(attendanceEntryValidation, AttendanceEntry{})
}

func markEntryValidation(sl validator.StructLevel) {
	entry := sl.Current().Interface().(MarkEntry)
	if entry.ObtainedMarks > entry.Total() {
		sl.ReportError(entry.ObtainedMarks, "ObtainedMarks", "obtained_marks", "ltetotal", "")
	}
}

func attendanceEntryValidation(sl validator.StructLevel) {
	entry := sl.Current().Interface().(AttendanceEntry)
	if entry.PresentCount > entry.Total() {
		sl.ReportError(entry.PresentCount, "PresentCount", "present_count", "ltetotal", "")
	}
}
