package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

type chatTableStudents interface {
	FindByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
}

// studentsTableLimit caps the admin student table.
const studentsTableLimit = 100

func columns(pairs ...string) []models.TableColumn {
	cols := make([]models.TableColumn, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		cols = append(cols, models.TableColumn{Key: pairs[i], Label: pairs[i+1]})
	}
	return cols
}

func rupees(v float64) string {
	return "₹" + formatAmount(v, 2)
}

func percentText(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// tableFor picks the role-based table for an NLU intent name. A nil table
// means there is nothing to show.
func (s *ChatService) tableFor(ctx context.Context, intent string, role models.UserRole, userID *int64) (*models.Table, error) {
	name := strings.ToLower(intent)
	switch {
	case strings.Contains(name, "marks"):
		if role.IsAdmin() {
			return s.adminMarksTable(ctx)
		}
		return s.ownTable(ctx, userID, s.studentMarksTable)
	case strings.Contains(name, "attendance"):
		if role.IsAdmin() {
			return s.adminAttendanceTable(ctx)
		}
		return s.ownTable(ctx, userID, s.studentAttendanceTable)
	case strings.Contains(name, "fee"):
		if role.IsAdmin() {
			return s.adminFeesTable(ctx)
		}
		return s.ownTable(ctx, userID, s.studentFeesTable)
	case strings.Contains(name, "student"):
		if role.IsAdmin() {
			return s.studentsTable(ctx)
		}
	}
	return nil, nil
}

func (s *ChatService) ownTable(ctx context.Context, userID *int64, build func(context.Context, *models.StudentDetail) (*models.Table, error)) (*models.Table, error) {
	if userID == nil {
		return nil, nil
	}
	student, err := s.students.FindByUserID(ctx, *userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return build(ctx, student)
}

func (s *ChatService) adminMarksTable(ctx context.Context) (*models.Table, error) {
	rows, err := s.marks.Overview(ctx, "")
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title:   "Marks Overview - All Classes",
		Columns: columns("class_name", "Class", "roll_no", "Roll No", "name", "Name", "marks", "Marks", "percentage", "%"),
	}
	for _, row := range rows {
		if row.MarkCount == 0 {
			continue
		}
		table.Rows = append(table.Rows, map[string]string{
			"class_name": row.ClassName,
			"roll_no":    row.RollNo,
			"name":       row.Name,
			"marks":      formatAmount(row.Obtained, 1) + "/" + formatAmount(row.Total, 1),
			"percentage": percentText(row.Percentage()),
		})
	}
	return nonEmpty(table), nil
}

func (s *ChatService) studentMarksTable(ctx context.Context, student *models.StudentDetail) (*models.Table, error) {
	marks, err := s.marks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title:   "Your Marks Overview",
		Columns: columns("subject", "Subject", "marks", "Marks Obtained", "percentage", "Percentage"),
	}
	for _, mark := range marks {
		table.Rows = append(table.Rows, map[string]string{
			"subject":    mark.SubjectName,
			"marks":      formatAmount(mark.ObtainedMarks, 1) + "/" + formatAmount(mark.TotalMarks, 1),
			"percentage": percentText(mark.Percentage()),
		})
	}
	return nonEmpty(table), nil
}

func (s *ChatService) adminAttendanceTable(ctx context.Context) (*models.Table, error) {
	rows, err := s.attendance.Overview(ctx, "")
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title:   "Attendance Overview - All Classes",
		Columns: columns("class_name", "Class", "roll_no", "Roll No", "name", "Name", "attendance", "Attendance", "percentage", "%"),
	}
	for _, row := range rows {
		if row.RecordCount == 0 {
			continue
		}
		table.Rows = append(table.Rows, map[string]string{
			"class_name": row.ClassName,
			"roll_no":    row.RollNo,
			"name":       row.Name,
			"attendance": fmt.Sprintf("%d/%d", row.Present, row.Total),
			"percentage": percentText(row.Percentage()),
		})
	}
	return nonEmpty(table), nil
}

func (s *ChatService) studentAttendanceTable(ctx context.Context, student *models.StudentDetail) (*models.Table, error) {
	summaries, err := s.attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title:   "Your Attendance Overview",
		Columns: columns("subject", "Subject", "present", "Present", "percentage", "Attendance %"),
	}
	for _, summary := range summaries {
		table.Rows = append(table.Rows, map[string]string{
			"subject":    summary.SubjectName,
			"present":    fmt.Sprintf("%d/%d", summary.PresentCount, summary.TotalClasses),
			"percentage": percentText(models.AttendancePercentage(summary.PresentCount, summary.TotalClasses)),
		})
	}
	return nonEmpty(table), nil
}

func (s *ChatService) adminFeesTable(ctx context.Context) (*models.Table, error) {
	rows, err := s.fees.Overview(ctx, "")
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title: "Fees Overview - All Students",
		Columns: columns("class_name", "Class", "roll_no", "Roll No", "name", "Name",
			"total", "Total Fees", "paid", "Paid", "remaining", "Remaining", "status", "Status"),
	}
	for _, row := range rows {
		if row.FeeID == nil {
			continue
		}
		var fee models.Fee
		fee.ApplyAmounts(derefFloat(row.TotalAmount), derefFloat(row.PaidAmount))
		table.Rows = append(table.Rows, map[string]string{
			"class_name": row.ClassName,
			"roll_no":    row.RollNo,
			"name":       row.Name,
			"total":      rupees(fee.TotalAmount),
			"paid":       rupees(fee.PaidAmount),
			"remaining":  rupees(fee.DueAmount),
			"status":     string(fee.PaymentStatus),
		})
	}
	return nonEmpty(table), nil
}

func (s *ChatService) studentFeesTable(ctx context.Context, student *models.StudentDetail) (*models.Table, error) {
	fee, err := s.fees.GetByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	fee.ApplyAmounts(fee.TotalAmount, fee.PaidAmount)
	return &models.Table{
		Title: "Your Fee Details",
		Columns: columns("fee_type", "Fee Type", "total", "Total Amount", "paid", "Paid Amount",
			"remaining", "Remaining", "status", "Status"),
		Rows: []map[string]string{{
			"fee_type":  "Total Fees",
			"total":     rupees(fee.TotalAmount),
			"paid":      rupees(fee.PaidAmount),
			"remaining": rupees(fee.DueAmount),
			"status":    string(fee.PaymentStatus),
		}},
	}, nil
}

func (s *ChatService) studentsTable(ctx context.Context) (*models.Table, error) {
	students, _, err := s.students.List(ctx, models.StudentFilter{Page: 1, PageSize: studentsTableLimit})
	if err != nil {
		return nil, err
	}
	table := &models.Table{
		Title:   "All Students",
		Columns: columns("roll_no", "Roll No", "name", "Name", "email", "Email", "contact", "Contact", "class", "Class"),
	}
	for _, student := range students {
		table.Rows = append(table.Rows, map[string]string{
			"roll_no": student.RollNo,
			"name":    student.Name,
			"email":   student.Email,
			"contact": orDefault(student.ContactNo, "-"),
			"class":   student.ClassName,
		})
	}
	return nonEmpty(table), nil
}

func nonEmpty(table *models.Table) *models.Table {
	if len(table.Rows) == 0 {
		return nil
	}
	return table
}
