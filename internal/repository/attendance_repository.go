package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// AttendanceRepository reads and writes per-subject attendance summaries.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByStudent returns the attendance rows of a student joined with subject names.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceSummary, error) {
	const query = `SELECT a.attendance_id, a.student_id, a.subject_id, sub.subject_name, sub.subject_code,
        a.present_count, a.absent_count, a.late_count, a.total_classes, a.attendance_percentage, a.academic_year
        FROM attendance a JOIN subjects sub ON sub.subject_id = a.subject_id
        WHERE a.student_id = $1 ORDER BY a.attendance_id`
	var rows []models.AttendanceSummary
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// Overview sums attendance per student, optionally limited to classes whose name contains className.
func (r *AttendanceRepository) Overview(ctx context.Context, className string) ([]models.AttendanceOverview, error) {
	query := `SELECT s.student_id, c.class_name, s.roll_no, u.name,
        COALESCE(SUM(a.present_count), 0) AS present, COALESCE(SUM(a.total_classes), 0) AS total, COUNT(a.attendance_id) AS record_count
        FROM students s
        JOIN users u ON u.user_id = s.user_id
        JOIN classes c ON c.class_id = s.class_id
        LEFT JOIN attendance a ON a.student_id = s.student_id`
	var args []interface{}
	if className != "" {
		query += " WHERE c.class_name ILIKE $1"
		args = append(args, "%"+className+"%")
	}
	query += " GROUP BY s.student_id, c.class_name, s.roll_no, u.name ORDER BY s.student_id"
	var rows []models.AttendanceOverview
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("attendance overview: %w", err)
	}
	return rows, nil
}

// Upsert stores a summary, replacing the counts for the same student and subject.
func (r *AttendanceRepository) Upsert(ctx context.Context, summary *models.AttendanceSummary) error {
	const query = `INSERT INTO attendance (student_id, subject_id, present_count, absent_count, late_count, total_classes, attendance_percentage, academic_year)
        VALUES (:student_id, :subject_id, :present_count, :absent_count, :late_count, :total_classes, :attendance_percentage, :academic_year)
        ON CONFLICT (student_id, subject_id) DO UPDATE SET present_count = EXCLUDED.present_count, absent_count = EXCLUDED.absent_count,
        total_classes = EXCLUDED.total_classes, attendance_percentage = EXCLUDED.attendance_percentage, academic_year = EXCLUDED.academic_year`
	if _, err := r.db.NamedExecContext(ctx, query, summary); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}
