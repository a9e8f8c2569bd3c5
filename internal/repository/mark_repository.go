package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const markColumns = `m.mark_id, m.student_id, m.subject_id, m.total_marks, m.obtained_marks, m.exam_date, sub.subject_name, sub.subject_code, sub.credits`

// MarkRepository reads and writes subject marks.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs a MarkRepository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// ListByStudent returns the marks of a student ordered by insertion.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Mark, error) {
	query := fmt.Sprintf(`SELECT %s FROM marks m JOIN subjects sub ON sub.subject_id = m.subject_id WHERE m.student_id = $1 ORDER BY m.mark_id`, markColumns)
	var marks []models.Mark
	if err := r.db.SelectContext(ctx, &marks, query, studentID); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// ListWithStudents returns every mark joined with its student, ordered by student.
func (r *MarkRepository) ListWithStudents(ctx context.Context) ([]models.StudentMark, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS student_name, s.roll_no FROM marks m
        JOIN subjects sub ON sub.subject_id = m.subject_id
        JOIN students s ON s.student_id = m.student_id
        JOIN users u ON u.user_id = s.user_id
        ORDER BY s.student_id, m.mark_id`, markColumns)
	var marks []models.StudentMark
	if err := r.db.SelectContext(ctx, &marks, query); err != nil {
		return nil, fmt.Errorf("list student marks: %w", err)
	}
	return marks, nil
}

// Overview sums marks per student, optionally limited to classes whose name contains className.
func (r *MarkRepository) Overview(ctx context.Context, className string) ([]models.MarkOverview, error) {
	query := `SELECT s.student_id, c.class_name, s.roll_no, u.name,
        COALESCE(SUM(m.obtained_marks), 0) AS obtained, COALESCE(SUM(m.total_marks), 0) AS total, COUNT(m.mark_id) AS mark_count
        FROM students s
        JOIN users u ON u.user_id = s.user_id
        JOIN classes c ON c.class_id = s.class_id
        LEFT JOIN marks m ON m.student_id = s.student_id`
	var args []interface{}
	if className != "" {
		query += " WHERE c.class_name ILIKE $1"
		args = append(args, "%"+className+"%")
	}
	query += " GROUP BY s.student_id, c.class_name, s.roll_no, u.name ORDER BY s.student_id"
	var rows []models.MarkOverview
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("marks overview: %w", err)
	}
	return rows, nil
}

// Upsert stores a mark, replacing any existing score for the same student and subject.
func (r *MarkRepository) Upsert(ctx context.Context, mark *models.Mark) error {
	const query = `INSERT INTO marks (student_id, subject_id, total_marks, obtained_marks, exam_date)
        VALUES (:student_id, :subject_id, :total_marks, :obtained_marks, :exam_date)
        ON CONFLICT (student_id, subject_id) DO UPDATE SET total_marks = EXCLUDED.total_marks, obtained_marks = EXCLUDED.obtained_marks, exam_date = EXCLUDED.exam_date
        RETURNING mark_id`
	rows, err := r.db.NamedQueryContext(ctx, query, mark)
	if err != nil {
		return fmt.Errorf("upsert mark: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&mark.ID); err != nil {
			return fmt.Errorf("scan mark id: %w", err)
		}
	}
	return rows.Err()
}
