package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const (
	studentDetailColumns = `s.student_id, s.user_id, s.roll_no, s.class_id, s.admission_year, u.name, u.email, u.contact_no, c.class_name`
	studentDetailFrom    = `FROM students s JOIN users u ON u.user_id = s.user_id JOIN classes c ON c.class_id = s.class_id`
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	var conditions []string
	var args []interface{}

	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("c.class_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.ClassName+"%")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(u.name) LIKE $%d OR LOWER(s.roll_no) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base := studentDetailFrom
	if len(conditions) > 0 {
		base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.student_id LIMIT %d OFFSET %d", studentDetailColumns, base, size, offset)
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	return r.findOne(ctx, "s.student_id = $1", id)
}

// FindByUserID resolves the student linked to a user account.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error) {
	return r.findOne(ctx, "s.user_id = $1", userID)
}

// FindByRollNo returns the student whose roll number equals rollNo.
func (r *StudentRepository) FindByRollNo(ctx context.Context, rollNo string) (*models.StudentDetail, error) {
	return r.findOne(ctx, "UPPER(s.roll_no) = UPPER($1)", rollNo)
}

// FindByRollNoLike returns the first student whose roll number contains fragment.
func (r *StudentRepository) FindByRollNoLike(ctx context.Context, fragment string) (*models.StudentDetail, error) {
	return r.findOne(ctx, "s.roll_no ILIKE $1", "%"+fragment+"%")
}

// FindByNameLike returns the first student whose display name contains fragment.
func (r *StudentRepository) FindByNameLike(ctx context.Context, fragment string) (*models.StudentDetail, error) {
	return r.findOne(ctx, "u.name ILIKE $1", "%"+fragment+"%")
}

func (r *StudentRepository) findOne(ctx context.Context, condition string, arg interface{}) (*models.StudentDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY s.student_id LIMIT 1", studentDetailColumns, studentDetailFrom, condition)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &detail, nil
}
