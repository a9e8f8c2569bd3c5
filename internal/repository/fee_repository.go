package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// FeeRepository reads and writes student fee accounts.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// GetByStudent returns the fee account of a student.
func (r *FeeRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Fee, error) {
	const query = `SELECT fee_id, student_id, total_amount, paid_amount, due_amount, payment_status, last_payment_date FROM fees WHERE student_id = $1 LIMIT 1`
	var fee models.Fee
	if err := r.db.GetContext(ctx, &fee, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get fee: %w", err)
	}
	return &fee, nil
}

// Overview pairs each student with their fee account, optionally limited to classes whose name contains className.
func (r *FeeRepository) Overview(ctx context.Context, className string) ([]models.FeeOverview, error) {
	query := `SELECT s.student_id, c.class_name, s.roll_no, u.name, f.fee_id, f.total_amount, f.paid_amount, f.due_amount, f.payment_status
        FROM students s
        JOIN users u ON u.user_id = s.user_id
        JOIN classes c ON c.class_id = s.class_id
        LEFT JOIN fees f ON f.student_id = s.student_id`
	var args []interface{}
	if className != "" {
		query += " WHERE c.class_name ILIKE $1"
		args = append(args, "%"+className+"%")
	}
	query += " ORDER BY s.student_id"
	var rows []models.FeeOverview
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("fees overview: %w", err)
	}
	return rows, nil
}

// Upsert stores the fee account of a student.
func (r *FeeRepository) Upsert(ctx context.Context, fee *models.Fee) error {
	const query = `INSERT INTO fees (student_id, total_amount, paid_amount, due_amount, payment_status, last_payment_date)
        VALUES (:student_id, :total_amount, :paid_amount, :due_amount, :payment_status, :last_payment_date)
        ON CONFLICT (student_id) DO UPDATE SET total_amount = EXCLUDED.total_amount, paid_amount = EXCLUDED.paid_amount,
        due_amount = EXCLUDED.due_amount, payment_status = EXCLUDED.payment_status,
        last_payment_date = COALESCE(EXCLUDED.last_payment_date, fees.last_payment_date)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("upsert fee: %w", err)
	}
	return nil
}
