package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"user_id", "name", "email", "password_hash", "contact_no", "role", "is_active", "created_at"}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "Admin", "admin@smartedu.test", "hash", nil, string(models.RoleAdmin), true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, password_hash, contact_no, role, is_active, created_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("admin@smartedu.test").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "admin@smartedu.test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Nil(t, user.ContactNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1 LIMIT 1")).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDsByRole(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleStudent
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM users WHERE is_active = TRUE AND role = $1 ORDER BY user_id")).
		WithArgs(role).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3).AddRow(4))

	ids, err := repo.ListIDs(context.Background(), &role)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
