package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/models"
)

func expectEventLock(mock sqlmock.Sqlmock, eventID int64, capacity interface{}) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT max_participants FROM events WHERE event_id = $1 AND is_active = TRUE FOR UPDATE")).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows([]string{"max_participants"}).AddRow(capacity))
}

func TestEventRegistrationRepositoryRegister(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)
	at := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	expectEventLock(mock, 4, 30)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM event_registrations WHERE event_id = $1 AND student_id = $2)")).
		WithArgs(int64(4), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM event_registrations WHERE event_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO event_registrations (event_id, student_id, registered_at)")).
		WithArgs(int64(4), int64(7), at).
		WillReturnRows(sqlmock.NewRows([]string{"registration_id"}).AddRow(55))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET current_participants = $2 WHERE event_id = $1")).
		WithArgs(int64(4), int64(13)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	registration, err := repo.Register(context.Background(), 4, 7, at)
	require.NoError(t, err)
	assert.Equal(t, int64(55), registration.ID)
	assert.Equal(t, int64(7), registration.StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryRegisterFullEvent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	mock.ExpectBegin()
	expectEventLock(mock, 4, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(4), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM event_registrations")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 4, 7, time.Now())
	assert.ErrorIs(t, err, ErrEventFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryRegisterTwice(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	mock.ExpectBegin()
	expectEventLock(mock, 4, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(4), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 4, 7, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryRegisterMissingEvent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT max_participants FROM events")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 99, 7, time.Now())
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryCancelRecounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM event_registrations WHERE event_id = $1 AND student_id = $2")).
		WithArgs(int64(4), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET current_participants = (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1)")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Cancel(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryCancelMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM event_registrations")).
		WithArgs(int64(4), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	removed, err := repo.Cancel(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRegistrationRepository(db)

	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"registration_id", "event_id", "title", "event_date", "event_time", "location", "registered_at"}).
		AddRow(55, 4, "Hackathon", day, "10:00", nil, day.AddDate(0, 0, -5))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN events e ON e.event_id = r.event_id")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	items, err := repo.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hackathon", items[0].Title)
	assert.Nil(t, items[0].Location)
	require.NotNil(t, items[0].EventTime)
	assert.Equal(t, "10:00", *items[0].EventTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreateStoresCapacity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	capacity := 50
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events (title, description, event_date, event_time, location, event_type, is_active, created_by, max_participants, current_participants)")).
		WithArgs("Hackathon", "", day, nil, nil, "hackathon", true, nil, 50).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(4))

	event := &models.Event{Title: "Hackathon", EventDate: day, EventType: "hackathon", Active: true, MaxParticipants: &capacity}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(4), event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
