package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/noah-isme/smartedu-api/internal/models"
)

type fakeMarkStore struct {
	byStudent    map[int64][]models.Mark
	withStudents []models.StudentMark
	overview     []models.MarkOverview
	err          error
	overviewArg  string
	upserted     []models.Mark
}

func (f *fakeMarkStore) ListByStudent(_ context.Context, studentID int64) ([]models.Mark, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStudent[studentID], nil
}

func (f *fakeMarkStore) ListWithStudents(context.Context) ([]models.StudentMark, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.withStudents, nil
}

func (f *fakeMarkStore) Overview(_ context.Context, className string) ([]models.MarkOverview, error) {
	f.overviewArg = className
	if f.err != nil {
		return nil, f.err
	}
	if className == "" {
		return f.overview, nil
	}
	var rows []models.MarkOverview
	for _, row := range f.overview {
		if strings.Contains(strings.ToLower(row.ClassName), strings.ToLower(className)) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeMarkStore) Upsert(_ context.Context, mark *models.Mark) error {
	if f.err != nil {
		return f.err
	}
	mark.ID = int64(len(f.upserted) + 1)
	f.upserted = append(f.upserted, *mark)
	return nil
}

type fakeAttendanceStore struct {
	byStudent map[int64][]models.AttendanceSummary
	overview  []models.AttendanceOverview
	err       error
	upserted  []models.AttendanceSummary
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, studentID int64) ([]models.AttendanceSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStudent[studentID], nil
}

func (f *fakeAttendanceStore) Overview(_ context.Context, className string) ([]models.AttendanceOverview, error) {
	if f.err != nil {
		return nil, f.err
	}
	var rows []models.AttendanceOverview
	for _, row := range f.overview {
		if className == "" || strings.Contains(strings.ToLower(row.ClassName), strings.ToLower(className)) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, summary *models.AttendanceSummary) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, *summary)
	return nil
}

type fakeFeeStore struct {
	byStudent map[int64]models.Fee
	overview  []models.FeeOverview
	err       error
	upserted  []models.Fee
}

func (f *fakeFeeStore) GetByStudent(_ context.Context, studentID int64) (*models.Fee, error) {
	if f.err != nil {
		return nil, f.err
	}
	fee, ok := f.byStudent[studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &fee, nil
}

func (f *fakeFeeStore) Overview(_ context.Context, className string) ([]models.FeeOverview, error) {
	if f.err != nil {
		return nil, f.err
	}
	var rows []models.FeeOverview
	for _, row := range f.overview {
		if className == "" || strings.Contains(strings.ToLower(row.ClassName), strings.ToLower(className)) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeFeeStore) Upsert(_ context.Context, fee *models.Fee) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, *fee)
	return nil
}

type fakeSubjectCatalog struct {
	subjects []models.Subject
	err      error
}

func (f *fakeSubjectCatalog) List(context.Context, *int64) ([]models.Subject, error) {
	return f.subjects, f.err
}

type fakeEventFeed struct {
	events []models.Event
	err    error
}

func (f *fakeEventFeed) Upcoming(context.Context) ([]models.Event, error) {
	return f.events, f.err
}

type fakeNotificationStore struct {
	items      map[int64][]models.Notification
	err        error
	unread     int
	markResult bool
	created    []int64
	createdMsg string
	createdTyp models.NotificationType
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID int64) ([]models.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[userID], nil
}

func (f *fakeNotificationStore) UnreadCount(context.Context, int64) (int, error) {
	return f.unread, f.err
}

func (f *fakeNotificationStore) MarkRead(context.Context, int64, int64) (bool, error) {
	return f.markResult, f.err
}

func (f *fakeNotificationStore) CreateMany(_ context.Context, userIDs []int64, _ string, message string, kind models.NotificationType) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, userIDs...)
	f.createdMsg = message
	f.createdTyp = kind
	return len(userIDs), nil
}

func int64Ptr(v int64) *int64 { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
