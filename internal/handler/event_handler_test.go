package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type fakeEventSrv struct {
	createdBy   int64
	deactivated int64
	err         error
}

func (f *fakeEventSrv) Upcoming(context.Context) ([]models.Event, error) {
	return []models.Event{{ID: 1, Title: "Hackathon", EventType: "hackathon", Active: true}}, f.err
}

func (f *fakeEventSrv) Create(_ context.Context, req dto.CreateEventRequest, createdBy int64) (*models.Event, error) {
	f.createdBy = createdBy
	if f.err != nil {
		return nil, f.err
	}
	return &models.Event{ID: 2, Title: req.Title, EventType: req.EventType, Active: true, CreatedBy: &createdBy}, nil
}

func (f *fakeEventSrv) Deactivate(_ context.Context, id int64) error {
	f.deactivated = id
	return f.err
}

type fakeNotificationSrv struct {
	markedID   int64
	markedUser int64
	err        error
}

func (f *fakeNotificationSrv) List(_ context.Context, userID int64) ([]models.Notification, error) {
	return []models.Notification{{ID: 1, UserID: userID, Title: "Fee reminder"}}, f.err
}

func (f *fakeNotificationSrv) UnreadCount(context.Context, int64) (int, error) {
	return 3, f.err
}

func (f *fakeNotificationSrv) MarkRead(_ context.Context, id, userID int64) error {
	f.markedID, f.markedUser = id, userID
	return f.err
}

func (f *fakeNotificationSrv) Create(context.Context, dto.CreateNotificationRequest) (int, error) {
	return 5, f.err
}

func TestEventUpcoming(t *testing.T) {
	handler := NewEventHandler(&fakeEventSrv{})

	c, rec := newTestContext(http.MethodGet, "/events", nil)
	handler.Upcoming(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	decode(t, rec, &envelope)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Hackathon", envelope.Data[0]["title"])
}

func TestEventCreateUsesCaller(t *testing.T) {
	svc := &fakeEventSrv{}
	handler := NewEventHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/events", map[string]interface{}{"title": "Tech Fest", "event_date": "2025-11-01", "event_type": "cultural"})
	withClaims(c, 1, models.RoleAdmin)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), svc.createdBy)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "Tech Fest", envelope.Data["title"])
}

func TestEventCreateRequiresClaims(t *testing.T) {
	handler := NewEventHandler(&fakeEventSrv{})

	c, rec := newTestContext(http.MethodPost, "/events", map[string]interface{}{"title": "Tech Fest"})
	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventDelete(t *testing.T) {
	svc := &fakeEventSrv{}
	handler := NewEventHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/events/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	handler.Delete(c)
	c.Writer.WriteHeaderNow() // flush status as gin's engine does after the handler chain

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), svc.deactivated)
}

func TestEventDeleteNotFound(t *testing.T) {
	handler := NewEventHandler(&fakeEventSrv{err: appErrors.Clone(appErrors.ErrNotFound, "event not found")})

	c, rec := newTestContext(http.MethodDelete, "/events/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationListAndCount(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationSrv{})

	c, rec := newTestContext(http.MethodGet, "/notifications", nil)
	withClaims(c, 107, models.RoleStudent)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var list listEnvelope
	decode(t, rec, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, float64(107), list.Data[0]["user_id"])

	c, rec = newTestContext(http.MethodGet, "/notifications/unread-count", nil)
	withClaims(c, 107, models.RoleStudent)
	handler.UnreadCount(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, float64(3), envelope.Data["count"])
}

func TestNotificationMarkRead(t *testing.T) {
	svc := &fakeNotificationSrv{}
	handler := NewNotificationHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/notifications/9/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	withClaims(c, 107, models.RoleStudent)
	handler.MarkRead(c)
	c.Writer.WriteHeaderNow() // flush status as gin's engine does after the handler chain

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), svc.markedID)
	assert.Equal(t, int64(107), svc.markedUser)
}

func TestNotificationListRequiresClaims(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationSrv{})

	c, rec := newTestContext(http.MethodGet, "/notifications", nil)
	handler.List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotificationCreate(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationSrv{})

	c, rec := newTestContext(http.MethodPost, "/notifications", map[string]interface{}{"role": "student", "title": "Exam", "message": "Exams start Monday"})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, float64(5), envelope.Data["created"])
}
