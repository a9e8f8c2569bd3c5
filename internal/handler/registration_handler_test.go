package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type fakeRegistrationSrv struct {
	eventID int64
	userID  int64
	err     error
}

func (f *fakeRegistrationSrv) Register(_ context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	f.eventID, f.userID = eventID, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.EventRegistration{ID: 55, EventID: eventID, StudentID: 7}, nil
}

func (f *fakeRegistrationSrv) Cancel(_ context.Context, eventID, userID int64) error {
	f.eventID, f.userID = eventID, userID
	return f.err
}

func (f *fakeRegistrationSrv) Mine(_ context.Context, userID int64) ([]models.RegisteredEvent, error) {
	f.userID = userID
	return []models.RegisteredEvent{{RegistrationID: 55, EventID: 4, Title: "Hackathon"}}, f.err
}

func TestRegistrationRegisterUsesCaller(t *testing.T) {
	svc := &fakeRegistrationSrv{}
	handler := NewRegistrationHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/events/4/register", map[string]interface{}{"user_id": 999})
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	withClaims(c, 107, models.RoleStudent)
	handler.Register(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(4), svc.eventID)
	assert.Equal(t, int64(107), svc.userID)
}

func TestRegistrationRegisterConflict(t *testing.T) {
	handler := NewRegistrationHandler(&fakeRegistrationSrv{err: appErrors.Clone(appErrors.ErrConflict, "event is full")})

	c, rec := newTestContext(http.MethodPost, "/events/4/register", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	withClaims(c, 107, models.RoleStudent)
	handler.Register(c)

	require.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "event is full", envelope.Error.Message)
}

func TestRegistrationRequiresClaims(t *testing.T) {
	svc := &fakeRegistrationSrv{}
	handler := NewRegistrationHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/events/4/register", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	handler.Register(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/events/my-registrations", nil)
	handler.Mine(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.userID)
}

func TestRegistrationCancelAndMine(t *testing.T) {
	svc := &fakeRegistrationSrv{}
	handler := NewRegistrationHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/events/4/register", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	withClaims(c, 107, models.RoleStudent)
	handler.Cancel(c)
	c.Writer.WriteHeaderNow() // flush status as gin's engine does after the handler chain
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), svc.eventID)

	c, rec = newTestContext(http.MethodGet, "/events/my-registrations", nil)
	withClaims(c, 108, models.RoleStudent)
	handler.Mine(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var list listEnvelope
	decode(t, rec, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Hackathon", list.Data[0]["title"])
	assert.Equal(t, float64(55), list.Data[0]["id"])
	assert.Equal(t, int64(108), svc.userID)
}
