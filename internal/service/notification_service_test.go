package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type fakeRecipients struct {
	ids      []int64
	lastRole *models.UserRole
}

func (f *fakeRecipients) ListIDs(_ context.Context, role *models.UserRole) ([]int64, error) {
	f.lastRole = role
	return f.ids, nil
}

func TestNotificationServiceListEmpty(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{}, &fakeRecipients{}, nil, nil)

	items, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestNotificationServiceMarkReadMissing(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{}, &fakeRecipients{}, nil, nil)

	err := svc.MarkRead(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceCreateForUser(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeRecipients{}, nil, nil)

	created, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		UserID:  int64Ptr(12),
		Title:   "Fee reminder",
		Message: " Pay before Friday ",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, []int64{12}, store.created)
	assert.Equal(t, "Pay before Friday", store.createdMsg)
	assert.Equal(t, models.NotificationInfo, store.createdTyp)
}

func TestNotificationServiceBroadcastByRole(t *testing.T) {
	store := &fakeNotificationStore{}
	recipients := &fakeRecipients{ids: []int64{1, 2, 3}}
	svc := NewNotificationService(store, recipients, nil, nil)
	role := models.RoleStudent

	created, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		Role:    &role,
		Title:   "Holiday",
		Message: "College closed on Monday",
		Type:    models.NotificationWarning,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	require.NotNil(t, recipients.lastRole)
	assert.Equal(t, models.RoleStudent, *recipients.lastRole)
	assert.Equal(t, models.NotificationWarning, store.createdTyp)
}

func TestNotificationServiceCreateValidation(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{}, &fakeRecipients{}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateNotificationRequest{Title: "", Message: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
