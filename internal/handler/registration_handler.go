package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	Cancel(ctx context.Context, eventID, userID int64) error
	Mine(ctx context.Context, userID int64) ([]models.RegisteredEvent, error)
}

// RegistrationHandler lets students sign up for events.
type RegistrationHandler struct {
	registrations registrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations registrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register godoc
// @Summary Register for an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	eventID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	registration, err := h.registrations.Register(c.Request.Context(), eventID, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, registration)
}

// Cancel godoc
// @Summary Cancel an event registration
// @Tags Events
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/register [delete]
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	eventID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.registrations.Cancel(c.Request.Context(), eventID, claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Mine godoc
// @Summary Events the caller is registered for
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /events/my-registrations [get]
func (h *RegistrationHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.registrations.Mine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
