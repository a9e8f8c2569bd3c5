package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/dto"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

type admissionService interface {
	Info() dto.AdmissionInfo
	Fees() dto.AdmissionFees
	Contacts() dto.AdmissionContacts
	Calculate(query dto.FeeCalculationQuery) (*dto.FeeCalculation, error)
}

// AdmissionHandler serves the public admission pages.
type AdmissionHandler struct {
	admission admissionService
}

// NewAdmissionHandler constructs AdmissionHandler.
func NewAdmissionHandler(admission admissionService) *AdmissionHandler {
	return &AdmissionHandler{admission: admission}
}

// Info godoc
// @Summary Admission overview
// @Tags Admission
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admission/info [get]
func (h *AdmissionHandler) Info(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admission.Info(), nil)
}

// Fees godoc
// @Summary Fee structure and category concessions
// @Tags Admission
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admission/fees [get]
func (h *AdmissionHandler) Fees(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admission.Fees(), nil)
}

// Contacts godoc
// @Summary Admission office and branch coordinators
// @Tags Admission
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admission/contacts [get]
func (h *AdmissionHandler) Contacts(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admission.Contacts(), nil)
}

// Calculate godoc
// @Summary Yearly fee calculator
// @Tags Admission
// @Produce json
// @Param branch query string false "Branch code" default(CSE)
// @Param include_hostel query bool false "Add hostel and mess"
// @Param include_transport query bool false "Add college bus"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admission/fees/calculate [get]
func (h *AdmissionHandler) Calculate(c *gin.Context) {
	var query dto.FeeCalculationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	calc, err := h.admission.Calculate(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calc, nil)
}
