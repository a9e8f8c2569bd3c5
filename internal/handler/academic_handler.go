package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

type academicService interface {
	UpdateMarks(ctx context.Context, studentID int64, req dto.UpdateMarksRequest) ([]models.Mark, error)
	UpdateAttendance(ctx context.Context, studentID int64, req dto.UpdateAttendanceRequest) ([]models.AttendanceSummary, error)
	UpdateFees(ctx context.Context, studentID int64, req dto.UpdateFeesRequest) (*models.Fee, error)
}

// AcademicHandler exposes the admin record updates.
type AcademicHandler struct {
	service academicService
}

// NewAcademicHandler constructs AcademicHandler.
func NewAcademicHandler(svc academicService) *AcademicHandler {
	return &AcademicHandler{service: svc}
}

// UpdateMarks godoc
// @Summary Upsert student marks
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateMarksRequest true "Marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id}/marks [put]
func (h *AcademicHandler) UpdateMarks(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	marks, err := h.service.UpdateMarks(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, marks, nil)
}

// UpdateAttendance godoc
// @Summary Upsert student attendance
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateAttendanceRequest true "Attendance"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/students/{id}/attendance [put]
func (h *AcademicHandler) UpdateAttendance(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	summaries, err := h.service.UpdateAttendance(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// UpdateFees godoc
// @Summary Upsert student fee account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateFeesRequest true "Fees"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/students/{id}/fees [put]
func (h *AcademicHandler) UpdateFees(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	fee, err := h.service.UpdateFees(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee, nil)
}
