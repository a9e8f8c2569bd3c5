package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/service"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

type reportExporter interface {
	Generate(ctx context.Context, kind models.ReportKind, format models.ReportFormat, className string) (*models.ReportFile, error)
}

// ReportHandler streams per-student overviews as CSV or PDF.
type ReportHandler struct {
	exporter reportExporter
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(exporter reportExporter) *ReportHandler {
	return &ReportHandler{exporter: exporter}
}

// Export godoc
// @Summary Export report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param kind path string true "marks, attendance or fees"
// @Param format query string false "csv (default) or pdf"
// @Param class query string false "Class name filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/{kind} [get]
func (h *ReportHandler) Export(c *gin.Context) {
	kind, err := service.ParseReportKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exporter.Generate(c.Request.Context(), kind, format, strings.TrimSpace(c.Query("class")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Content)
}
