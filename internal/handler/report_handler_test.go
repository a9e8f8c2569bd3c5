package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/models"
)

type fakeExporter struct {
	calls     int
	kind      models.ReportKind
	format    models.ReportFormat
	className string
}

func (f *fakeExporter) Generate(_ context.Context, kind models.ReportKind, format models.ReportFormat, className string) (*models.ReportFile, error) {
	f.calls++
	f.kind, f.format, f.className = kind, format, className
	return &models.ReportFile{Filename: "marks-ty-cse.csv", ContentType: "text/csv", Content: []byte("Roll No,Name\n")}, nil
}

func TestReportExportStreamsFile(t *testing.T) {
	exporter := &fakeExporter{}
	handler := NewReportHandler(exporter)

	c, rec := newTestContext(http.MethodGet, "/reports/marks?class=TY-CSE", nil)
	c.Params = gin.Params{{Key: "kind", Value: "marks"}}
	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReportKindMarks, exporter.kind)
	assert.Equal(t, models.ReportFormatCSV, exporter.format)
	assert.Equal(t, "TY-CSE", exporter.className)
	assert.Equal(t, `attachment; filename="marks-ty-cse.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Roll No,Name\n", rec.Body.String())
}

func TestReportExportRejectsUnknownKind(t *testing.T) {
	exporter := &fakeExporter{}
	handler := NewReportHandler(exporter)

	c, rec := newTestContext(http.MethodGet, "/reports/grades", nil)
	c.Params = gin.Params{{Key: "kind", Value: "grades"}}
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, exporter.calls)
}

func TestReportExportRejectsUnknownFormat(t *testing.T) {
	exporter := &fakeExporter{}
	handler := NewReportHandler(exporter)

	c, rec := newTestContext(http.MethodGet, "/reports/fees?format=xlsx", nil)
	c.Params = gin.Params{{Key: "kind", Value: "fees"}}
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, exporter.calls)
}
