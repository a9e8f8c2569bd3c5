package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
	"github.com/noah-isme/smartedu-api/pkg/export"
)

type markOverviewReader interface {
	Overview(ctx context.Context, className string) ([]models.MarkOverview, error)
}

type attendanceOverviewReader interface {
	Overview(ctx context.Context, className string) ([]models.AttendanceOverview, error)
}

type feeOverviewReader interface {
	Overview(ctx context.Context, className string) ([]models.FeeOverview, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders class-level marks, attendance and fee reports.
type ExportService struct {
	marks      markOverviewReader
	attendance attendanceOverviewReader
	fees       feeOverviewReader
	csv        datasetRenderer
	pdf        datasetRenderer
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// ExportServiceParams groups constructor dependencies. Nil renderers fall
// back to the CSV and PDF exporters.
type ExportServiceParams struct {
	Marks      markOverviewReader
	Attendance attendanceOverviewReader
	Fees       feeOverviewReader
	CSV        datasetRenderer
	PDF        datasetRenderer
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var csv, pdf datasetRenderer = params.CSV, params.PDF
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		marks:      params.Marks,
		attendance: params.Attendance,
		fees:       params.Fees,
		csv:        csv,
		pdf:        pdf,
		metrics:    params.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// ParseReportKind validates a report kind path segment.
func ParseReportKind(raw string) (models.ReportKind, error) {
	switch kind := models.ReportKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case models.ReportKindMarks, models.ReportKindAttendance, models.ReportKindFees:
		return kind, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "report kind must be marks, attendance or fees")
}

// ParseReportFormat validates a format query value. Empty means csv.
func ParseReportFormat(raw string) (models.ReportFormat, error) {
	switch format := models.ReportFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case "":
		return models.ReportFormatCSV, nil
	case models.ReportFormatCSV, models.ReportFormatPDF:
		return format, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

// Generate builds the dataset for kind, optionally narrowed to a class, and renders it.
func (s *ExportService) Generate(ctx context.Context, kind models.ReportKind, format models.ReportFormat, className string) (*models.ReportFile, error) {
	className = strings.TrimSpace(className)
	dataset, err := s.buildDataset(ctx, kind, className)
	if err != nil {
		return nil, err
	}

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	s.logger.Info("report generated",
		zap.String("kind", string(kind)),
		zap.String("format", string(format)),
		zap.String("class", className),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &models.ReportFile{
		Filename:    s.buildFilename(kind, format, className),
		ContentType: contentType,
		Content:     payload,
	}, nil
}

func (s *ExportService) buildFilename(kind models.ReportKind, format models.ReportFormat, className string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	scope := "all"
	if className != "" {
		scope = sanitizeFilename(strings.ToLower(className))
	}
	return fmt.Sprintf("%s_%s_%s.%s", kind, scope, timestamp, format)
}

func sanitizeFilename(raw string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, kind models.ReportKind, className string) (export.Dataset, error) {
	switch kind {
	case models.ReportKindMarks:
		return s.buildMarksDataset(ctx, className)
	case models.ReportKindAttendance:
		return s.buildAttendanceDataset(ctx, className)
	case models.ReportKindFees:
		return s.buildFeesDataset(ctx, className)
	default:
		return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, "report kind must be marks, attendance or fees")
	}
}

func reportTitle(base, className string) string {
	if className == "" {
		return base + " - All Classes"
	}
	return base + " - " + strings.ToUpper(className)
}

func identityColumns(row models.StudentRow) map[string]string {
	return map[string]string{
		"Roll No": row.RollNo,
		"Name":    row.Name,
		"Class":   row.ClassName,
	}
}

func (s *ExportService) buildMarksDataset(ctx context.Context, className string) (export.Dataset, error) {
	start := time.Now()
	rows, err := s.marks.Overview(ctx, className)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks overview")
	}
	s.metrics.ObserveDBQuery("report_marks", time.Since(start))
	dataset := export.Dataset{
		Title:   reportTitle("Marks Report", className),
		Headers: []string{"Roll No", "Name", "Class", "Subjects", "Obtained", "Total", "Percentage", "Result"},
	}
	for _, row := range rows {
		record := identityColumns(row.StudentRow)
		record["Subjects"] = strconv.Itoa(row.MarkCount)
		record["Obtained"] = formatAmount(row.Obtained, 1)
		record["Total"] = formatAmount(row.Total, 1)
		record["Percentage"] = fmt.Sprintf("%.1f%%", row.Percentage())
		record["Result"] = "N/A"
		if row.MarkCount > 0 && row.Total > 0 {
			_, record["Result"] = passBadge(row.Percentage())
		}
		dataset.Rows = append(dataset.Rows, record)
	}
	return dataset, nil
}

func (s *ExportService) buildAttendanceDataset(ctx context.Context, className string) (export.Dataset, error) {
	start := time.Now()
	rows, err := s.attendance.Overview(ctx, className)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance overview")
	}
	s.metrics.ObserveDBQuery("report_attendance", time.Since(start))
	dataset := export.Dataset{
		Title:   reportTitle("Attendance Report", className),
		Headers: []string{"Roll No", "Name", "Class", "Present", "Total Classes", "Percentage", "Status"},
	}
	for _, row := range rows {
		record := identityColumns(row.StudentRow)
		record["Present"] = strconv.Itoa(row.Present)
		record["Total Classes"] = strconv.Itoa(row.Total)
		record["Percentage"] = fmt.Sprintf("%.1f%%", row.Percentage())
		record["Status"] = "N/A"
		if row.RecordCount > 0 {
			_, record["Status"] = attendanceBadge(row.Percentage())
		}
		dataset.Rows = append(dataset.Rows, record)
	}
	return dataset, nil
}

func (s *ExportService) buildFeesDataset(ctx context.Context, className string) (export.Dataset, error) {
	start := time.Now()
	rows, err := s.fees.Overview(ctx, className)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee overview")
	}
	s.metrics.ObserveDBQuery("report_fees", time.Since(start))
	dataset := export.Dataset{
		Title:   reportTitle("Fee Report", className),
		Headers: []string{"Roll No", "Name", "Class", "Total (INR)", "Paid (INR)", "Due (INR)", "Status"},
	}
	for _, row := range rows {
		record := identityColumns(row.StudentRow)
		if row.FeeID == nil {
			record["Status"] = "No record"
			dataset.Rows = append(dataset.Rows, record)
			continue
		}
		fee := models.Fee{}
		fee.ApplyAmounts(derefFloat(row.TotalAmount), derefFloat(row.PaidAmount))
		record["Total (INR)"] = formatAmount(fee.TotalAmount, 2)
		record["Paid (INR)"] = formatAmount(fee.PaidAmount, 2)
		record["Due (INR)"] = formatAmount(fee.DueAmount, 2)
		record["Status"] = string(fee.PaymentStatus)
		dataset.Rows = append(dataset.Rows, record)
	}
	return dataset, nil
}
