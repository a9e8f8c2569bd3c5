package models

// ReportKind selects which per-student overview is exported.
type ReportKind string

const (
	ReportKindMarks      ReportKind = "marks"
	ReportKindAttendance ReportKind = "attendance"
	ReportKindFees       ReportKind = "fees"
)

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportFile is a rendered export ready to be streamed.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
