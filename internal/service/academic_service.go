package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type academicStudentLookup interface {
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type markWriter interface {
	Upsert(ctx context.Context, mark *models.Mark) error
}

type attendanceWriter interface {
	Upsert(ctx context.Context, summary *models.AttendanceSummary) error
}

type feeWriter interface {
	Upsert(ctx context.Context, fee *models.Fee) error
}

// AcademicService applies admin updates to marks, attendance and fees.
type AcademicService struct {
	students   academicStudentLookup
	marks      markWriter
	attendance attendanceWriter
	fees       feeWriter
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// AcademicServiceParams groups constructor dependencies.
type AcademicServiceParams struct {
	Students   academicStudentLookup
	Marks      markWriter
	Attendance attendanceWriter
	Fees       feeWriter
	Cache      *CacheService
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// NewAcademicService constructs an AcademicService.
func NewAcademicService(params AcademicServiceParams) *AcademicService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	dto.RegisterValidations(validate)
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{
		students:   params.Students,
		marks:      params.Marks,
		attendance: params.Attendance,
		fees:       params.Fees,
		cache:      params.Cache,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// UpdateMarks upserts the given subject marks of a student.
func (s *AcademicService) UpdateMarks(ctx context.Context, studentID int64, req dto.UpdateMarksRequest) ([]models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	examDate := truncateDay(s.now())
	marks := make([]models.Mark, 0, len(req.Marks))
	for _, entry := range req.Marks {
		total := entry.Total()
		mark := models.Mark{
			StudentID:     studentID,
			SubjectID:     entry.SubjectID,
			TotalMarks:    total,
			ObtainedMarks: entry.ObtainedMarks,
			ExamDate:      &examDate,
		}
		if err := s.marks.Upsert(ctx, &mark); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
		}
		marks = append(marks, mark)
	}
	s.logger.Info("marks updated", zap.Int64("student_id", studentID), zap.Int("subjects", len(marks)))
	return marks, nil
}

// UpdateAttendance upserts per-subject attendance and derives absences and percentage.
func (s *AcademicService) UpdateAttendance(ctx context.Context, studentID int64, req dto.UpdateAttendanceRequest) ([]models.AttendanceSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	year := strconv.Itoa(s.now().Year())
	summaries := make([]models.AttendanceSummary, 0, len(req.Attendance))
	for _, entry := range req.Attendance {
		total := entry.Total()
		summary := models.AttendanceSummary{
			StudentID:            studentID,
			SubjectID:            entry.SubjectID,
			PresentCount:         entry.PresentCount,
			AbsentCount:          total - entry.PresentCount,
			TotalClasses:         total,
			AttendancePercentage: models.AttendancePercentage(entry.PresentCount, total),
			AcademicYear:         year,
		}
		if err := s.attendance.Upsert(ctx, &summary); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
		}
		summaries = append(summaries, summary)
	}
	s.logger.Info("attendance updated", zap.Int64("student_id", studentID), zap.Int("subjects", len(summaries)))
	return summaries, nil
}

// UpdateFees replaces the fee account of a student. Due amount and status are
// always derived from the amounts.
func (s *AcademicService) UpdateFees(ctx context.Context, studentID int64, req dto.UpdateFeesRequest) (*models.Fee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fees payload")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	fee := &models.Fee{StudentID: studentID}
	fee.ApplyAmounts(req.TotalAmount, req.PaidAmount)
	if req.PaidAmount > 0 {
		paidOn := truncateDay(s.now())
		fee.LastPaymentDate = &paidOn
	}
	if err := s.fees.Upsert(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save fees")
	}
	if err := s.cache.Invalidate(ctx, cacheKeyDashboard); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
	s.logger.Info("fees updated", zap.Int64("student_id", studentID), zap.String("status", string(fee.PaymentStatus)))
	return fee, nil
}

func (s *AcademicService) ensureStudent(ctx context.Context, studentID int64) error {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return nil
}
