package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type studentMarksReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Mark, error)
}

type studentAttendanceReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceSummary, error)
}

type studentFeeReader interface {
	GetByStudent(ctx context.Context, studentID int64) (*models.Fee, error)
}

// StudentService serves the student directory and per-student academic records.
type StudentService struct {
	repo       studentRepository
	marks      studentMarksReader
	attendance studentAttendanceReader
	fees       studentFeeReader
	logger     *zap.Logger
}

// StudentServiceParams groups constructor dependencies.
type StudentServiceParams struct {
	Repo       studentRepository
	Marks      studentMarksReader
	Attendance studentAttendanceReader
	Fees       studentFeeReader
	Logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(params StudentServiceParams) *StudentService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:       params.Repo,
		marks:      params.Marks,
		attendance: params.Attendance,
		fees:       params.Fees,
		logger:     logger,
	}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.StudentDetail{}
	}
	return students, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Marks lists a student's marks, optionally narrowed to one subject.
func (s *StudentService) Marks(ctx context.Context, studentID int64, subjectID *int64) ([]models.Mark, error) {
	marks, err := s.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}
	result := make([]models.Mark, 0, len(marks))
	for _, mark := range marks {
		if subjectID != nil && mark.SubjectID != *subjectID {
			continue
		}
		result = append(result, mark)
	}
	return result, nil
}

// Attendance lists a student's per-subject attendance summaries.
func (s *StudentService) Attendance(ctx context.Context, studentID int64) ([]models.AttendanceSummary, error) {
	summaries, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	if summaries == nil {
		summaries = []models.AttendanceSummary{}
	}
	return summaries, nil
}

// Fees returns the fee account of a student with due and status re-derived.
func (s *StudentService) Fees(ctx context.Context, studentID int64) (*models.Fee, error) {
	fee, err := s.fees.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee details not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees")
	}
	fee.ApplyAmounts(fee.TotalAmount, fee.PaidAmount)
	return fee, nil
}
