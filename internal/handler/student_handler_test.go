package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type fakeStudentSrv struct {
	lastFilter    models.StudentFilter
	lastSubjectID *int64
	fee           *models.Fee
	err           error
}

func (f *fakeStudentSrv) List(_ context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	f.lastFilter = filter
	students := []models.StudentDetail{{Student: models.Student{ID: 7, RollNo: "TYCSE07"}, Name: "Asha Patil", ClassName: "TY-CSE"}}
	return students, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, f.err
}

func (f *fakeStudentSrv) Get(_ context.Context, id int64) (*models.StudentDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StudentDetail{Student: models.Student{ID: id}, Name: "Asha Patil"}, nil
}

func (f *fakeStudentSrv) Marks(_ context.Context, _ int64, subjectID *int64) ([]models.Mark, error) {
	f.lastSubjectID = subjectID
	return []models.Mark{}, f.err
}

func (f *fakeStudentSrv) Attendance(context.Context, int64) ([]models.AttendanceSummary, error) {
	return []models.AttendanceSummary{}, f.err
}

func (f *fakeStudentSrv) Fees(context.Context, int64) (*models.Fee, error) {
	return f.fee, f.err
}

type fakeAcademicSrv struct {
	lastStudent int64
	fee         *models.Fee
	err         error
}

func (f *fakeAcademicSrv) UpdateMarks(_ context.Context, id int64, _ dto.UpdateMarksRequest) ([]models.Mark, error) {
	f.lastStudent = id
	return []models.Mark{}, f.err
}

func (f *fakeAcademicSrv) UpdateAttendance(_ context.Context, id int64, _ dto.UpdateAttendanceRequest) ([]models.AttendanceSummary, error) {
	f.lastStudent = id
	return []models.AttendanceSummary{}, f.err
}

func (f *fakeAcademicSrv) UpdateFees(_ context.Context, id int64, _ dto.UpdateFeesRequest) (*models.Fee, error) {
	f.lastStudent = id
	return f.fee, f.err
}

func TestStudentListParsesQuery(t *testing.T) {
	svc := &fakeStudentSrv{}
	handler := NewStudentHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/students?class=TY-CSE&search=asha&page=2&limit=5", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StudentFilter{ClassName: "TY-CSE", Search: "asha", Page: 2, PageSize: 5}, svc.lastFilter)

	var envelope listEnvelope
	decode(t, rec, &envelope)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "TYCSE07", envelope.Data[0]["roll_no"])
	assert.Equal(t, float64(1), envelope.Pagination["total_count"])
}

func TestStudentGetNotFound(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")})

	c, rec := newTestContext(http.MethodGet, "/students/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentGetRejectsBadID(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{})

	c, rec := newTestContext(http.MethodGet, "/students/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentMarksSubjectFilter(t *testing.T) {
	svc := &fakeStudentSrv{}
	handler := NewStudentHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/students/7/marks?subject_id=3", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Marks(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastSubjectID)
	assert.Equal(t, int64(3), *svc.lastSubjectID)

	c, rec = newTestContext(http.MethodGet, "/students/7/marks?subject_id=ds", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Marks(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentFees(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{fee: &models.Fee{StudentID: 7, TotalAmount: 60000, PaidAmount: 60000, PaymentStatus: models.PaymentPaid}})

	c, rec := newTestContext(http.MethodGet, "/students/7/fees", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Fees(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "Paid", envelope.Data["payment_status"])
	assert.Equal(t, float64(0), envelope.Data["due_amount"])
}

func TestStudentAttendanceInternalError(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{err: sql.ErrConnDone})

	c, rec := newTestContext(http.MethodGet, "/students/7/attendance-summary", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Attendance(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAcademicUpdateFees(t *testing.T) {
	svc := &fakeAcademicSrv{fee: &models.Fee{StudentID: 7, TotalAmount: 60000, PaidAmount: 20000, DueAmount: 40000, PaymentStatus: models.PaymentPartial}}
	handler := NewAcademicHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/admin/students/7/fees", map[string]interface{}{"total_amount": 60000, "paid_amount": 20000})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.UpdateFees(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.lastStudent)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "Partial", envelope.Data["payment_status"])
}

func TestAcademicUpdateMarksMalformed(t *testing.T) {
	svc := &fakeAcademicSrv{}
	handler := NewAcademicHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/admin/students/7/marks", "oops")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.UpdateMarks(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.lastStudent)
}

func TestAcademicUpdateAttendanceValidationError(t *testing.T) {
	svc := &fakeAcademicSrv{err: appErrors.Clone(appErrors.ErrValidation, "present count exceeds total classes")}
	handler := NewAcademicHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/admin/students/7/attendance", map[string]interface{}{"attendance": []interface{}{}})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.UpdateAttendance(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "present count exceeds total classes", envelope.Error.Message)
}
