package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/models"
)

type fixedPicker int

func (p fixedPicker) Pick(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

type composerFixture struct {
	composer      *Composer
	students      *fakeStudentDirectory
	marks         *fakeMarkStore
	attendance    *fakeAttendanceStore
	fees          *fakeFeeStore
	events        *fakeEventFeed
	notifications *fakeNotificationStore
	metrics       *MetricsService
}

func newComposerFixture() *composerFixture {
	f := &composerFixture{
		students: sampleDirectory(),
		marks: &fakeMarkStore{
			byStudent: map[int64][]models.Mark{
				7: {
					{StudentID: 7, SubjectID: 1, SubjectName: "Data Structures", ObtainedMarks: 30, TotalMarks: 35},
					{StudentID: 7, SubjectID: 2, SubjectName: "Operating Systems", ObtainedMarks: 10, TotalMarks: 35},
					{StudentID: 7, SubjectID: 3, SubjectName: "Operating System", ObtainedMarks: 12, TotalMarks: 35},
				},
			},
			withStudents: []models.StudentMark{
				{Mark: models.Mark{StudentID: 7, SubjectName: "Operating Systems", ObtainedMarks: 10, TotalMarks: 35}, StudentName: "Asha Patil", RollNo: "TYCSE07"},
				{Mark: models.Mark{StudentID: 7, SubjectName: "Operating System", ObtainedMarks: 12, TotalMarks: 35}, StudentName: "Asha Patil", RollNo: "TYCSE07"},
				{Mark: models.Mark{StudentID: 8, SubjectName: "Operating Systems", ObtainedMarks: 28, TotalMarks: 35}, StudentName: "Ravi Jadhav", RollNo: "SYIT08"},
				{Mark: models.Mark{StudentID: 8, SubjectName: "Data Structures", ObtainedMarks: 20, TotalMarks: 35}, StudentName: "Ravi Jadhav", RollNo: "SYIT08"},
			},
			overview: []models.MarkOverview{
				{StudentRow: overviewRow(7, "TYCSE07", "Asha Patil", "TY-CSE"), Obtained: 60, Total: 70, MarkCount: 2},
				{StudentRow: overviewRow(8, "SYIT08", "Ravi Jadhav", "SY-IT"), Obtained: 50, Total: 70, MarkCount: 2},
				{StudentRow: overviewRow(10, "TYCSE10", "Neha Shinde", "TY-CSE")},
			},
		},
		attendance: &fakeAttendanceStore{
			byStudent: map[int64][]models.AttendanceSummary{
				7: {
					{StudentID: 7, SubjectName: "Data Structures", PresentCount: 40, AbsentCount: 10, TotalClasses: 50},
					{StudentID: 7, SubjectName: "Operating Systems", PresentCount: 25, AbsentCount: 25, TotalClasses: 50},
				},
			},
		},
		fees: &fakeFeeStore{byStudent: map[int64]models.Fee{
			7: {StudentID: 7, TotalAmount: 60000, PaidAmount: 60000, DueAmount: 500, PaymentStatus: models.PaymentPartial},
		}},
		events:        &fakeEventFeed{},
		notifications: &fakeNotificationStore{},
		metrics:       NewMetricsService(),
	}
	f.composer = NewComposer(ComposerParams{
		Students:      f.students,
		Marks:         f.marks,
		Attendance:    f.attendance,
		Fees:          f.fees,
		Subjects:      &fakeSubjectCatalog{},
		Events:        f.events,
		Notifications: f.notifications,
		SmallTalk:     NewSmallTalk(fixedPicker(0), fixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))),
		Metrics:       f.metrics,
	})
	return f
}

func studentRequest(intent models.Intent, message string) ComposeRequest {
	return ComposeRequest{Intent: intent, Message: message, Role: models.RoleStudent, StudentID: int64Ptr(7)}
}

func adminRequest(intent models.Intent, message string) ComposeRequest {
	return ComposeRequest{Intent: intent, Message: message, Role: models.RoleAdmin, UserID: int64Ptr(1)}
}

func TestComposeStudentFeePaidInFull(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), studentRequest(models.IntentFeeQuery, "fee"))

	assert.Equal(t, models.IntentFeeQuery, reply.Intent)
	assert.Contains(t, reply.Text, "📋 **Status:**         Paid")
	assert.Contains(t, reply.Text, "⏳ **Due Amount:**    ₹0.00")
	assert.Contains(t, reply.Text, "📌 **Total Fee:**      ₹60,000.00")
	fee, ok := reply.Data.(*models.Fee)
	require.True(t, ok)
	assert.Equal(t, models.PaymentPaid, fee.PaymentStatus)
}

func TestComposeIsIdempotent(t *testing.T) {
	f := newComposerFixture()

	first := f.composer.Compose(context.Background(), studentRequest(models.IntentMarksQuery, "my marks"))
	second := f.composer.Compose(context.Background(), studentRequest(models.IntentMarksQuery, "my marks"))
	assert.Equal(t, first.Text, second.Text)
}

func TestComposeAdminMarksByClass(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), adminRequest(models.IntentMarksQuery, "marks TY-CSE"))

	assert.Equal(t, "ty-cse", f.marks.overviewArg)
	assert.Contains(t, reply.Text, "📊 **Students Academic Performance (ty-cse)**")
	assert.Contains(t, reply.Text, "Total Students: 2")
	assert.Contains(t, reply.Text, "📌 **Asha Patil** (Roll: TYCSE07)\n   └─ Total: 60/70 (85.7%)")
	assert.NotContains(t, reply.Text, "Ravi Jadhav")
	assert.NotContains(t, reply.Text, "Neha Shinde")
}

func TestComposeAdminMarksBySubjectShowsFirstMarkPerStudent(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), adminRequest(models.IntentMarksQuery, "os marks"))

	assert.Contains(t, reply.Text, "📊 **Students Academic Performance in OPERATING SYSTEM**")
	assert.Equal(t, 1, strings.Count(reply.Text, "Asha Patil"))
	assert.Contains(t, reply.Text, "Operating Systems: 10/35 (28.6%) ❌")
	assert.Contains(t, reply.Text, "Operating Systems: 28/35 (80.0%) ✅")
	assert.NotContains(t, reply.Text, "Data Structures")
}

func TestComposeAdminTargetFees(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), adminRequest(models.IntentFeeQuery, "TYCSE07"))
	assert.Contains(t, reply.Text, "💳 **Fee Payment Details for Asha Patil**")

	reply = f.composer.Compose(context.Background(), adminRequest(models.IntentFeeQuery, "SYIT08"))
	assert.Equal(t, "No fee details found for Ravi Jadhav.", reply.Text)
}

func TestComposeAdminFeeOverviewDerivesStatus(t *testing.T) {
	f := newComposerFixture()
	total, paid, due, id := 60000.0, 60000.0, 500.0, int64(3)
	stale := models.PaymentPartial
	f.fees.overview = []models.FeeOverview{
		{StudentRow: overviewRow(7, "TYCSE07", "Asha Patil", "TY-CSE"), FeeID: &id, TotalAmount: &total, PaidAmount: &paid, DueAmount: &due, PaymentStatus: &stale},
	}

	reply := f.composer.Compose(context.Background(), adminRequest(models.IntentFeeQuery, "fees TY-CSE"))

	assert.Contains(t, reply.Text, "Paid: ₹60,000 / Total: ₹60,000  |  Status: ✅ Paid")
	assert.NotContains(t, reply.Text, "Partial")
}

func TestComposeAdminFiltersOnlyForRecordIntents(t *testing.T) {
	f := newComposerFixture()

	filters, err := f.composer.adminFilters(context.Background(), adminRequest(models.IntentEventQuery, "events TYCSE07"))
	require.NoError(t, err)
	assert.Nil(t, filters.TargetStudentID)
	assert.Empty(t, f.students.calls)

	filters, err = f.composer.adminFilters(context.Background(), studentRequest(models.IntentFeeQuery, "fees TYCSE07"))
	require.NoError(t, err)
	assert.Nil(t, filters.TargetStudentID)

	filters, err = f.composer.adminFilters(context.Background(), adminRequest(models.IntentFeeQuery, "fees TYCSE07"))
	require.NoError(t, err)
	require.NotNil(t, filters.TargetStudentID)
	assert.Equal(t, int64(7), *filters.TargetStudentID)
}

func TestComposeAdminTargetFeesByRollInMessage(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), adminRequest(models.IntentFeeQuery, "fees TYCSE07"))
	assert.Contains(t, reply.Text, "💳 **Fee Payment Details for Asha Patil**")
	assert.Contains(t, reply.Text, "📋 **Status:**         Paid")
}

func TestComposeStudentSubjectMarksDeduplicates(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), studentRequest(models.IntentMarksQuery, "operating system marks"))

	assert.Contains(t, reply.Text, "📊 **Subject: Operating System**")
	assert.Equal(t, 1, strings.Count(reply.Text, "📌 **Subject:**"))
	assert.Contains(t, reply.Text, "🔖 **Status:**      ❌ FAIL")
	data, ok := reply.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["marks"], 1)
}

func TestComposeStudentAllMarks(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), studentRequest(models.IntentMarksQuery, "show my marks"))

	assert.Contains(t, reply.Text, "📊 **Academic Performance Report**")
	assert.Contains(t, reply.Text, "📈 **Overall Performance:** 40.0/70.0 (57.1%)")
	assert.Equal(t, 2, strings.Count(reply.Text, "   └─ Marks:"))
}

func TestComposeStudentAttendanceSummary(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), studentRequest(models.IntentAttendanceQuery, "attendance"))

	assert.Contains(t, reply.Text, "   └─ Overall:          65.0%")
	assert.Contains(t, reply.Text, "   └─ 40/50 (80.0%)  |  Status: ✅ Good")
	assert.Contains(t, reply.Text, "   └─ 25/50 (50.0%)  |  Status: ❌ Low")
	assert.Contains(t, reply.Text, "🔖 **Overall Status:** ⚠️ Moderate Attendance")
	data, ok := reply.Data.(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 65.0, data["overall_percentage"], 0.001)
}

func TestComposeUnknownMessage(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentUnknown, Message: "xyz123"})

	assert.Equal(t, models.IntentUnknown, reply.Intent)
	assert.Equal(t, unknownReply, reply.Text)
	assert.Equal(t, map[string]interface{}{}, reply.Data)
}

func TestComposeLookupFailureFallsBack(t *testing.T) {
	f := newComposerFixture()
	f.fees.err = errors.New("connection refused")

	reply := f.composer.Compose(context.Background(), studentRequest(models.IntentFeeQuery, "fee"))

	assert.Equal(t, "Unable to fetch fee details at the moment.", reply.Text)
	assert.Equal(t, models.IntentFeeQuery, reply.Intent)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().ChatFallbacks)
}

func TestComposeStudentWithoutIdentity(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentAttendanceQuery, Message: "attendance"})
	assert.Equal(t, "Please log in as a student to view attendance details.", reply.Text)

	reply = f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentFeeQuery, Message: "fee", UserID: int64Ptr(999)})
	assert.Equal(t, "Please log in as a student to view fee details.", reply.Text)
}

func TestComposeStudentResolvedFromUser(t *testing.T) {
	f := newComposerFixture()

	reply := f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentFeeQuery, Message: "fee", Role: models.RoleStudent, UserID: int64Ptr(107)})
	assert.Contains(t, reply.Text, "Paid")
}

func TestComposeEvents(t *testing.T) {
	f := newComposerFixture()
	reply := f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentEventQuery, Message: "events"})
	assert.Equal(t, "No upcoming events found.", reply.Text)
	assert.Equal(t, map[string]interface{}{"events": []models.Event{}}, reply.Data)

	hall := "Main Hall"
	f.events.events = []models.Event{{
		Title:       "Code Sprint",
		EventDate:   time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		Location:    &hall,
		EventType:   "club_event",
		Description: strings.Repeat("a", 120),
	}}
	reply = f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentEventQuery, Message: "events"})
	assert.Contains(t, reply.Text, "📅 **Upcoming Events (1 total)**")
	assert.Contains(t, reply.Text, "   └─ 🎭 Type:       Club_Event")
	assert.Contains(t, reply.Text, "   └─ 📅 Date:       2025-11-05")
	assert.Contains(t, reply.Text, "   └─ 🕐 Time:       TBD")
	assert.Contains(t, reply.Text, "   └─ 📝 Form:       Club Event Registration")
	assert.Contains(t, reply.Text, strings.Repeat("a", 100)+"...")
}

func TestComposeAnnouncements(t *testing.T) {
	f := newComposerFixture()
	reply := f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentAnnouncementQuery, Message: "announcements"})
	assert.Equal(t, "Please log in to view announcements.", reply.Text)

	f.notifications.items = map[int64][]models.Notification{1: {
		{Title: "Exam", Message: "Midterms next week", Type: models.NotificationWarning, CreatedAt: time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)},
		{Title: "Fest", Message: "Register now", Read: true, CreatedAt: time.Date(2025, 9, 2, 8, 30, 0, 0, time.UTC)},
	}}
	reply = f.composer.Compose(context.Background(), adminRequest(models.IntentAnnouncementQuery, "announcements"))
	assert.Contains(t, reply.Text, "⚠️ **Exam** [🆕 NEW]")
	assert.Contains(t, reply.Text, "ℹ️ **Fest** [✓ Read]")
	assert.Contains(t, reply.Text, "   └─ 🕐 Date:     2025-09-01T08:30:00")
}

func TestComposeFixedTexts(t *testing.T) {
	f := newComposerFixture()

	assert.Equal(t, studentInfoReply, f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentStudentInfo}).Text)
	assert.Equal(t, helpQueryReply, f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentHelpQuery}).Text)
	assert.Equal(t, "Goodbye 👋! Have a great day ahead!", f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentGoodbye}).Text)
	assert.True(t, strings.HasPrefix(f.composer.Compose(context.Background(), ComposeRequest{Intent: models.IntentHostel}).Text, "🛏️ **Hostel Information**"))
}
