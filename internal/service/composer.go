package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const (
	unknownReply     = "I can help with fees, attendance, marks, events, admissions, college information, and more. What would you like to know?"
	helpQueryReply   = "I can help with fees, attendance, and events. For other features, please explore the dashboard."
	studentInfoReply = "Please visit your Profile page to view student details."
)

// fallbackReplies replace a reply whose lookups failed.
var fallbackReplies = map[models.Intent]string{
	models.IntentFeeQuery:          "Unable to fetch fee details at the moment.",
	models.IntentAttendanceQuery:   "Unable to fetch attendance details at the moment.",
	models.IntentMarksQuery:        "Unable to fetch marks details at the moment.",
	models.IntentEventQuery:        "Unable to fetch events at the moment.",
	models.IntentAnnouncementQuery: "Unable to fetch announcements at the moment.",
}

type composerStudents interface {
	studentDirectory
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	FindByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
}

type composerMarks interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Mark, error)
	ListWithStudents(ctx context.Context) ([]models.StudentMark, error)
	Overview(ctx context.Context, className string) ([]models.MarkOverview, error)
}

type composerAttendance interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceSummary, error)
	Overview(ctx context.Context, className string) ([]models.AttendanceOverview, error)
}

type composerFees interface {
	GetByStudent(ctx context.Context, studentID int64) (*models.Fee, error)
	Overview(ctx context.Context, className string) ([]models.FeeOverview, error)
}

type composerSubjects interface {
	List(ctx context.Context, classID *int64) ([]models.Subject, error)
}

type composerEvents interface {
	Upcoming(ctx context.Context) ([]models.Event, error)
}

type composerNotifications interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
}

// ComposerParams wires the collaborators of a Composer.
type ComposerParams struct {
	Students      composerStudents
	Marks         composerMarks
	Attendance    composerAttendance
	Fees          composerFees
	Subjects      composerSubjects
	Events        composerEvents
	Notifications composerNotifications
	SmallTalk     *SmallTalk
	College       *CollegeInfo
	Metrics       *MetricsService
	Logger        *zap.Logger
	LookupTimeout time.Duration
}

// ComposeRequest is a classified message with the caller's identity.
type ComposeRequest struct {
	Intent    models.Intent
	Message   string
	Role      models.UserRole
	StudentID *int64
	UserID    *int64
}

// Composer renders the reply text and data for a classified message.
type Composer struct {
	students      composerStudents
	marks         composerMarks
	attendance    composerAttendance
	fees          composerFees
	subjects      composerSubjects
	events        composerEvents
	notifications composerNotifications
	filters       *FilterExtractor
	smallTalk     *SmallTalk
	college       *CollegeInfo
	metrics       *MetricsService
	logger        *zap.Logger
	lookupTimeout time.Duration
}

// NewComposer constructs a Composer.
func NewComposer(p ComposerParams) *Composer {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.SmallTalk == nil {
		p.SmallTalk = NewSmallTalk(nil, nil)
	}
	if p.College == nil {
		p.College = NewCollegeInfo(College)
	}
	if p.LookupTimeout <= 0 {
		p.LookupTimeout = 5 * time.Second
	}
	return &Composer{
		students:      p.Students,
		marks:         p.Marks,
		attendance:    p.Attendance,
		fees:          p.Fees,
		subjects:      p.Subjects,
		events:        p.Events,
		notifications: p.Notifications,
		filters:       NewFilterExtractor(p.Students),
		smallTalk:     p.SmallTalk,
		college:       p.College,
		metrics:       p.Metrics,
		logger:        p.Logger,
		lookupTimeout: p.LookupTimeout,
	}
}

// Compose answers req. It never fails: a failed lookup degrades to the
// intent's fallback text, which is logged and counted.
func (c *Composer) Compose(ctx context.Context, req ComposeRequest) models.Reply {
	switch {
	case c.smallTalk.Handles(req.Intent):
		return textReply(req.Intent, c.smallTalk.Reply(req.Intent, req.Message))
	case c.college.Handles(req.Intent):
		return textReply(req.Intent, c.college.Render(req.Intent, req.Message))
	}

	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	var (
		reply models.Reply
		err   error
	)
	switch req.Intent {
	case models.IntentFeeQuery:
		reply, err = c.composeFees(ctx, req)
	case models.IntentAttendanceQuery:
		reply, err = c.composeAttendance(ctx, req)
	case models.IntentMarksQuery:
		reply, err = c.composeMarks(ctx, req)
	case models.IntentEventQuery:
		reply, err = c.composeEvents(ctx)
	case models.IntentAnnouncementQuery:
		reply, err = c.composeAnnouncements(ctx, req)
	case models.IntentStudentInfo:
		reply = textReply(req.Intent, studentInfoReply)
	case models.IntentHelpQuery:
		reply = textReply(req.Intent, helpQueryReply)
	default:
		reply = textReply(models.IntentUnknown, unknownReply)
	}

	if err != nil {
		c.logger.Warn("chatbot lookup failed",
			zap.String("intent", string(req.Intent)),
			zap.String("role", string(req.Role)),
			zap.Error(err),
		)
		c.metrics.RecordChatFallback(req.Intent)
		return textReply(req.Intent, fallbackReplies[req.Intent])
	}
	return reply
}

// resolveStudent finds the caller's own student id from the request or the
// owning user. ok is false when neither resolves.
func (c *Composer) resolveStudent(ctx context.Context, req ComposeRequest) (int64, bool, error) {
	if req.StudentID != nil {
		return *req.StudentID, true, nil
	}
	if req.UserID == nil {
		return 0, false, nil
	}
	student, err := c.students.FindByUserID(ctx, *req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return student.ID, true, nil
}

// adminFilters narrows an admin query on a per-student intent. Other
// callers and intents get no filters.
func (c *Composer) adminFilters(ctx context.Context, req ComposeRequest) (models.AdminFilters, error) {
	if !req.Role.IsAdmin() || !req.Intent.AdminScoped() {
		return models.AdminFilters{}, nil
	}
	return c.filters.Extract(ctx, req.Message)
}

// studentName returns the display name of a student, "Student" when unknown.
func (c *Composer) studentName(ctx context.Context, id int64) (string, error) {
	student, err := c.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "Student", nil
		}
		return "", err
	}
	return student.Name, nil
}

func textReply(intent models.Intent, text string) models.Reply {
	return models.Reply{Intent: intent, Text: text, Data: emptyData()}
}

func dataReply(intent models.Intent, text string, data interface{}) models.Reply {
	return models.Reply{Intent: intent, Text: text, Data: data}
}

func emptyData() map[string]interface{} {
	return map[string]interface{}{}
}
