package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const (
	targetAttendanceLimit  = 5
	summaryAttendanceLimit = 8
)

func (c *Composer) composeAttendance(ctx context.Context, req ComposeRequest) (models.Reply, error) {
	intent := models.IntentAttendanceQuery
	if req.Role.IsAdmin() {
		filters, err := c.adminFilters(ctx, req)
		if err != nil {
			return models.Reply{}, err
		}
		if filters.TargetStudentID != nil {
			return c.targetAttendance(ctx, *filters.TargetStudentID)
		}
		return c.attendanceOverview(ctx, filters.ClassFilter)
	}

	studentID, ok, err := c.resolveStudent(ctx, req)
	if err != nil {
		return models.Reply{}, err
	}
	if !ok {
		return textReply(intent, "Please log in as a student to view attendance details."), nil
	}
	records, err := c.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(records) == 0 {
		return textReply(intent, "No attendance details found for your account."), nil
	}
	if alias, ok := detectSubject(req.Message, attendanceSubjectAliases); ok {
		return subjectAttendance(alias, records), nil
	}
	return attendanceSummary(records), nil
}

func subjectAttendance(alias subjectAlias, records []models.AttendanceSummary) models.Reply {
	intent := models.IntentAttendanceQuery
	var matched []models.AttendanceSummary
	for _, r := range records {
		if alias.matchesName(r.SubjectName) {
			matched = append(matched, r)
		}
	}
	matched = dedupeBySubject(matched, attendanceSubject)
	if len(matched) == 0 {
		return textReply(intent, fmt.Sprintf("No attendance found for %s.", alias.Subject))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 **Attendance: %s**\n%s\n\n", alias.Title(), rule50)
	for _, r := range matched {
		pct := ratio(float64(r.PresentCount), float64(r.TotalClasses))
		emoji, status := attendanceBadge(pct)
		fmt.Fprintf(&b, "📌 **Subject:**     %s\n", r.SubjectName)
		fmt.Fprintf(&b, "📊 **Classes:**     %d (Present: %d | Absent: %d)\n", r.TotalClasses, r.PresentCount, r.AbsentCount)
		fmt.Fprintf(&b, "📈 **Percentage:**  %.1f%%\n", pct)
		fmt.Fprintf(&b, "🔖 **Status:**      %s %s Attendance\n", emoji, status)
	}
	fmt.Fprintf(&b, "\n%s", rule50)
	return dataReply(intent, b.String(), map[string]interface{}{"attendance": matched})
}

func attendanceSummary(records []models.AttendanceSummary) models.Reply {
	present, total := attendanceTotals(records)
	overall := ratio(float64(present), float64(total))

	var b strings.Builder
	fmt.Fprintf(&b, "📈 **Attendance Summary Report**\n%s\n\n", rule60)
	b.WriteString("📊 **Overall Statistics:**\n")
	fmt.Fprintf(&b, "   └─ Total Classes:   %d\n", total)
	fmt.Fprintf(&b, "   └─ Present:         %d\n", present)
	fmt.Fprintf(&b, "   └─ Absent:          %d\n", total-present)
	fmt.Fprintf(&b, "   └─ Overall:          %.1f%%\n\n", overall)

	b.WriteString("📚 **Subject-wise Attendance:**\n\n")
	unique := dedupeBySubject(records, attendanceSubject)
	for _, r := range firstN(unique, summaryAttendanceLimit) {
		pct := ratio(float64(r.PresentCount), float64(r.TotalClasses))
		emoji, status := attendanceBadge(pct)
		fmt.Fprintf(&b, "📌 **%s**\n", r.SubjectName)
		fmt.Fprintf(&b, "   └─ %d/%d (%.1f%%)  |  Status: %s %s\n\n", r.PresentCount, r.TotalClasses, pct, emoji, status)
	}
	if len(unique) > summaryAttendanceLimit {
		fmt.Fprintf(&b, "... and %d more subjects\n\n", len(unique)-summaryAttendanceLimit)
	}

	emoji, status := attendanceBadge(overall)
	if status == "Low" {
		status = "Low - Please improve"
	}
	fmt.Fprintf(&b, "%s\n🔖 **Overall Status:** %s %s Attendance\n%s", rule60, emoji, status, rule60)

	return dataReply(models.IntentAttendanceQuery, b.String(), map[string]interface{}{
		"attendance_summary": records,
		"overall_percentage": overall,
	})
}

func (c *Composer) targetAttendance(ctx context.Context, studentID int64) (models.Reply, error) {
	intent := models.IntentAttendanceQuery
	name, err := c.studentName(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	records, err := c.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(records) == 0 {
		return textReply(intent, fmt.Sprintf("No attendance found for %s.", name)), nil
	}

	present, total := attendanceTotals(records)
	var b strings.Builder
	fmt.Fprintf(&b, "📈 **Attendance for %s**\n%s\n\n", name, rule50)
	fmt.Fprintf(&b, "📊 **Overall:** %.1f%% (%d/%d)\n\n", ratio(float64(present), float64(total)), present, total)
	for _, r := range firstN(records, targetAttendanceLimit) {
		fmt.Fprintf(&b, "📌 **%s:** %d/%d (%.1f%%)\n", r.SubjectName, r.PresentCount, r.TotalClasses, ratio(float64(r.PresentCount), float64(r.TotalClasses)))
	}
	fmt.Fprintf(&b, "\n%s", rule50)
	return dataReply(intent, b.String(), map[string]interface{}{"attendance": records}), nil
}

func (c *Composer) attendanceOverview(ctx context.Context, className string) (models.Reply, error) {
	rows, err := c.attendance.Overview(ctx, className)
	if err != nil {
		return models.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 **Students Attendance Summary%s**\n%s\n\n", classSuffix(className), rule60)
	fmt.Fprintf(&b, "Total Students: %d\n\n", len(rows))
	for _, row := range firstN(rows, adminListLimit) {
		if row.RecordCount == 0 {
			continue
		}
		emoji, _ := attendanceBadge(row.Percentage())
		fmt.Fprintf(&b, "📌 **%s** (Roll: %s)\n", row.Name, row.RollNo)
		fmt.Fprintf(&b, "   └─ Attendance: %d/%d (%.1f%%) %s\n\n", row.Present, row.Total, row.Percentage(), emoji)
	}
	return textReply(models.IntentAttendanceQuery, b.String()), nil
}

func attendanceTotals(records []models.AttendanceSummary) (present, total int) {
	for _, r := range records {
		present += r.PresentCount
		total += r.TotalClasses
	}
	return present, total
}

func attendanceSubject(r models.AttendanceSummary) string { return r.SubjectName }
