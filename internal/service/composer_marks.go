package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const studentMarksLimit = 10

var rule50Dash = strings.Repeat("-", 50)

func (c *Composer) composeMarks(ctx context.Context, req ComposeRequest) (models.Reply, error) {
	intent := models.IntentMarksQuery
	alias, hasSubject := detectSubject(req.Message, marksSubjectAliases)

	if req.Role.IsAdmin() {
		filters, err := c.adminFilters(ctx, req)
		if err != nil {
			return models.Reply{}, err
		}
		subject := alias.Subject
		if !hasSubject {
			subjects, err := c.subjects.List(ctx, nil)
			if err != nil {
				return models.Reply{}, err
			}
			subject, _ = matchCatalogSubject(req.Message, subjects)
		}
		switch {
		case subject != "":
			return c.marksBySubject(ctx, subject)
		case filters.TargetStudentID != nil:
			return c.targetMarks(ctx, *filters.TargetStudentID)
		default:
			return c.marksOverview(ctx, filters.ClassFilter)
		}
	}

	studentID, ok, err := c.resolveStudent(ctx, req)
	if err != nil {
		return models.Reply{}, err
	}
	if !ok {
		return textReply(intent, "Please log in as a student to view marks details."), nil
	}
	marks, err := c.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(marks) == 0 {
		return textReply(intent, "No marks details found for your account."), nil
	}
	if hasSubject {
		return subjectMarks(alias, marks), nil
	}
	return allMarks(marks), nil
}

func subjectMarks(alias subjectAlias, marks []models.Mark) models.Reply {
	intent := models.IntentMarksQuery
	var matched []models.Mark
	for _, m := range marks {
		if alias.matchesName(m.SubjectName) {
			matched = append(matched, m)
		}
	}
	matched = dedupeBySubject(matched, markSubject)
	if len(matched) == 0 {
		return textReply(intent, fmt.Sprintf("No marks found for %s.", alias.Subject))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Subject: %s**\n%s\n\n", alias.Title(), rule50)
	for i, m := range matched {
		emoji, status := passBadge(m.Percentage())
		fmt.Fprintf(&b, "📌 **Subject:**     %s\n", m.SubjectName)
		fmt.Fprintf(&b, "🎯 **Marks:**       %.0f/%.0f (%.1f%%)\n", m.ObtainedMarks, m.TotalMarks, m.Percentage())
		fmt.Fprintf(&b, "📅 **Exam Date:**   %s\n", formatDate(m.ExamDate))
		fmt.Fprintf(&b, "🔖 **Status:**      %s %s\n", emoji, status)
		if i < len(matched)-1 {
			fmt.Fprintf(&b, "\n%s\n\n", rule50Dash)
		}
	}
	b.WriteString(rule50)
	return dataReply(intent, b.String(), map[string]interface{}{"marks": matched})
}

func allMarks(marks []models.Mark) models.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Academic Performance Report**\n%s\n\n", rule60)

	var obtained, total float64
	for _, m := range firstN(dedupeBySubject(marks, markSubject), studentMarksLimit) {
		writeMarkRow(&b, m)
		obtained += m.ObtainedMarks
		total += m.TotalMarks
	}
	if total > 0 {
		fmt.Fprintf(&b, "%s\n📈 **Overall Performance:** %.1f/%.1f (%.1f%%)\n%s", rule60, obtained, total, ratio(obtained, total), rule60)
	}
	return dataReply(models.IntentMarksQuery, b.String(), map[string]interface{}{"marks": marks})
}

func (c *Composer) targetMarks(ctx context.Context, studentID int64) (models.Reply, error) {
	intent := models.IntentMarksQuery
	name, err := c.studentName(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	marks, err := c.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(marks) == 0 {
		return textReply(intent, fmt.Sprintf("No marks found for %s.", name)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Academic Performance Report for %s**\n%s\n\n", name, rule60)
	for _, m := range firstN(marks, studentMarksLimit) {
		writeMarkRow(&b, m)
	}
	b.WriteString(rule60)
	return dataReply(intent, b.String(), map[string]interface{}{"marks": marks}), nil
}

// marksBySubject lists each student's first mark in subject across all classes.
func (c *Composer) marksBySubject(ctx context.Context, subject string) (models.Reply, error) {
	rows, err := c.marks.ListWithStudents(ctx)
	if err != nil {
		return models.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Students Academic Performance in %s**\n%s\n\n", strings.ToUpper(subject), rule60)
	shown := make(map[int64]struct{})
	for _, row := range rows {
		if _, ok := shown[row.StudentID]; ok {
			continue
		}
		if !subjectsEquivalent(subject, row.SubjectName) {
			continue
		}
		shown[row.StudentID] = struct{}{}
		emoji, _ := passBadge(row.Percentage())
		fmt.Fprintf(&b, "📌 **%s** (Roll: %s)\n", row.StudentName, row.RollNo)
		fmt.Fprintf(&b, "   └─ %s: %.0f/%.0f (%.1f%%) %s\n\n", row.SubjectName, row.ObtainedMarks, row.TotalMarks, row.Percentage(), emoji)
	}
	return textReply(models.IntentMarksQuery, b.String()), nil
}

func (c *Composer) marksOverview(ctx context.Context, className string) (models.Reply, error) {
	rows, err := c.marks.Overview(ctx, className)
	if err != nil {
		return models.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Students Academic Performance%s**\n%s\n\n", classSuffix(className), rule60)
	fmt.Fprintf(&b, "Total Students: %d\n\n", len(rows))
	for _, row := range firstN(rows, adminListLimit) {
		if row.MarkCount == 0 || row.Total <= 0 {
			continue
		}
		fmt.Fprintf(&b, "📌 **%s** (Roll: %s)\n", row.Name, row.RollNo)
		fmt.Fprintf(&b, "   └─ Total: %.0f/%.0f (%.1f%%)\n\n", row.Obtained, row.Total, row.Percentage())
	}
	return textReply(models.IntentMarksQuery, b.String()), nil
}

func writeMarkRow(b *strings.Builder, m models.Mark) {
	emoji, status := passBadge(m.Percentage())
	fmt.Fprintf(b, "📌 **%s**\n", m.SubjectName)
	fmt.Fprintf(b, "   └─ Marks: %.0f/%.0f  |  Percentage: %.1f%%  |  Status: %s %s\n\n", m.ObtainedMarks, m.TotalMarks, m.Percentage(), emoji, status)
}

func markSubject(m models.Mark) string { return m.SubjectName }

