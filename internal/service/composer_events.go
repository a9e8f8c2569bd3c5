package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const (
	chatEventLimit        = 8
	chatAnnouncementLimit = 10
)

type eventKind struct {
	Icon string
	Form string
}

const collegeEventForm = "College Event Registration"

var eventKinds = map[string]eventKind{
	"workshop":    {"🔧", "Workshop/Seminar Registration"},
	"seminar":     {"🎓", "Workshop/Seminar Registration"},
	"hackathon":   {"💻", "Hackathon Event Registration"},
	"club_event":  {"🎭", "Club Event Registration"},
	"competition": {"🏆", "Competition Registration"},
	"conference":  {"🏛️", collegeEventForm},
	"cultural":    {"🎨", collegeEventForm},
	"sports":      {"⚽", collegeEventForm},
	"academic":    {"📚", collegeEventForm},
	"general":     {"📅", collegeEventForm},
}

var notificationBadges = map[models.NotificationType]string{
	models.NotificationSuccess: "✅",
	models.NotificationWarning: "⚠️",
	models.NotificationError:   "❌",
	models.NotificationInfo:    "ℹ️",
}

func (c *Composer) composeEvents(ctx context.Context) (models.Reply, error) {
	intent := models.IntentEventQuery
	events, err := c.events.Upcoming(ctx)
	if err != nil {
		return models.Reply{}, err
	}
	if events == nil {
		events = []models.Event{}
	}
	data := map[string]interface{}{"events": events}
	if len(events) == 0 {
		return dataReply(intent, "No upcoming events found.", data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **Upcoming Events (%d total)**\n%s\n\n", len(events), rule60)
	for _, e := range firstN(events, chatEventLimit) {
		eventType := e.EventType
		if eventType == "" {
			eventType = "general"
		}
		kind, ok := eventKinds[eventType]
		if !ok {
			kind = eventKinds["general"]
		}
		fmt.Fprintf(&b, "📍 **%s**\n", e.Title)
		fmt.Fprintf(&b, "   └─ %s Type:       %s\n", kind.Icon, wordTitle(eventType))
		fmt.Fprintf(&b, "   └─ 📅 Date:       %s\n", e.EventDate.Format(dateLayout))
		fmt.Fprintf(&b, "   └─ 🕐 Time:       %s\n", orDefault(e.EventTime, "TBD"))
		fmt.Fprintf(&b, "   └─ 📍 Location:   %s\n", orDefault(e.Location, "TBD"))
		fmt.Fprintf(&b, "   └─ 📝 Form:       %s\n", kind.Form)
		if e.Description != "" {
			fmt.Fprintf(&b, "   └─ 📄 About:      %s\n", truncate(e.Description, 100))
		}
		b.WriteString("\n")
	}
	if len(events) > chatEventLimit {
		fmt.Fprintf(&b, "... and %d more events\n", len(events)-chatEventLimit)
	}
	fmt.Fprintf(&b, "%s\n", rule60)
	b.WriteString("💡 **Registration:** Each event uses a specialized Google Form for professional registration.\n")
	b.WriteString("🔗 **Forms Available:** Workshop, Hackathon, Club Events, Competitions, and General Events.\n")
	b.WriteString(rule60)
	return dataReply(intent, b.String(), data), nil
}

func (c *Composer) composeAnnouncements(ctx context.Context, req ComposeRequest) (models.Reply, error) {
	intent := models.IntentAnnouncementQuery
	if req.UserID == nil {
		return textReply(intent, "Please log in to view announcements."), nil
	}
	notifications, err := c.notifications.ListByUser(ctx, *req.UserID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(notifications) == 0 {
		return textReply(intent, "No announcements found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📢 **Announcements (%d total)**\n%s\n\n", len(notifications), rule60)
	shown := firstN(notifications, chatAnnouncementLimit)
	for i, n := range shown {
		badge, ok := notificationBadges[n.Type]
		if !ok {
			badge = notificationBadges[models.NotificationInfo]
		}
		state := "🆕 NEW"
		if n.Read {
			state = "✓ Read"
		}
		fmt.Fprintf(&b, "%s **%s** [%s]\n", badge, n.Title, state)
		fmt.Fprintf(&b, "   └─ 📝 Message:  %s\n", truncate(n.Message, 150))
		fmt.Fprintf(&b, "   └─ 🕐 Date:     %s\n", n.CreatedAt.Format(timestampLayout))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\n%s", rule60)
	return dataReply(intent, b.String(), map[string]interface{}{"notifications": notifications}), nil
}
