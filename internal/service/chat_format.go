package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders v with the given decimals and comma thousand separators.
func formatAmount(v float64, decimals int) string {
	return amountPrinter.Sprintf("%.*f", decimals, v)
}

func groupThousands(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format(dateLayout)
}

func orDefault(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}

// truncate cuts s to max runes and marks the cut with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}

// wordTitle title-cases each underscore separated part, so "club_event"
// becomes "Club_Event".
func wordTitle(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		parts[i] = titleCase(part)
	}
	return strings.Join(parts, "_")
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func passBadge(percentage float64) (string, string) {
	if percentage >= models.PassPercentage {
		return "✅", "PASS"
	}
	return "❌", "FAIL"
}

// attendanceBadge returns the emoji and label for an attendance percentage.
func attendanceBadge(percentage float64) (string, string) {
	switch {
	case percentage >= models.AttendanceGood:
		return "✅", "Good"
	case percentage >= models.AttendanceModerate:
		return "⚠️", "Moderate"
	default:
		return "❌", "Low"
	}
}

func ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
