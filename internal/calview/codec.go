package calview

import (
	"strings"
	"time"

	"almanac-cli/internal/model"
)

const dateLayout = "2006-01-02"

// URL query parameters owned by the calendar screen.
const (
	paramDate = "date"
	paramView = "view"
)

// ParseDate parses a YYYY-MM-DD token into a local midnight time.
// Malformed, empty or missing input falls back to today's date: a bad URL
// must never blank the calendar.
func ParseDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if t, err := time.ParseInLocation(dateLayout, raw, now.Location()); err == nil {
			return t
		}
	}
	return Midnight(now)
}

// FormatDate renders the local calendar fields zero-padded, so the URL date
// always matches what the user sees regardless of timezone offset.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Midnight truncates t to its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseView maps a URL token to a ViewKind. Tokens are matched
// case-sensitively; anything else (including "") yields the month view.
func ParseView(raw string) model.ViewKind {
	switch raw {
	case "month":
		return model.ViewMonth
	case "week":
		return model.ViewWeek
	case "day":
		return model.ViewDay
	case "list":
		return model.ViewList
	default:
		return model.ViewMonth
	}
}

// FormatView is the inverse of ParseView; total for all four views.
func FormatView(v model.ViewKind) string {
	switch v {
	case model.ViewWeek:
		return "week"
	case model.ViewDay:
		return "day"
	case model.ViewList:
		return "list"
	default:
		return "month"
	}
}
