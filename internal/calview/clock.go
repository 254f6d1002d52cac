package calview

import (
	"time"

	"almanac-cli/internal/model"
)

// Target computes the anchor date for an explicit prev/next/today action.
// Month and list views step by one calendar month, week views by 7 days and
// day views by 1 day. Today ignores the current anchor entirely.
func Target(intent model.NavigationIntent, current time.Time, view model.ViewKind, now time.Time) time.Time {
	if intent == model.NavToday {
		return Midnight(now)
	}
	step := 1
	if intent == model.NavPrev {
		step = -1
	}
	switch view {
	case model.ViewWeek:
		return current.AddDate(0, 0, 7*step)
	case model.ViewDay:
		return current.AddDate(0, 0, step)
	default:
		return addMonth(current, step)
	}
}

// addMonth steps by one calendar month, clamping the day-of-month to the last
// valid day of the target month (so Jan 31 -> Feb 29 in a leap year, not
// Mar 2 via date normalization).
func addMonth(t time.Time, delta int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
	y, m, _ := first.Date()
	return time.Date(y, m, clampDay(y, m, t.Day()), 0, 0, 0, 0, t.Location())
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := daysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}
