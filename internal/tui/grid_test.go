package tui

import (
	"strings"
	"testing"
	"time"

	"almanac-cli/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestVisibleRangeMonthCoversWholeWeeks(t *testing.T) {
	start, end := visibleRange(model.ViewMonth, day(2024, time.May, 15))
	if !start.Equal(day(2024, time.April, 29)) {
		t.Fatalf("start = %v, want 2024-04-29", start)
	}
	if !end.Equal(day(2024, time.June, 3)) {
		t.Fatalf("end = %v, want 2024-06-03", end)
	}
}

func TestVisibleRangeWeekStartsMonday(t *testing.T) {
	// 2024-03-10 is a Sunday.
	start, end := visibleRange(model.ViewWeek, day(2024, time.March, 10))
	if !start.Equal(day(2024, time.March, 4)) {
		t.Fatalf("start = %v, want 2024-03-04", start)
	}
	if !end.Equal(day(2024, time.March, 11)) {
		t.Fatalf("end = %v, want 2024-03-11", end)
	}
}

func TestVisibleRangeDayAndList(t *testing.T) {
	start, end := visibleRange(model.ViewDay, day(2024, time.May, 15))
	if !start.Equal(day(2024, time.May, 15)) || !end.Equal(day(2024, time.May, 16)) {
		t.Fatalf("day range = %v..%v", start, end)
	}

	start, end = visibleRange(model.ViewList, day(2024, time.May, 15))
	if !start.Equal(day(2024, time.May, 1)) || !end.Equal(day(2024, time.June, 1)) {
		t.Fatalf("list range = %v..%v", start, end)
	}
}

func TestRenderTaskList(t *testing.T) {
	hm := "09:00"
	out := renderTaskList([]model.Task{
		{Title: "Standup", Due: &model.DateTime{Date: "2024-05-01", Time: &hm}},
		{Title: "Review", Due: &model.DateTime{Date: "2024-05-02"}},
	}, 60)
	if !strings.Contains(out, "2024-05-01  09:00 Standup") {
		t.Fatalf("timed row missing:\n%s", out)
	}
	if !strings.Contains(out, "2024-05-02  Review") {
		t.Fatalf("date-only row missing:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a very long task title", 10); len(got) > 13 || !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
}
