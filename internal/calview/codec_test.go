package calview

import (
	"testing"
	"time"

	"almanac-cli/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)
}

func TestParseDate_RoundTrip(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-29", "2023-12-31", "2024-05-01"}
	for _, d := range dates {
		got := FormatDate(ParseDate(d, fixedNow()))
		if got != d {
			t.Fatalf("round trip %q -> %q", d, got)
		}
	}
}

func TestParseDate_FallsBackToToday(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-date", "2024-13-40", "05/01/2024"} {
		got := ParseDate(raw, fixedNow())
		if FormatDate(got) != "2024-05-15" {
			t.Fatalf("ParseDate(%q) = %s, want today (2024-05-15)", raw, FormatDate(got))
		}
	}
}

func TestParseDate_UsesLocalCalendarFields(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	now := time.Date(2024, time.May, 15, 23, 30, 0, 0, loc)
	got := ParseDate("2024-05-01", now)
	if got.Location() != loc {
		t.Fatalf("parsed date lost the caller's location")
	}
	if FormatDate(got) != "2024-05-01" {
		t.Fatalf("got %s, want 2024-05-01", FormatDate(got))
	}
}

func TestViewTokens_RoundTrip(t *testing.T) {
	views := []model.ViewKind{model.ViewMonth, model.ViewWeek, model.ViewDay, model.ViewList}
	for _, v := range views {
		if got := ParseView(FormatView(v)); got != v {
			t.Fatalf("round trip %s -> %s", v, got)
		}
	}
}

func TestParseView_DefaultsToMonth(t *testing.T) {
	for _, raw := range []string{"", "bogus", "Month", "WEEK", "agenda"} {
		if got := ParseView(raw); got != model.ViewMonth {
			t.Fatalf("ParseView(%q) = %s, want month", raw, got)
		}
	}
}
