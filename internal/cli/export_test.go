package cli

import (
	"testing"
	"time"

	"almanac-cli/internal/model"
)

func hmPtr(s string) *string { return &s }

func TestDateTimeToLocal(t *testing.T) {
	ts, timed := dateTimeToLocal(&model.DateTime{Date: "2024-05-02", Time: hmPtr("14:30")})
	if !timed {
		t.Fatalf("timed value reported as date-only")
	}
	y, m, d := ts.Date()
	if y != 2024 || m != time.May || d != 2 || ts.Hour() != 14 || ts.Minute() != 30 {
		t.Fatalf("got %v", ts)
	}

	ts, timed = dateTimeToLocal(&model.DateTime{Date: "2024-05-02"})
	if timed {
		t.Fatalf("date-only value reported as timed")
	}
	if ts.Hour() != 0 || ts.Minute() != 0 {
		t.Fatalf("date-only value not at midnight: %v", ts)
	}

	if _, timed = dateTimeToLocal(&model.DateTime{Date: "garbage"}); timed {
		t.Fatalf("malformed date reported as timed")
	}
}

func TestCountScheduled(t *testing.T) {
	tasks := []model.Task{
		{ID: "task-a", Title: "a", Due: &model.DateTime{Date: "2024-05-01"}},
		{ID: "task-b", Title: "b"},
		{ID: "task-c", Title: "c", Due: &model.DateTime{Date: "  "}},
	}
	if n := countScheduled(tasks); n != 1 {
		t.Fatalf("countScheduled = %d, want 1", n)
	}
}
