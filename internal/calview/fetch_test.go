package calview

import (
	"testing"

	"almanac-cli/internal/model"
)

func TestEventsLoader_DiscardsStaleCompletion(t *testing.T) {
	var l EventsLoader

	first := l.Begin()
	second := l.Begin()

	if l.Complete(first, []model.Task{{ID: "task-old"}}) {
		t.Fatalf("stale completion was accepted")
	}
	if !l.Complete(second, []model.Task{{ID: "task-new"}}) {
		t.Fatalf("latest completion was rejected")
	}

	events := l.Events()
	if len(events) != 1 || events[0].ID != "task-new" {
		t.Fatalf("events = %v, want only task-new", events)
	}

	// A late echo of the old fetch cannot overwrite the installed result.
	if l.Complete(first, []model.Task{{ID: "task-old"}}) {
		t.Fatalf("stale completion accepted after newer install")
	}
}
