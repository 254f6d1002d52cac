package calview

import (
	"sync"

	"almanac-cli/internal/model"
)

// EventsLoader tracks the in-flight event fetch for the current (date, view).
// Fetches run concurrently with further navigation, so each one carries a
// token; a completion whose token is no longer the latest is discarded
// instead of overwriting a newer view's events.
type EventsLoader struct {
	mu     sync.Mutex
	latest uint64
	events []model.Task
}

// Begin registers a new fetch and returns its token. Any fetch started
// earlier becomes stale immediately.
func (l *EventsLoader) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latest++
	return l.latest
}

// Complete installs the fetched events if token still identifies the latest
// fetch. It reports whether the result was accepted.
func (l *EventsLoader) Complete(token uint64, events []model.Task) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.latest {
		return false
	}
	l.events = events
	return true
}

// Events returns the most recently accepted result.
func (l *EventsLoader) Events() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events
}
