package calview

import (
	"time"

	"almanac-cli/internal/model"
)

type guardState int

const (
	guardUninitialized guardState = iota
	guardSettled
)

// Notification is what the calendar widget reports when its view settles:
// the view it landed in, the start of its visible range, and the QueryState
// generation it rendered from.
type Notification struct {
	View       model.ViewKind
	RangeStart time.Time
	Generation uint64
}

// SyncGuard classifies every "view settled" notification so that only a
// genuine in-widget view-button click is written back to the query string.
// The baseline is the (date, view) pair last reconciled against; drift
// between the baseline and the current query means something external
// (back/forward, deep link, explicit prev/next/today) moved the URL, and
// that always wins over a simultaneous view change.
type SyncGuard struct {
	query *QueryState

	state    guardState
	baseDate string
	baseView model.ViewKind
}

func NewSyncGuard(query *QueryState) *SyncGuard {
	return &SyncGuard{query: query}
}

// Transition classifies one notification and performs at most one write.
// The function is total: every notification gets exactly one classification.
func (g *SyncGuard) Transition(n Notification) model.SyncClassification {
	urlDate, urlView := g.query.Read()
	rawDate := FormatDate(urlDate)

	if g.state == guardUninitialized {
		g.state = guardSettled
		g.baseDate = rawDate
		g.baseView = urlView
		return model.SyncInitialMount
	}

	if rawDate != g.baseDate || urlView != g.baseView {
		// The widget re-renders from the new query values; writing here
		// would overwrite the user's navigation with stale widget state.
		g.baseDate = rawDate
		g.baseView = urlView
		return model.SyncExternalURLChange
	}

	if n.View != g.baseView {
		if n.Generation < g.query.Generation() {
			// Rendered before our latest write landed; an echo in flight.
			return model.SyncEcho
		}
		g.query.WriteView(n.View)
		g.baseView = n.View
		return model.SyncViewButtonChange
	}

	return model.SyncEcho
}
