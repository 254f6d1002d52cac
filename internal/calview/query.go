package calview

import (
	"net/url"
	"time"

	"almanac-cli/internal/model"
)

// History is the mutable location the calendar reconciles against. In the
// web UI this is the request URL's query string; the TUI binds an in-memory
// map. Replace swaps the whole query without growing navigation history.
type History interface {
	Values() url.Values
	Replace(v url.Values)
}

// MemoryHistory is an in-process History for the TUI and for tests. It
// counts effective Replace calls so tests can assert on history-visible
// writes.
type MemoryHistory struct {
	vals     url.Values
	replaces int
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{vals: url.Values{}}
}

func (h *MemoryHistory) Values() url.Values {
	return cloneValues(h.vals)
}

func (h *MemoryHistory) Replace(v url.Values) {
	h.vals = cloneValues(v)
	h.replaces++
}

// Replaces returns how many Replace calls have been applied.
func (h *MemoryHistory) Replaces() int { return h.replaces }

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, xs := range v {
		out[k] = append([]string(nil), xs...)
	}
	return out
}

// QueryState owns the canonical (date, view) pair for one mounted calendar
// screen. Writers touch only their own parameter, and rewriting the value
// this instance last wrote is a no-op: without that guard the widget's echo
// of a write would trigger another write, ad infinitum.
type QueryState struct {
	hist History
	now  func() time.Time

	lastDate string
	lastView string
	gen      uint64
}

func NewQueryState(hist History, now func() time.Time) *QueryState {
	if now == nil {
		now = time.Now
	}
	return &QueryState{hist: hist, now: now}
}

// Read parses the two parameters independently. Malformed values fall back
// to today / month view; Read never fails.
func (q *QueryState) Read() (time.Time, model.ViewKind) {
	vals := q.hist.Values()
	return ParseDate(vals.Get(paramDate), q.now()), ParseView(vals.Get(paramView))
}

// Generation increments on every history-visible write this instance
// performs. A widget notification rendered from an older generation is an
// in-flight echo of our own write (this replaces the source's timer-based
// suppress window; see SyncGuard).
func (q *QueryState) Generation() uint64 { return q.gen }

// WriteDate updates only the date parameter, leaving the view untouched.
func (q *QueryState) WriteDate(d time.Time) {
	q.write(paramDate, FormatDate(d), &q.lastDate)
}

// WriteView updates only the view parameter, leaving the date untouched.
func (q *QueryState) WriteView(v model.ViewKind) {
	q.write(paramView, FormatView(v), &q.lastView)
}

func (q *QueryState) write(param, raw string, last *string) {
	if raw == *last {
		return
	}
	vals := q.hist.Values()
	if vals.Get(param) == raw {
		// Already current (e.g. deep link); record it but write nothing.
		*last = raw
		return
	}
	vals.Set(param, raw)
	q.hist.Replace(vals)
	*last = raw
	q.gen++
}
