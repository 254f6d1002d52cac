package calview

import (
	"time"

	"almanac-cli/internal/model"
)

// Controller wires the synchronizer for one mounted calendar screen. It owns
// the QueryState and SyncGuard (constructed on mount, discarded on unmount)
// and exposes the handlers the calendar widget calls. Explicit prev/next/
// today bypass the widget's notification path entirely, so those actions can
// never be misclassified by the guard.
type Controller struct {
	query      *QueryState
	guard      *SyncGuard
	now        func() time.Time
	createTask func(model.ScheduledDrop) error
}

type Config struct {
	History History
	// Now overrides the wall clock (tests). Defaults to time.Now.
	Now func() time.Time
	// CreateTask receives the resolved payload for each drop. Owned by the
	// task-creation collaborator; may be nil.
	CreateTask func(model.ScheduledDrop) error
}

func NewController(cfg Config) *Controller {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	q := NewQueryState(cfg.History, now)
	return &Controller{
		query:      q,
		guard:      NewSyncGuard(q),
		now:        now,
		createTask: cfg.CreateTask,
	}
}

// Current returns the authoritative (date, view) the widget should render.
func (c *Controller) Current() (time.Time, model.ViewKind) {
	return c.query.Read()
}

// Generation is the QueryState write generation; widgets stamp it onto their
// notifications so the guard can spot in-flight echoes.
func (c *Controller) Generation() uint64 { return c.query.Generation() }

// SetView is the programmatic view switch used by UI chrome that lives
// outside the widget (tabs, keybindings routed around the widget).
func (c *Controller) SetView(v model.ViewKind) { c.query.WriteView(v) }

func (c *Controller) Prev() (time.Time, model.ViewKind)  { return c.navigate(model.NavPrev) }
func (c *Controller) Next() (time.Time, model.ViewKind)  { return c.navigate(model.NavNext) }
func (c *Controller) Today() (time.Time, model.ViewKind) { return c.navigate(model.NavToday) }

func (c *Controller) navigate(intent model.NavigationIntent) (time.Time, model.ViewKind) {
	d, v := c.query.Read()
	c.query.WriteDate(Target(intent, d, v, c.now()))
	return c.query.Read()
}

// DatesSet handles the widget's "view settled" notification.
func (c *Controller) DatesSet(n Notification) model.SyncClassification {
	return c.guard.Transition(n)
}

// Drop resolves an external template drop and hands the payload to the
// task-creation collaborator. Time hints only apply on time-grid views.
func (c *Controller) Drop(tpl model.EventTemplate, dropDate time.Time, timeHint *string) (model.ScheduledDrop, error) {
	_, view := c.query.Read()
	if !view.HasTimeAxis() {
		timeHint = nil
	}
	sd := Schedule(tpl, dropDate, timeHint)
	if c.createTask == nil {
		return sd, nil
	}
	return sd, c.createTask(sd)
}
