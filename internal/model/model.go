package model

import "time"

// ViewKind is the calendar's display granularity. Unknown URL tokens resolve
// to ViewMonth (see calview.ParseView).
type ViewKind string

const (
	ViewMonth ViewKind = "month"
	ViewWeek  ViewKind = "week"
	ViewDay   ViewKind = "day"
	ViewList  ViewKind = "list"
)

// HasTimeAxis reports whether the view lays events out on a time grid.
// Month and list views have no time axis; drops there take template defaults.
func (v ViewKind) HasTimeAxis() bool {
	return v == ViewWeek || v == ViewDay
}

type NavigationIntent string

const (
	NavPrev  NavigationIntent = "prev"
	NavNext  NavigationIntent = "next"
	NavToday NavigationIntent = "today"
)

// SyncClassification is the verdict for one widget "view settled"
// notification. Exactly one classification is produced per notification.
type SyncClassification string

const (
	SyncInitialMount      SyncClassification = "initial-mount"
	SyncExternalURLChange SyncClassification = "external-url-change"
	SyncViewButtonChange  SyncClassification = "view-button-change"
	SyncEcho              SyncClassification = "echo"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// EventTemplate is a predefined, draggable task stub. Templates are created
// ahead of time (CLI or management dialog) and are read-only at drop time.
type EventTemplate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Variant     string   `json:"variant,omitempty"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	StartTime   *string  `json:"defaultStartTime,omitempty"` // HH:MM
	EndTime     *string  `json:"defaultEndTime,omitempty"`   // HH:MM
	Reminder    *string  `json:"reminder,omitempty"`
	AssignedTo  *string  `json:"assignedTo,omitempty"`
	Flagged     bool     `json:"flagged"`

	CreatedAt time.Time `json:"createdAt"`
}

// ScheduledDrop is the result of resolving a template drop against a drop
// position. Missing times stay nil; downstream task creation treats them as
// unset rather than erroring.
type ScheduledDrop struct {
	Date      string        `json:"date"`                // YYYY-MM-DD
	StartTime *string       `json:"startTime,omitempty"` // HH:MM
	EndTime   *string       `json:"endTime,omitempty"`   // HH:MM
	Template  EventTemplate `json:"sourceTemplate"`
}

// DateTime is an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

// Task is a calendar-visible task created from a drop or via the CLI.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	Due         *DateTime `json:"due,omitempty"`
	End         *DateTime `json:"end,omitempty"`
	Reminder    *string   `json:"reminder,omitempty"` // HH:MM
	AssignedTo  *string   `json:"assignedTo,omitempty"`
	Flagged     bool      `json:"flagged"`
	TemplateID  string    `json:"templateId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
