package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"almanac-cli/internal/model"
)

var reHourMinute = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// NormalizeHM validates an HH:MM wall-clock string. Empty input is allowed
// and yields nil (the field stays unset).
func NormalizeHM(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !reHourMinute.MatchString(s) {
		return nil, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return &s, nil
}

func NormalizePriority(s string) (model.Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "", nil
	case "low", "medium", "high":
		return model.Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q (expected low|medium|high)", s)
}

// ValidateTemplate checks a template before it enters the library. Times and
// priority are validated strictly here so drops never have to.
func ValidateTemplate(tpl *model.EventTemplate) error {
	if tpl == nil {
		return errors.New("nil template")
	}
	if strings.TrimSpace(tpl.Title) == "" {
		return errors.New("template title is empty")
	}
	for _, hm := range []*string{tpl.StartTime, tpl.EndTime, tpl.Reminder} {
		if hm == nil {
			continue
		}
		if _, err := NormalizeHM(*hm); err != nil {
			return err
		}
	}
	if _, err := NormalizePriority(string(tpl.Priority)); err != nil {
		return err
	}
	return nil
}

// CreateTaskFromDrop turns a resolved drop into a stored task. The drop date
// is the task's due date; a resolved start time becomes the due time and a
// resolved end time is kept on the same date.
func CreateTaskFromDrop(db *DB, sd model.ScheduledDrop) (model.Task, error) {
	id, err := NewTaskID(db)
	if err != nil {
		return model.Task{}, err
	}
	now := time.Now().UTC()
	task := model.Task{
		ID:          id,
		Title:       sd.Template.Title,
		Description: sd.Template.Description,
		Priority:    sd.Template.Priority,
		Due:         &model.DateTime{Date: sd.Date, Time: sd.StartTime},
		AssignedTo:  sd.Template.AssignedTo,
		Flagged:     sd.Template.Flagged,
		TemplateID:  sd.Template.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sd.EndTime != nil {
		task.End = &model.DateTime{Date: sd.Date, Time: sd.EndTime}
	}
	if sd.Template.Reminder != nil {
		r := *sd.Template.Reminder
		task.Reminder = &r
	}
	db.Tasks = append(db.Tasks, task)
	return task, nil
}
