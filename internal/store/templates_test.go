package store

import (
	"strings"
	"testing"

	"almanac-cli/internal/model"
)

func strp(s string) *string { return &s }

func TestNormalizeHM(t *testing.T) {
	ok := []string{"00:00", "09:30", "14:05", "23:59"}
	for _, s := range ok {
		hm, err := NormalizeHM(s)
		if err != nil || hm == nil || *hm != s {
			t.Fatalf("NormalizeHM(%q) = %v, %v", s, hm, err)
		}
	}

	if hm, err := NormalizeHM("  "); err != nil || hm != nil {
		t.Fatalf("blank input should yield nil, got %v, %v", hm, err)
	}

	bad := []string{"24:00", "9:30", "12:60", "noon", "09:30:00"}
	for _, s := range bad {
		if _, err := NormalizeHM(s); err == nil {
			t.Fatalf("NormalizeHM(%q) accepted", s)
		}
	}
}

func TestValidateTemplate(t *testing.T) {
	tpl := &model.EventTemplate{ID: "tmpl-a", Title: "Standup", StartTime: strp("09:00"), Priority: model.PriorityHigh}
	if err := ValidateTemplate(tpl); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	if err := ValidateTemplate(&model.EventTemplate{ID: "tmpl-b"}); err == nil {
		t.Fatalf("empty title accepted")
	}
	if err := ValidateTemplate(&model.EventTemplate{ID: "tmpl-c", Title: "x", EndTime: strp("25:00")}); err == nil {
		t.Fatalf("bad end time accepted")
	}
	if err := ValidateTemplate(&model.EventTemplate{ID: "tmpl-d", Title: "x", Priority: "urgent"}); err == nil {
		t.Fatalf("bad priority accepted")
	}
}

func TestCreateTaskFromDrop(t *testing.T) {
	db := &DB{Version: 1}
	tpl := model.EventTemplate{ID: "tmpl-a", Title: "Standup", Description: "daily", Priority: model.PriorityMedium, Flagged: true, Reminder: strp("08:45")}

	task, err := CreateTaskFromDrop(db, model.ScheduledDrop{
		Date:      "2024-05-01",
		StartTime: strp("09:00"),
		EndTime:   strp("10:00"),
		Template:  tpl,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(task.ID, "task-") {
		t.Fatalf("task id = %q", task.ID)
	}
	if task.Due == nil || task.Due.Date != "2024-05-01" || task.Due.Time == nil || *task.Due.Time != "09:00" {
		t.Fatalf("due = %+v", task.Due)
	}
	if task.End == nil || task.End.Time == nil || *task.End.Time != "10:00" {
		t.Fatalf("end = %+v", task.End)
	}
	if !task.Flagged || task.TemplateID != "tmpl-a" {
		t.Fatalf("template fields not carried: %+v", task)
	}
	if task.Reminder == nil || *task.Reminder != "08:45" {
		t.Fatalf("reminder not carried: %v", task.Reminder)
	}
	if len(db.Tasks) != 1 {
		t.Fatalf("task not appended")
	}
}

func TestCreateTaskFromDrop_DateOnly(t *testing.T) {
	db := &DB{Version: 1}
	task, err := CreateTaskFromDrop(db, model.ScheduledDrop{
		Date:     "2024-05-03",
		Template: model.EventTemplate{ID: "tmpl-b", Title: "Errand"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Due == nil || task.Due.Time != nil {
		t.Fatalf("date-only drop should have no due time: %+v", task.Due)
	}
	if task.End != nil {
		t.Fatalf("date-only drop should have no end: %+v", task.End)
	}
}
