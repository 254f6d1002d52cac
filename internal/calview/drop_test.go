package calview

import (
	"testing"

	"almanac-cli/internal/model"
)

func strp(s string) *string { return &s }

func TestSchedule_MonthDropTakesTemplateDefaults(t *testing.T) {
	tpl := model.EventTemplate{ID: "tmpl-a", Title: "Standup", StartTime: strp("09:00"), EndTime: strp("10:00")}

	sd := Schedule(tpl, day("2024-05-01"), nil)
	if sd.Date != "2024-05-01" {
		t.Fatalf("date = %s, want 2024-05-01", sd.Date)
	}
	if sd.StartTime == nil || *sd.StartTime != "09:00" {
		t.Fatalf("startTime = %v, want 09:00", sd.StartTime)
	}
	if sd.EndTime == nil || *sd.EndTime != "10:00" {
		t.Fatalf("endTime = %v, want 10:00", sd.EndTime)
	}
}

func TestSchedule_TimeGridHintOverridesStartOnly(t *testing.T) {
	tpl := model.EventTemplate{ID: "tmpl-a", Title: "Standup", StartTime: strp("09:00"), EndTime: strp("10:00")}

	sd := Schedule(tpl, day("2024-05-02"), strp("14:30"))
	if sd.Date != "2024-05-02" {
		t.Fatalf("date = %s, want 2024-05-02", sd.Date)
	}
	if sd.StartTime == nil || *sd.StartTime != "14:30" {
		t.Fatalf("startTime = %v, want hint 14:30", sd.StartTime)
	}
	if sd.EndTime == nil || *sd.EndTime != "10:00" {
		t.Fatalf("endTime = %v, want template default 10:00", sd.EndTime)
	}
}

func TestSchedule_UnderSpecifiedTemplateStaysUnset(t *testing.T) {
	tpl := model.EventTemplate{ID: "tmpl-b", Title: "Errand"}

	sd := Schedule(tpl, day("2024-05-03"), nil)
	if sd.StartTime != nil || sd.EndTime != nil {
		t.Fatalf("times should stay unset, got %v/%v", sd.StartTime, sd.EndTime)
	}

	// A hint without a template end time schedules a start-only task.
	sd = Schedule(tpl, day("2024-05-03"), strp("08:15"))
	if sd.StartTime == nil || *sd.StartTime != "08:15" {
		t.Fatalf("startTime = %v, want 08:15", sd.StartTime)
	}
	if sd.EndTime != nil {
		t.Fatalf("endTime = %v, want unset", sd.EndTime)
	}
}

func TestSchedule_DateIsPositional(t *testing.T) {
	// The template's own defaults never move the drop date.
	tpl := model.EventTemplate{ID: "tmpl-c", Title: "Review", StartTime: strp("16:00")}
	sd := Schedule(tpl, day("2024-06-30"), nil)
	if sd.Date != "2024-06-30" {
		t.Fatalf("date = %s, want drop target 2024-06-30", sd.Date)
	}
}
