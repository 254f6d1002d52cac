package calview

import (
	"testing"
	"time"

	"almanac-cli/internal/model"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTarget_MonthNextClampsToEndOfMonth(t *testing.T) {
	// Jan 31 + one month lands on the last valid day of February.
	got := Target(model.NavNext, day("2024-01-31"), model.ViewMonth, fixedNow())
	if FormatDate(got) != "2024-02-29" {
		t.Fatalf("got %s, want 2024-02-29", FormatDate(got))
	}

	got = Target(model.NavNext, day("2023-01-31"), model.ViewMonth, fixedNow())
	if FormatDate(got) != "2023-02-28" {
		t.Fatalf("got %s, want 2023-02-28", FormatDate(got))
	}
}

func TestTarget_MonthPrevAcrossYear(t *testing.T) {
	got := Target(model.NavPrev, day("2024-01-15"), model.ViewMonth, fixedNow())
	if FormatDate(got) != "2023-12-15" {
		t.Fatalf("got %s, want 2023-12-15", FormatDate(got))
	}
}

func TestTarget_ListStepsByMonth(t *testing.T) {
	got := Target(model.NavNext, day("2024-03-31"), model.ViewList, fixedNow())
	if FormatDate(got) != "2024-04-30" {
		t.Fatalf("got %s, want 2024-04-30", FormatDate(got))
	}
}

func TestTarget_WeekStepsBySevenDays(t *testing.T) {
	got := Target(model.NavNext, day("2024-03-10"), model.ViewWeek, fixedNow())
	if FormatDate(got) != "2024-03-17" {
		t.Fatalf("got %s, want 2024-03-17", FormatDate(got))
	}
	got = Target(model.NavPrev, day("2024-03-10"), model.ViewWeek, fixedNow())
	if FormatDate(got) != "2024-03-03" {
		t.Fatalf("got %s, want 2024-03-03", FormatDate(got))
	}
}

func TestTarget_DayStepsByOneDay(t *testing.T) {
	got := Target(model.NavPrev, day("2024-03-10"), model.ViewDay, fixedNow())
	if FormatDate(got) != "2024-03-09" {
		t.Fatalf("got %s, want 2024-03-09", FormatDate(got))
	}
	got = Target(model.NavNext, day("2024-02-29"), model.ViewDay, fixedNow())
	if FormatDate(got) != "2024-03-01" {
		t.Fatalf("got %s, want 2024-03-01", FormatDate(got))
	}
}

func TestTarget_TodayIgnoresCurrentAndView(t *testing.T) {
	for _, v := range []model.ViewKind{model.ViewMonth, model.ViewWeek, model.ViewDay, model.ViewList} {
		got := Target(model.NavToday, day("1999-01-01"), v, fixedNow())
		if FormatDate(got) != "2024-05-15" {
			t.Fatalf("view %s: got %s, want 2024-05-15", v, FormatDate(got))
		}
	}
}
