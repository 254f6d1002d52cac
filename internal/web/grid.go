package web

import (
	"net/url"
	"time"

	"almanac-cli/internal/calview"
	"almanac-cli/internal/model"
	"almanac-cli/internal/store"
)

type dayCell struct {
	Date    string
	Day     int
	InMonth bool
	IsToday bool
	Tasks   []model.Task
}

type viewTab struct {
	Label  string
	URL    string
	Active bool
}

type calendarVM struct {
	Title     string
	DateParam string
	ViewParam string
	View      model.ViewKind

	PrevURL  string
	NextURL  string
	TodayURL string
	ViewTabs []viewTab

	Weeks     [][]dayCell // month view
	Days      []dayCell   // week and day views
	ListTasks []model.Task

	Templates []model.EventTemplate
}

// buildCalendarVM derives everything the calendar page shows from the query
// string. Each navigation link rewrites exactly one parameter, so the links
// inherit QueryState's field isolation for free.
func buildCalendarVM(q url.Values, db *store.DB, now time.Time) calendarVM {
	hist := calview.NewMemoryHistory()
	hist.Replace(q)
	date, view := calview.NewQueryState(hist, func() time.Time { return now }).Read()

	vm := calendarVM{
		DateParam: calview.FormatDate(date),
		ViewParam: calview.FormatView(view),
		View:      view,
		PrevURL:   linkWith(q, "date", calview.FormatDate(calview.Target(model.NavPrev, date, view, now))),
		NextURL:   linkWith(q, "date", calview.FormatDate(calview.Target(model.NavNext, date, view, now))),
		TodayURL:  linkWith(q, "date", calview.FormatDate(calview.Target(model.NavToday, date, view, now))),
		Templates: db.Templates,
	}
	for _, v := range []model.ViewKind{model.ViewMonth, model.ViewWeek, model.ViewDay, model.ViewList} {
		vm.ViewTabs = append(vm.ViewTabs, viewTab{
			Label:  calview.FormatView(v),
			URL:    linkWith(q, "view", calview.FormatView(v)),
			Active: v == view,
		})
	}

	today := calview.FormatDate(calview.Midnight(now))
	switch view {
	case model.ViewWeek:
		start := weekStart(date)
		vm.Title = start.Format("Jan 2") + " – " + start.AddDate(0, 0, 6).Format("Jan 2, 2006")
		vm.Days = cellRange(start, 7, date.Month(), today, db)
	case model.ViewDay:
		vm.Title = date.Format("Monday, Jan 2, 2006")
		vm.Days = cellRange(date, 1, date.Month(), today, db)
	case model.ViewList:
		vm.Title = date.Format("January 2006")
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		vm.ListTasks = db.TasksBetween(calview.FormatDate(first), calview.FormatDate(first.AddDate(0, 1, 0)))
	default:
		vm.Title = date.Format("January 2006")
		vm.Weeks = monthGrid(date, today, db)
	}
	return vm
}

// linkWith clones the page query and rewrites a single parameter.
func linkWith(q url.Values, key, value string) string {
	out := url.Values{}
	for k, xs := range q {
		out[k] = append([]string(nil), xs...)
	}
	out.Set(key, value)
	return "/calendar?" + out.Encode()
}

// weekStart backs up to the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func monthGrid(anchor time.Time, today string, db *store.DB) [][]dayCell {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	gridStart := weekStart(first)
	lastDay := first.AddDate(0, 1, -1)
	gridEnd := weekStart(lastDay).AddDate(0, 0, 7)

	var weeks [][]dayCell
	for cur := gridStart; cur.Before(gridEnd); cur = cur.AddDate(0, 0, 7) {
		weeks = append(weeks, cellRange(cur, 7, anchor.Month(), today, db))
	}
	return weeks
}

func cellRange(start time.Time, n int, month time.Month, today string, db *store.DB) []dayCell {
	end := start.AddDate(0, 0, n)
	tasks := db.TasksBetween(calview.FormatDate(start), calview.FormatDate(end))
	byDate := map[string][]model.Task{}
	for _, t := range tasks {
		byDate[t.Due.Date] = append(byDate[t.Due.Date], t)
	}

	cells := make([]dayCell, 0, n)
	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		d := calview.FormatDate(cur)
		cells = append(cells, dayCell{
			Date:    d,
			Day:     cur.Day(),
			InMonth: cur.Month() == month,
			IsToday: d == today,
			Tasks:   byDate[d],
		})
	}
	return cells
}
