package tui

import (
	"strings"
	"time"

	"almanac-cli/internal/calview"
	"almanac-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// visibleRange is the [start, end) date window a view renders around its
// anchor date. The month grid covers whole weeks, so it usually bleeds into
// the neighbouring months.
func visibleRange(view model.ViewKind, anchor time.Time) (time.Time, time.Time) {
	switch view {
	case model.ViewWeek:
		start := weekStart(anchor)
		return start, start.AddDate(0, 0, 7)
	case model.ViewDay:
		return anchor, anchor.AddDate(0, 0, 1)
	case model.ViewList:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return first, first.AddDate(0, 1, 0)
	default:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		gridStart := weekStart(first)
		gridEnd := weekStart(first.AddDate(0, 1, -1)).AddDate(0, 0, 7)
		return gridStart, gridEnd
	}
}

func rangeTitle(view model.ViewKind, anchor time.Time) string {
	switch view {
	case model.ViewWeek:
		start := weekStart(anchor)
		return start.Format("Jan 2") + " – " + start.AddDate(0, 0, 6).Format("Jan 2, 2006")
	case model.ViewDay:
		return anchor.Format("Monday, Jan 2, 2006")
	default:
		return anchor.Format("January 2006")
	}
}

// weekStart backs up to the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func renderCalendar(view model.ViewKind, anchor time.Time, tasks []model.Task, width int) string {
	byDate := map[string][]model.Task{}
	for _, t := range tasks {
		if t.Due != nil {
			byDate[t.Due.Date] = append(byDate[t.Due.Date], t)
		}
	}

	switch view {
	case model.ViewWeek, model.ViewDay:
		return renderDayColumns(view, anchor, byDate, width)
	case model.ViewList:
		return renderTaskList(tasks, width)
	default:
		return renderMonth(anchor, byDate, width)
	}
}

func renderMonth(anchor time.Time, byDate map[string][]model.Task, width int) string {
	cellW := width / 7
	if cellW < 9 {
		cellW = 9
	}
	cellH := 4

	gridStart, gridEnd := visibleRange(model.ViewMonth, anchor)
	today := calview.FormatDate(calview.Midnight(time.Now()))
	anchorDate := calview.FormatDate(anchor)

	var rows []string
	head := make([]string, 7)
	for i, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		head[i] = styleMuted().Width(cellW).Render(d)
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, head...))

	for wk := gridStart; wk.Before(gridEnd); wk = wk.AddDate(0, 0, 7) {
		cells := make([]string, 7)
		for i := 0; i < 7; i++ {
			day := wk.AddDate(0, 0, i)
			cells[i] = renderMonthCell(day, anchor.Month(), byDate, cellW, cellH, today, anchorDate)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderMonthCell(day time.Time, month time.Month, byDate map[string][]model.Task, w, h int, today, anchorDate string) string {
	d := calview.FormatDate(day)

	numStyle := lipgloss.NewStyle()
	if day.Month() != month {
		numStyle = numStyle.Foreground(colorOutOfMonth)
	}
	if d == today {
		numStyle = numStyle.Background(colorTodayBg)
	}
	lines := []string{numStyle.Render(day.Format("2"))}

	for _, t := range byDate[d] {
		if len(lines) >= h {
			break
		}
		lines = append(lines, truncate(taskLine(t), w-2))
	}

	st := lipgloss.NewStyle().Width(w).Height(h).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorBorder).
		PaddingLeft(1)
	if d == anchorDate {
		st = st.Background(colorCursorBg).Foreground(colorCursorFg)
	}
	return st.Render(strings.Join(lines, "\n"))
}

func renderDayColumns(view model.ViewKind, anchor time.Time, byDate map[string][]model.Task, width int) string {
	start, end := visibleRange(view, anchor)
	anchorDate := calview.FormatDate(anchor)

	var blocks []string
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		d := calview.FormatDate(day)
		head := day.Format("Mon Jan 2")
		if d == anchorDate {
			head = lipgloss.NewStyle().Background(colorCursorBg).Foreground(colorCursorFg).Render(head)
		} else {
			head = styleMuted().Render(head)
		}
		lines := []string{head}
		for _, t := range byDate[d] {
			lines = append(lines, "  "+truncate(taskLine(t), width-4))
		}
		if len(lines) == 1 {
			lines = append(lines, styleMuted().Render("  ·"))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n")
}

func renderTaskList(tasks []model.Task, width int) string {
	if len(tasks) == 0 {
		return styleMuted().Render("Nothing scheduled this month.")
	}
	var lines []string
	for _, t := range tasks {
		lines = append(lines, truncate(t.Due.Date+"  "+taskLine(t), width-2))
	}
	return strings.Join(lines, "\n")
}

func taskLine(t model.Task) string {
	if t.Due != nil && t.Due.Time != nil {
		return *t.Due.Time + " " + t.Title
	}
	return t.Title
}

// truncate cuts to display width, not bytes, so wide runes don't break cells.
func truncate(s string, w int) string {
	if w < 4 {
		w = 4
	}
	return ansi.Truncate(s, w, "…")
}
