package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"almanac-cli/internal/calview"
	"almanac-cli/internal/model"
	"almanac-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusGrid focusArea = iota
	focusTemplates
)

type reloadTickMsg struct{}

type eventsLoadedMsg struct {
	token uint64
	db    *store.DB
	tasks []model.Task
	err   error
}

// sharedState is referenced by the controller's CreateTask closure, which
// outlives any one copy of the (value-typed) appModel.
type sharedState struct {
	store store.Store
	db    *store.DB
}

type appModel struct {
	dir    string
	shared *sharedState

	width  int
	height int

	hist   *calview.MemoryHistory
	ctrl   *calview.Controller
	loader *calview.EventsLoader

	focus         focusArea
	templatesList list.Model

	// Pending drop: on time-grid views the user may type a slot time first.
	dropTemplate *model.EventTemplate
	timeInput    textinput.Model

	status string

	lastIndexModTime time.Time
}

func newAppModel(dir string, db *store.DB) appModel {
	shared := &sharedState{store: store.Store{Dir: dir}, db: db}

	hist := calview.NewMemoryHistory()
	ctrl := calview.NewController(calview.Config{
		History: hist,
		CreateTask: func(sd model.ScheduledDrop) error {
			if _, err := store.CreateTaskFromDrop(shared.db, sd); err != nil {
				return err
			}
			return shared.store.Save(shared.db)
		},
	})

	m := appModel{
		dir:    dir,
		shared: shared,
		hist:   hist,
		ctrl:   ctrl,
		loader: &calview.EventsLoader{},
	}

	m.templatesList = newList("Templates", []list.Item{})
	m.refreshTemplates()

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:MM (optional)"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 18

	m.captureIndexModTime()
	// First widget settle is the mount; the guard baselines without writing.
	m.widgetSettled()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadEvents(), tickReload())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case reloadTickMsg:
		if m.indexChanged() {
			m.captureIndexModTime()
			return m, tea.Batch(m.loadEvents(), tickReload())
		}
		return m, tickReload()

	case eventsLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		// A completion from before the latest navigation is discarded; the
		// in-flight fetch for the current range will land after it.
		if m.loader.Complete(msg.token, msg.tasks) {
			m.shared.db = msg.db
			m.refreshTemplates()
		}
		return m, nil

	case tea.KeyMsg:
		if m.dropTemplate != nil {
			return m.updateTimeModal(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.focus == focusGrid {
				m.focus = focusTemplates
			} else {
				m.focus = focusGrid
			}
			return m, nil
		case "p":
			m.ctrl.Prev()
			m.widgetSettled()
			return m, m.loadEvents()
		case "n":
			m.ctrl.Next()
			m.widgetSettled()
			return m, m.loadEvents()
		case "t":
			m.ctrl.Today()
			m.widgetSettled()
			return m, m.loadEvents()
		case "m", "w", "d", "L":
			m.pressViewButton(viewForKey(msg.String()))
			return m, m.loadEvents()
		case "r":
			return m, m.loadEvents()
		}
		if m.focus == focusGrid {
			return m.updateGrid(msg)
		}
		return m.updateTemplates(msg)
	}

	return m, nil
}

func viewForKey(k string) model.ViewKind {
	switch k {
	case "w":
		return model.ViewWeek
	case "d":
		return model.ViewDay
	case "L":
		return model.ViewList
	default:
		return model.ViewMonth
	}
}

func (m *appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	date, _ := m.ctrl.Current()
	switch msg.String() {
	case "left", "h":
		m.setAnchor(date.AddDate(0, 0, -1))
	case "right", "l":
		m.setAnchor(date.AddDate(0, 0, 1))
	case "up", "k":
		m.setAnchor(date.AddDate(0, 0, -7))
	case "down", "j":
		m.setAnchor(date.AddDate(0, 0, 7))
	default:
		return *m, nil
	}
	return *m, m.loadEvents()
}

func (m *appModel) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		it, ok := m.templatesList.SelectedItem().(templateItem)
		if !ok {
			return *m, nil
		}
		_, view := m.ctrl.Current()
		if view.HasTimeAxis() {
			// Time-grid views carry a slot time; ask for one (blank = none).
			tpl := it.template
			m.dropTemplate = &tpl
			m.timeInput.SetValue("")
			m.timeInput.Focus()
			return *m, textinput.Blink
		}
		return *m, m.performDrop(it.template, nil)
	}
	var cmd tea.Cmd
	m.templatesList, cmd = m.templatesList.Update(msg)
	return *m, cmd
}

func (m *appModel) updateTimeModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dropTemplate = nil
		return *m, nil
	case "enter":
		hint, err := store.NormalizeHM(m.timeInput.Value())
		if err != nil {
			m.status = err.Error()
			return *m, nil
		}
		tpl := *m.dropTemplate
		m.dropTemplate = nil
		return *m, m.performDrop(tpl, hint)
	}
	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return *m, cmd
}

func (m *appModel) performDrop(tpl model.EventTemplate, hint *string) tea.Cmd {
	date, _ := m.ctrl.Current()
	sd, err := m.ctrl.Drop(tpl, date, hint)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if sd.StartTime != nil {
		m.status = fmt.Sprintf("Scheduled %q on %s at %s", tpl.Title, sd.Date, *sd.StartTime)
	} else {
		m.status = fmt.Sprintf("Scheduled %q on %s", tpl.Title, sd.Date)
	}
	m.captureIndexModTime()
	return m.loadEvents()
}

// setAnchor moves the selected day directly, like clicking a day cell. From
// the guard's point of view this is the URL changing under the widget.
func (m *appModel) setAnchor(d time.Time) {
	q := m.hist.Values()
	q.Set("date", calview.FormatDate(d))
	m.hist.Replace(q)
	m.widgetSettled()
}

// pressViewButton emulates the calendar's own view buttons: the widget
// switches first and then reports the change, stamped with the generation it
// rendered from.
func (m *appModel) pressViewButton(v model.ViewKind) {
	date, _ := m.ctrl.Current()
	start, _ := visibleRange(v, date)
	m.ctrl.DatesSet(calview.Notification{
		View:       v,
		RangeStart: start,
		Generation: m.ctrl.Generation(),
	})
}

// widgetSettled reports a render of the current (date, view) back through
// the notification path, the way the widget does after any change.
func (m *appModel) widgetSettled() {
	date, view := m.ctrl.Current()
	start, _ := visibleRange(view, date)
	m.ctrl.DatesSet(calview.Notification{
		View:       view,
		RangeStart: start,
		Generation: m.ctrl.Generation(),
	})
}

func (m *appModel) loadEvents() tea.Cmd {
	date, view := m.ctrl.Current()
	start, end := visibleRange(view, date)
	from, to := calview.FormatDate(start), calview.FormatDate(end)

	token := m.loader.Begin()
	shared := m.shared
	return func() tea.Msg {
		db, err := shared.store.Load()
		if err != nil {
			return eventsLoadedMsg{token: token, err: err}
		}
		return eventsLoadedMsg{token: token, db: db, tasks: db.TasksBetween(from, to)}
	}
}

func (m *appModel) refreshTemplates() {
	curID := ""
	if it, ok := m.templatesList.SelectedItem().(templateItem); ok {
		curID = it.template.ID
	}
	var items []list.Item
	for _, tpl := range m.shared.db.Templates {
		items = append(items, templateItem{template: tpl})
	}
	m.templatesList.SetItems(items)
	if curID != "" {
		for i, it := range m.templatesList.Items() {
			if t, ok := it.(templateItem); ok && t.template.ID == curID {
				m.templatesList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) resizePanes() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.sidebarWidth()
	m.templatesList.SetSize(w, h/2)
}

func (m *appModel) sidebarWidth() int {
	w := m.width / 3
	if w < 28 {
		w = 28
	}
	return w
}

func (m appModel) View() string {
	date, view := m.ctrl.Current()

	header := lipgloss.NewStyle().Bold(true).Render("Almanac  " + rangeTitle(view, date))
	tabs := renderViewTabs(view)

	gridWidth := m.width - m.sidebarWidth() - 2
	if gridWidth < 40 {
		gridWidth = 40
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCalendar(view, date, m.loader.Events(), gridWidth),
		" ",
		m.viewSidebar(),
	)

	footer := styleMuted().Render("←↓↑→: move day  p/n/t: prev/next/today  m/w/d/L: view  tab: templates  enter: drop  q: quit")
	if m.status != "" {
		footer = m.status + "\n" + footer
	}

	if m.dropTemplate != nil {
		modal := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			Render(fmt.Sprintf("Drop %q on %s\nTime: %s\n\nenter: create  esc: cancel",
				m.dropTemplate.Title, calview.FormatDate(date), m.timeInput.View()))
		return strings.Join([]string{header, tabs, modal, footer}, "\n\n")
	}

	return strings.Join([]string{header, tabs, body, footer}, "\n\n")
}

func (m appModel) viewSidebar() string {
	w := m.sidebarWidth()
	title := "Templates"
	if m.focus == focusTemplates {
		title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(title)
	} else {
		title = styleMuted().Render(title + "  (tab)")
	}

	parts := []string{title, m.templatesList.View()}
	if it, ok := m.templatesList.SelectedItem().(templateItem); ok && m.focus == focusTemplates {
		if md := renderMarkdown(it.template.Description, w-2); md != "" {
			parts = append(parts, md)
		}
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(parts, "\n"))
}

func renderViewTabs(active model.ViewKind) string {
	var parts []string
	for _, v := range []model.ViewKind{model.ViewMonth, model.ViewWeek, model.ViewDay, model.ViewList} {
		label := string(v)
		if v == active {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(colorCursorFg).Background(colorAccent).Padding(0, 1).Render(label))
		} else {
			parts = append(parts, styleMuted().Padding(0, 1).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureIndexModTime() {
	m.lastIndexModTime = fileModTime(filepath.Join(m.dir, "index.sqlite"))
}

func (m *appModel) indexChanged() bool {
	return fileModTime(filepath.Join(m.dir, "index.sqlite")).After(m.lastIndexModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
