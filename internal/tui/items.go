package tui

import (
	"strings"

	"almanac-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type templateItem struct {
	template model.EventTemplate
}

func (i templateItem) Title() string { return i.template.Title }

func (i templateItem) Description() string {
	var parts []string
	if v := strings.TrimSpace(i.template.Variant); v != "" {
		parts = append(parts, v)
	}
	if i.template.StartTime != nil {
		if i.template.EndTime != nil {
			parts = append(parts, *i.template.StartTime+"–"+*i.template.EndTime)
		} else {
			parts = append(parts, *i.template.StartTime)
		}
	}
	if i.template.Priority != "" {
		parts = append(parts, string(i.template.Priority))
	}
	if len(parts) == 0 {
		return "no defaults"
	}
	return strings.Join(parts, "  ")
}

func (i templateItem) FilterValue() string { return i.template.Title }

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// The app renders its own chrome, and single-letter keys are calendar
	// bindings, so filtering stays off.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")
	return l
}
