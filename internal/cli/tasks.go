package cli

import (
	"strings"
	"time"

	"almanac-cli/internal/calview"
	"almanac-cli/internal/model"
	"almanac-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and create calendar tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksDropCmd(app))
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, ok := db.FindTask(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally within a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := db.Tasks
			if strings.TrimSpace(from) != "" || strings.TrimSpace(to) != "" {
				// Either bound may be omitted for an open-ended range.
				start, end := "0000-01-01", "9999-12-31"
				if strings.TrimSpace(from) != "" {
					if start, _, err = parseDateArg(from); err != nil {
						return writeErr(cmd, err)
					}
				}
				if strings.TrimSpace(to) != "" {
					if end, _, err = parseDateArg(to); err != nil {
						return writeErr(cmd, err)
					}
				}
				tasks = db.TasksBetween(start, end)
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end, exclusive (YYYY-MM-DD)")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		priority    string
		due         string
		at          string
		flagged     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			task := model.Task{
				Title:       strings.TrimSpace(title),
				Description: description,
				Flagged:     flagged,
			}
			if task.Priority, err = store.NormalizePriority(priority); err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(due) != "" {
				date, _, err := parseDateArg(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				hm, err := store.NormalizeHM(at)
				if err != nil {
					return writeErr(cmd, err)
				}
				task.Due = &model.DateTime{Date: date, Time: hm}
			}
			if task.ID, err = store.NewTaskID(db); err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			task.CreatedAt = now
			task.UpdatedAt = now

			db.Tasks = append(db.Tasks, task)
			if err := st.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Markdown description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&at, "time", "", "Due time (HH:MM)")
	cmd.Flags().BoolVar(&flagged, "flagged", false, "Flag the task")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTasksDropCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "drop <template-id> <date>",
		Short: "Schedule a template onto a date (what a calendar drop does)",
		Example: strings.TrimSpace(`
  # Month-view style drop: times come from the template
  almanac tasks drop tmpl-abc12345 2024-05-01

  # Time-grid style drop: the slot time overrides the template start
  almanac tasks drop tmpl-abc12345 2024-05-02 --time 14:30
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpl, ok := db.FindTemplate(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("template", args[0]))
			}
			_, dropDate, err := parseDateArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			hint, err := store.NormalizeHM(at)
			if err != nil {
				return writeErr(cmd, err)
			}

			sd := calview.Schedule(*tpl, dropDate, hint)
			task, err := store.CreateTaskFromDrop(db, sd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"drop": sd, "task": task}})
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "Drop slot time (HH:MM, time-grid drops only)")
	return cmd
}
