package cli

import (
	"strings"
	"time"

	"almanac-cli/internal/model"
	"almanac-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage draggable event templates",
	}
	cmd.AddCommand(newTemplatesCreateCmd(app))
	cmd.AddCommand(newTemplatesListCmd(app))
	cmd.AddCommand(newTemplatesRemoveCmd(app))
	return cmd
}

func newTemplatesCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		variant     string
		description string
		priority    string
		start       string
		end         string
		reminder    string
		assignedTo  string
		flagged     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event template",
		Example: strings.TrimSpace(`
  almanac templates create --title "Standup" --start 09:00 --end 09:15
  almanac templates create --title "Deep work" --variant focus --priority high
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			tpl := model.EventTemplate{
				Title:       strings.TrimSpace(title),
				Variant:     strings.TrimSpace(variant),
				Description: description,
				Flagged:     flagged,
				CreatedAt:   time.Now().UTC(),
			}
			if tpl.StartTime, err = store.NormalizeHM(start); err != nil {
				return writeErr(cmd, err)
			}
			if tpl.EndTime, err = store.NormalizeHM(end); err != nil {
				return writeErr(cmd, err)
			}
			if tpl.Reminder, err = store.NormalizeHM(reminder); err != nil {
				return writeErr(cmd, err)
			}
			if tpl.Priority, err = store.NormalizePriority(priority); err != nil {
				return writeErr(cmd, err)
			}
			if at := strings.TrimSpace(assignedTo); at != "" {
				tpl.AssignedTo = &at
			}
			if err := store.ValidateTemplate(&tpl); err != nil {
				return writeErr(cmd, err)
			}
			if tpl.ID, err = store.NewTemplateID(db); err != nil {
				return writeErr(cmd, err)
			}

			db.Templates = append(db.Templates, tpl)
			if err := st.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tpl})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Template title (required)")
	cmd.Flags().StringVar(&variant, "variant", "", "Variant label (e.g. meeting, focus)")
	cmd.Flags().StringVar(&description, "description", "", "Markdown description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&start, "start", "", "Default start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Default end time (HH:MM)")
	cmd.Flags().StringVar(&reminder, "reminder", "", "Reminder time (HH:MM)")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee")
	cmd.Flags().BoolVar(&flagged, "flagged", false, "Flag created tasks")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTemplatesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List event templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Templates})
		},
	}
}

func newTemplatesRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <template-id>",
		Short: "Remove an event template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			kept := db.Templates[:0]
			found := false
			for _, tpl := range db.Templates {
				if tpl.ID == id {
					found = true
					continue
				}
				kept = append(kept, tpl)
			}
			if !found {
				return writeErr(cmd, errNotFound("template", id))
			}
			db.Templates = kept
			if err := st.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": id}})
		},
	}
}
