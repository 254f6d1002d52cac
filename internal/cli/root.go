package cli

import (
	"fmt"
	"os"
	"strings"

	"almanac-cli/internal/format"
	"almanac-cli/internal/store"
	"almanac-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "almanac",
		Short:        "Almanac calendar CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive calendar TUI
  almanac

  # Manage drag-and-drop templates
  almanac templates list

  # Schedule a template onto a date (what a calendar drop does)
  almanac tasks drop tmpl-abc12345 2024-05-01 --time 14:30

  # Serve the web calendar
  almanac web --addr 127.0.0.1:3336
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ALMANAC_DIR", ""), "Path to store dir (default: discovered .almanac)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ALMANAC_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return err
	}
	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		return err
	}
	return tui.Run(dir, db)
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	st := store.Store{Dir: dir}
	db, err := st.Load()
	if err != nil {
		return nil, store.Store{}, err
	}
	return db, st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
