package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"

	"almanac-cli/internal/model"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export scheduled tasks as iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			body := buildICS(db.Tasks)
			if strings.TrimSpace(out) == "" {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"file": out, "tasks": countScheduled(db.Tasks)}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	return cmd
}

func countScheduled(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Due != nil && strings.TrimSpace(t.Due.Date) != "" {
			n++
		}
	}
	return n
}

func buildICS(tasks []model.Task) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//almanac//calendar//EN")

	for _, t := range tasks {
		if t.Due == nil || strings.TrimSpace(t.Due.Date) == "" {
			continue
		}
		ev := cal.AddEvent(t.ID + "@almanac")
		ev.SetSummary(t.Title)
		if strings.TrimSpace(t.Description) != "" {
			ev.SetDescription(t.Description)
		}
		ev.SetDtStampTime(t.UpdatedAt)

		start, timed := dateTimeToLocal(t.Due)
		if !timed {
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
			continue
		}
		ev.SetStartAt(start)
		if t.End != nil {
			if end, ok := dateTimeToLocal(t.End); ok {
				ev.SetEndAt(end)
			}
		}
	}

	return cal.Serialize()
}

// dateTimeToLocal converts the wire DateTime to a local time.Time. The
// second return reports whether the value carried a time-of-day.
func dateTimeToLocal(dt *model.DateTime) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dt.Date), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if dt.Time == nil || strings.TrimSpace(*dt.Time) == "" {
		return day, false
	}
	hm, err := time.Parse("15:04", strings.TrimSpace(*dt.Time))
	if err != nil {
		return day, false
	}
	return day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), true
}
