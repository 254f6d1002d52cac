package calview

import (
	"strings"
	"time"

	"almanac-cli/internal/model"
)

// Schedule resolves a template drop to a concrete date and optional times.
// The date is always positional (where the drop landed). A non-empty
// timeHint means the drop landed on a time-grid slot: the hint overrides the
// start time only, and the end time still comes from the template. Drops
// without a hint (month/list views) take both times verbatim from the
// template. Under-specified templates yield under-specified drops; task
// creation downstream treats missing times as unset.
func Schedule(tpl model.EventTemplate, dropDate time.Time, timeHint *string) model.ScheduledDrop {
	out := model.ScheduledDrop{
		Date:     FormatDate(dropDate),
		Template: tpl,
		EndTime:  cloneHM(tpl.EndTime),
	}
	if timeHint != nil && strings.TrimSpace(*timeHint) != "" {
		hm := strings.TrimSpace(*timeHint)
		out.StartTime = &hm
		return out
	}
	out.StartTime = cloneHM(tpl.StartTime)
	return out
}

func cloneHM(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	hm := strings.TrimSpace(*s)
	return &hm
}
