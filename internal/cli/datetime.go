package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseDateArg validates a strict YYYY-MM-DD argument and returns it both as
// the canonical string and as a local midnight time. CLI inputs are
// validated hard; only URL parameters get the fail-open default treatment
// (see calview.ParseDate).
func parseDateArg(s string) (string, time.Time, error) {
	s = strings.TrimSpace(s)
	if !reDateOnly.MatchString(s) {
		return "", time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return s, t, nil
}
