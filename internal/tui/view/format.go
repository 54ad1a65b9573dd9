package view

import (
	"fmt"

	"github.com/javiermolinar/rocinante/internal/event"
)

// FormatDuration formats minutes as "45m", "2h" or "1h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// TimeRange formats the interval of e as "09:00 - 10:30 (1h 30m)". The end
// keeps the no-wrap hours, so a late event reads "23:30 - 25:00".
func TimeRange(e *event.Event) string {
	end, err := e.End()
	if err != nil {
		return fmt.Sprintf("%s (%s)", e.Time, FormatDuration(e.Duration))
	}
	return fmt.Sprintf("%s - %s (%s)", e.Time, end, FormatDuration(e.Duration))
}
