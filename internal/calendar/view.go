// Package calendar implements the scheduling engine behind the month, week
// and day views: date windows, event indexing, conflict detection and
// navigation. Every function is a pure function of its arguments.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// ErrInvalidViewMode is returned when a view mode name is not recognized.
var ErrInvalidViewMode = errors.New("view mode must be 'month', 'week' or 'day'")

// ViewMode selects the window shape and the navigation step.
type ViewMode string

const (
	ModeMonth ViewMode = "month"
	ModeWeek  ViewMode = "week"
	ModeDay   ViewMode = "day"
)

// ViewModes lists the view modes in display order.
var ViewModes = []ViewMode{ModeMonth, ModeWeek, ModeDay}

// ParseViewMode parses a view mode name, ignoring case.
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return m, nil
}

// Valid returns true if the mode is month, week or day.
func (m ViewMode) Valid() bool {
	switch m {
	case ModeMonth, ModeWeek, ModeDay:
		return true
	default:
		return false
	}
}

// Label returns the capitalized mode name.
func (m ViewMode) Label() string {
	switch m {
	case ModeMonth:
		return "Month"
	case ModeWeek:
		return "Week"
	case ModeDay:
		return "Day"
	default:
		return string(m)
	}
}

// ViewState is the navigation state owned by the host: the anchor date and
// the view mode. It is a value; operations return a new state.
type ViewState struct {
	Anchor time.Time // always midnight
	Mode   ViewMode
}

// NewViewState returns a state anchored on the day of now.
// An invalid mode falls back to month.
func NewViewState(now time.Time, mode ViewMode) ViewState {
	if !mode.Valid() {
		mode = ModeMonth
	}
	return ViewState{Anchor: dateutil.TruncateToDay(now), Mode: mode}
}

// Key returns the date key of the anchor.
func (s ViewState) Key() string {
	return dateutil.FormatKey(s.Anchor)
}

// Title returns the header title for the view.
func (s ViewState) Title() string {
	a := s.Anchor
	switch s.Mode {
	case ModeWeek:
		return fmt.Sprintf("Week of %s %s, %d", a.Format("Jan"), dateutil.Ordinal(a.Day()), a.Year())
	case ModeDay:
		return fmt.Sprintf("%s, %s %s, %d", a.Format("Monday"), a.Format("January"), dateutil.Ordinal(a.Day()), a.Year())
	default:
		return a.Format("January 2006")
	}
}

// String implements fmt.Stringer for logging.
func (s ViewState) String() string {
	return fmt.Sprintf("%s@%s", s.Mode, s.Key())
}
