package calendar

import (
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Next advances the anchor by one unit of the current mode.
func Next(s ViewState) ViewState {
	return Step(s, 1)
}

// Prev moves the anchor back by one unit of the current mode.
func Prev(s ViewState) ViewState {
	return Step(s, -1)
}

// Step moves the anchor by n units: months in month mode (the day is clamped
// to the target month's length), weeks in week mode, days in day mode.
func Step(s ViewState, n int) ViewState {
	switch s.Mode {
	case ModeMonth:
		s.Anchor = dateutil.AddMonths(s.Anchor, n)
	case ModeWeek:
		s.Anchor = s.Anchor.AddDate(0, 0, 7*n)
	case ModeDay:
		s.Anchor = s.Anchor.AddDate(0, 0, n)
	}
	return s
}

// Today moves the anchor to the day of now. The mode is unchanged.
func Today(s ViewState, now time.Time) ViewState {
	s.Anchor = dateutil.TruncateToDay(now)
	return s
}

// WithMode changes the mode. The anchor is unchanged.
// An invalid mode leaves the state untouched.
func WithMode(s ViewState, mode ViewMode) ViewState {
	if mode.Valid() {
		s.Mode = mode
	}
	return s
}

// JumpTo moves the anchor to date. The mode is unchanged.
func JumpTo(s ViewState, date time.Time) ViewState {
	s.Anchor = dateutil.TruncateToDay(date)
	return s
}
