package calendar

import (
	"slices"
	"strings"

	"github.com/javiermolinar/rocinante/internal/event"
)

// Conflict describes two adjacent events on one day that overlap.
type Conflict struct {
	First  *event.Event
	Second *event.Event
	End    string // end time of First, "HH:MM"
}

// HasConflict reports whether any two events of one day overlap.
//
// Events are stably sorted by start time and only adjacent pairs are
// compared: (A, B) conflicts when end(A) > start(B). An event contained in
// a longer, earlier event that is not its direct neighbour is not reported.
func HasConflict(dayEvents []*event.Event) bool {
	_, ok := FirstConflict(dayEvents)
	return ok
}

// FirstConflict returns the first adjacent overlapping pair in start order.
// Events whose end time cannot be computed are never the first of a pair.
// The input slice is not modified.
func FirstConflict(dayEvents []*event.Event) (Conflict, bool) {
	if len(dayEvents) < 2 {
		return Conflict{}, false
	}

	sorted := SortByTime(dayEvents)
	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		end, err := a.End()
		if err != nil {
			continue
		}
		if end > b.Time {
			return Conflict{First: a, Second: b, End: end}, true
		}
	}
	return Conflict{}, false
}

// SortByTime returns a copy of events stably sorted by start time.
// Events with equal start times keep their input order.
func SortByTime(events []*event.Event) []*event.Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b *event.Event) int {
		return strings.Compare(a.Time, b.Time)
	})
	return sorted
}

// ConflictDays flags every date key whose events conflict.
func ConflictDays(groups map[string][]*event.Event) map[string]bool {
	flags := make(map[string]bool, len(groups))
	for key, dayEvents := range groups {
		flags[key] = HasConflict(dayEvents)
	}
	return flags
}
