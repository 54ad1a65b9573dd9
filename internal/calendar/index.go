package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

// CategoryFilter is the set of enabled categories. It is a projection over
// the event collection; it never changes the events themselves.
type CategoryFilter struct {
	enabled map[event.Category]bool
}

// NewCategoryFilter returns a filter with the given categories enabled.
// Unknown categories are ignored.
func NewCategoryFilter(categories ...event.Category) CategoryFilter {
	f := CategoryFilter{enabled: make(map[event.Category]bool, len(categories))}
	for _, c := range categories {
		if c.Valid() {
			f.enabled[c] = true
		}
	}
	return f
}

// AllCategories returns a filter with every category enabled.
func AllCategories() CategoryFilter {
	return NewCategoryFilter(event.Categories...)
}

// Enabled reports whether c passes the filter.
func (f CategoryFilter) Enabled(c event.Category) bool {
	return f.enabled[c]
}

// Len returns the number of enabled categories.
func (f CategoryFilter) Len() int {
	return len(f.enabled)
}

// Categories returns the enabled categories in display order.
func (f CategoryFilter) Categories() []event.Category {
	var result []event.Category
	for _, c := range event.Categories {
		if f.enabled[c] {
			result = append(result, c)
		}
	}
	return result
}

// Toggle returns a copy of the filter with c flipped.
func (f CategoryFilter) Toggle(c event.Category) CategoryFilter {
	next := NewCategoryFilter(f.Categories()...)
	if !c.Valid() {
		return next
	}
	if next.enabled[c] {
		delete(next.enabled, c)
	} else {
		next.enabled[c] = true
	}
	return next
}

// String implements fmt.Stringer.
func (f CategoryFilter) String() string {
	names := make([]string, 0, f.Len())
	for _, c := range f.Categories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ","))
}

// FilterByCategory keeps the events whose category is enabled, preserving
// order. An empty filter yields an empty result.
func FilterByCategory(events []*event.Event, filter CategoryFilter) []*event.Event {
	result := make([]*event.Event, 0, len(events))
	if filter.Len() == 0 {
		return result
	}
	for _, e := range events {
		if filter.Enabled(e.Category) {
			result = append(result, e)
		}
	}
	return result
}

// EventsOnDate keeps the events whose Date string equals the date key of
// date. The comparison is string equality, not a date-value comparison.
func EventsOnDate(events []*event.Event, date time.Time) []*event.Event {
	return EventsOnKey(events, dateutil.FormatKey(date))
}

// EventsOnKey keeps the events whose Date string equals key.
func EventsOnKey(events []*event.Event, key string) []*event.Event {
	var result []*event.Event
	for _, e := range events {
		if e.Date == key {
			result = append(result, e)
		}
	}
	return result
}

// EventsByHour keeps the day events whose start time falls in hour.
// The match is on the zero-padded hour prefix of the time string.
func EventsByHour(dayEvents []*event.Event, hour int) []*event.Event {
	prefix := fmt.Sprintf("%02d:", hour)
	var result []*event.Event
	for _, e := range dayEvents {
		if strings.HasPrefix(e.Time, prefix) {
			result = append(result, e)
		}
	}
	return result
}

// GroupByDate maps the date key of every date in the window to the events
// on that date. Dates without events map to an empty slice. Events outside
// the window are ignored.
func GroupByDate(events []*event.Event, window []time.Time) map[string][]*event.Event {
	groups := make(map[string][]*event.Event, len(window))
	for _, d := range window {
		groups[dateutil.FormatKey(d)] = []*event.Event{}
	}
	for _, e := range events {
		if day, ok := groups[e.Date]; ok {
			groups[e.Date] = append(day, e)
		}
	}
	return groups
}
