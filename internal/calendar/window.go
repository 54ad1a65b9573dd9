package calendar

import (
	"slices"
	"sync"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Window returns the dates displayed for anchor in the given mode.
//
//   - month: Sunday on/before the 1st through Saturday on/after the last day
//     of the anchor's month (28 to 42 dates, always a multiple of 7)
//   - week: the Sunday-to-Saturday week containing anchor
//   - day: the anchor alone
//
// The result is contiguous and strictly ascending. Dates are at midnight in
// the anchor's location. An unknown mode yields nil.
func Window(anchor time.Time, mode ViewMode) []time.Time {
	anchor = dateutil.TruncateToDay(anchor)

	switch mode {
	case ModeMonth:
		first, last := dateutil.MonthRange(anchor)
		return daysBetween(dateutil.StartOfWeek(first), dateutil.EndOfWeek(last))
	case ModeWeek:
		sunday, saturday := dateutil.WeekRange(anchor)
		return daysBetween(sunday, saturday)
	case ModeDay:
		return []time.Time{anchor}
	default:
		return nil
	}
}

// daysBetween returns every date from start to end inclusive.
func daysBetween(start, end time.Time) []time.Time {
	days := make([]time.Time, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DefaultWindowCacheSize bounds the windows kept by NewWindowCache.
const DefaultWindowCacheSize = 64

// WindowCache memoizes Window keyed on the anchor date and mode.
// The cached slices are never handed out directly. Once the cache holds its
// limit, the next miss starts it over.
type WindowCache struct {
	mu      sync.Mutex
	entries map[windowKey][]time.Time
	limit   int
	hits    int
	misses  int
}

type windowKey struct {
	date string
	loc  string
	mode ViewMode
}

// NewWindowCache creates an empty cache holding up to
// DefaultWindowCacheSize windows.
func NewWindowCache() *WindowCache {
	return NewWindowCacheSize(DefaultWindowCacheSize)
}

// NewWindowCacheSize creates an empty cache holding up to limit windows.
func NewWindowCacheSize(limit int) *WindowCache {
	return &WindowCache{entries: make(map[windowKey][]time.Time), limit: max(limit, 1)}
}

// Window returns the same result as the package-level Window.
func (c *WindowCache) Window(anchor time.Time, mode ViewMode) []time.Time {
	key := windowKey{date: dateutil.FormatKey(anchor), loc: anchor.Location().String(), mode: mode}

	c.mu.Lock()
	defer c.mu.Unlock()

	if days, ok := c.entries[key]; ok {
		c.hits++
		return slices.Clone(days)
	}
	c.misses++
	days := Window(anchor, mode)
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[key] = days
	return slices.Clone(days)
}

// Stats returns the number of cache hits and misses.
func (c *WindowCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached windows.
func (c *WindowCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached window.
func (c *WindowCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
