package calendar

import (
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

// Number of events shown in a grid cell before collapsing into "+N more".
const (
	MonthCellLimit = 3
	WeekCellLimit  = 4
)

// Cell holds everything needed to draw one date of the grid.
type Cell struct {
	Date     time.Time
	Key      string
	Events   []*event.Event // sorted by start time, stable
	Conflict bool
	InMonth  bool // false for month-view padding days
	Today    bool
}

// Visible splits the cell events into those shown and the hidden count.
func (c Cell) Visible(limit int) (shown []*event.Event, hidden int) {
	if limit <= 0 || len(c.Events) <= limit {
		return c.Events, 0
	}
	return c.Events[:limit], len(c.Events) - limit
}

// HourRow is one hour of the day view.
type HourRow struct {
	Hour   int
	Label  string // "9:00 AM"
	Events []*event.Event
}

// Grid is a rendered-ready projection of a view: the window, the filtered
// events grouped per date and the conflict flags.
type Grid struct {
	State  ViewState
	Cells  []Cell
	Events []*event.Event // filtered, input order
}

// BuildGrid runs the engine for one view state: it computes the window,
// applies the category filter, groups by date and flags conflicts.
func BuildGrid(state ViewState, events []*event.Event, filter CategoryFilter, now time.Time) *Grid {
	return buildGrid(state, Window(state.Anchor, state.Mode), events, filter, now)
}

// BuildGridCached is BuildGrid with the window taken from cache.
func BuildGridCached(cache *WindowCache, state ViewState, events []*event.Event, filter CategoryFilter, now time.Time) *Grid {
	return buildGrid(state, cache.Window(state.Anchor, state.Mode), events, filter, now)
}

func buildGrid(state ViewState, window []time.Time, events []*event.Event, filter CategoryFilter, now time.Time) *Grid {
	filtered := FilterByCategory(events, filter)
	groups := GroupByDate(filtered, window)
	todayKey := dateutil.FormatKey(now)

	g := &Grid{
		State:  state,
		Cells:  make([]Cell, 0, len(window)),
		Events: filtered,
	}
	for _, d := range window {
		key := dateutil.FormatKey(d)
		dayEvents := groups[key]
		g.Cells = append(g.Cells, Cell{
			Date:     d,
			Key:      key,
			Events:   SortByTime(dayEvents),
			Conflict: HasConflict(dayEvents),
			InMonth:  state.Mode != ModeMonth || d.Month() == state.Anchor.Month(),
			Today:    key == todayKey,
		})
	}
	return g
}

// Rows splits the cells into weeks of seven. Day view yields one row with a
// single cell.
func (g *Grid) Rows() [][]Cell {
	if g.State.Mode == ModeDay {
		return [][]Cell{g.Cells}
	}
	var rows [][]Cell
	for i := 0; i < len(g.Cells); i += 7 {
		rows = append(rows, g.Cells[i:min(i+7, len(g.Cells))])
	}
	return rows
}

// Cell returns the cell for a date key.
func (g *Grid) Cell(key string) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// CellLimit returns how many events a cell shows in the grid's mode.
// Day view shows everything.
func (g *Grid) CellLimit() int {
	switch g.State.Mode {
	case ModeMonth:
		return MonthCellLimit
	case ModeWeek:
		return WeekCellLimit
	default:
		return 0
	}
}

// ConflictCount returns the number of dates flagged with a conflict.
func (g *Grid) ConflictCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Conflict {
			n++
		}
	}
	return n
}

// HourRows returns the 24 hour rows of the anchor date, each with the
// events starting in that hour.
func (g *Grid) HourRows() []HourRow {
	cell, _ := g.Cell(g.State.Key())
	rows := make([]HourRow, 24)
	for h := range rows {
		rows[h] = HourRow{
			Hour:   h,
			Label:  time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("3:04 PM"),
			Events: EventsByHour(cell.Events, h),
		}
	}
	return rows
}
