package tui

import (
	"fmt"
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

// First hour shown in day view before any scrolling.
const defaultDayScroll = 8

// Days around today whose events are sent to the drafter for overlap warnings.
const draftContextDays = 14

// gridMemo holds the last grid built for the model. The copies bubbletea
// makes of the model share it.
type gridMemo struct {
	key    gridKey
	grid   *calendar.Grid
	builds int
}

type gridKey struct {
	anchor string
	mode   calendar.ViewMode
	filter string
	events uint64
	today  string
}

// grid returns the visible grid, rebuilding it only when the view, the
// filter, the loaded events or the current day changed. The result is
// shared and must not be modified.
func (m *Model) grid() *calendar.Grid {
	key := gridKey{
		anchor: m.state.Key(),
		mode:   m.state.Mode,
		filter: m.filter.String(),
		events: m.eventsGen,
		today:  dateutil.FormatKey(m.now()),
	}
	if m.grids.grid != nil && m.grids.key == key {
		return m.grids.grid
	}
	m.grids.key = key
	m.grids.grid = calendar.BuildGridCached(m.cache, m.state, m.events, m.filter, m.now())
	m.grids.builds++
	return m.grids.grid
}

// selectedCell returns the grid cell of the selected date.
func (m *Model) selectedCell() (calendar.Cell, bool) {
	return m.grid().Cell(dateutil.FormatKey(m.selected))
}

// selectedDayEvents returns the filtered events of the selected date in
// start order.
func (m *Model) selectedDayEvents() []*event.Event {
	cell, ok := m.selectedCell()
	if !ok {
		return nil
	}
	return cell.Events
}

// selectedEvent returns the highlighted event of the selected date.
func (m *Model) selectedEvent() *event.Event {
	events := m.selectedDayEvents()
	if len(events) == 0 || m.eventIdx < 0 {
		return nil
	}
	return events[min(m.eventIdx, len(events)-1)]
}

// selectDate moves the selection to date, jumping the view when the date
// leaves the visible window.
func (m *Model) selectDate(date time.Time, reason string) {
	from := m.state
	m.selected = dateutil.TruncateToDay(date)
	m.eventIdx = 0
	if !m.inWindow(m.selected) {
		m.state = calendar.JumpTo(m.state, m.selected)
	}
	if m.state.Mode == calendar.ModeDay {
		m.state = calendar.JumpTo(m.state, m.selected)
	}
	LogNavigate(from, m.state, reason)
}

// inWindow reports whether date belongs to the current view: the anchor
// month, the anchor week or the anchor day.
func (m *Model) inWindow(date time.Time) bool {
	a := m.state.Anchor
	switch m.state.Mode {
	case calendar.ModeMonth:
		return date.Year() == a.Year() && date.Month() == a.Month()
	case calendar.ModeWeek:
		return dateutil.SameDay(dateutil.StartOfWeek(date), dateutil.StartOfWeek(a))
	default:
		return dateutil.SameDay(date, a)
	}
}

// setState replaces the view state and moves the selection to its anchor.
func (m *Model) setState(s calendar.ViewState, reason string) {
	from := m.state
	m.state = s
	m.selected = s.Anchor
	m.eventIdx = 0
	LogNavigate(from, m.state, reason)
}

// cycleEvent moves the event highlight by delta, wrapping around the day.
func (m *Model) cycleEvent(delta int) {
	events := m.selectedDayEvents()
	if len(events) == 0 {
		m.eventIdx = 0
		return
	}
	idx := min(max(m.eventIdx, 0), len(events)-1)
	m.eventIdx = (idx + delta + len(events)) % len(events)
	m.ensureEventVisible()
}

// ensureEventVisible scrolls day view so the highlighted event's hour is
// on screen.
func (m *Model) ensureEventVisible() {
	if m.state.Mode != calendar.ModeDay {
		return
	}
	e := m.selectedEvent()
	if e == nil {
		return
	}
	m.scrollToHour(e.Hour())
}

func (m *Model) scrollToHour(hour int) {
	visible := max(m.agendaHeight(), 1)
	switch {
	case hour < m.dayScroll:
		m.dayScroll = hour
	case hour >= m.dayScroll+visible:
		m.dayScroll = hour - visible + 1
	}
	m.clampDayScroll()
}

func (m *Model) clampDayScroll() {
	maxScroll := max(24-max(m.agendaHeight(), 1), 0)
	m.dayScroll = min(max(m.dayScroll, 0), maxScroll)
}

// draftContext returns the events dated within draftContextDays of now.
func (m *Model) draftContext() []*event.Event {
	today := dateutil.TruncateToDay(m.now())
	last := today.AddDate(0, 0, draftContextDays)
	var out []*event.Event
	for _, e := range m.events {
		d, err := dateutil.ParseKey(e.Date)
		if err != nil {
			continue
		}
		if !d.Before(today) && !d.After(last) {
			out = append(out, e)
		}
	}
	return out
}

// conflictFor returns the neighbour overlapping e on its day, if any.
// Only events passing the category filter are considered.
func (m *Model) conflictFor(e *event.Event) *event.Event {
	day := calendar.SortByTime(calendar.FilterByCategory(calendar.EventsOnKey(m.events, e.Date), m.filter))
	for i := 0; i+1 < len(day); i++ {
		c, ok := calendar.FirstConflict(day[i : i+2])
		if !ok {
			continue
		}
		switch e.ID {
		case c.First.ID:
			return c.Second
		case c.Second.ID:
			return c.First
		}
	}
	return nil
}

// parseKeyOr returns the date of key, or fallback when key is malformed.
func parseKeyOr(key string, fallback time.Time) time.Time {
	d, err := dateutil.ParseKey(key)
	if err != nil {
		return fallback
	}
	return d
}

// eventCopyText is the single-line clipboard form of an event.
func eventCopyText(e *event.Event) string {
	end, err := e.End()
	if err != nil {
		end = "?"
	}
	text := fmt.Sprintf("%s %s-%s %s [%s]", e.Date, e.Time, end, e.Title, e.Category)
	if e.Location != "" {
		text += " @ " + e.Location
	}
	return text
}
