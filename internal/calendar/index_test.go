package calendar

import (
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/event"
)

func ev(id, date, start string, duration int, cat event.Category) *event.Event {
	return &event.Event{ID: id, Title: "event " + id, Date: date, Time: start, Duration: duration, Category: cat}
}

func ids(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCategoryFilter(t *testing.T) {
	f := AllCategories()
	if f.Len() != len(event.Categories) {
		t.Fatalf("Len = %d, want %d", f.Len(), len(event.Categories))
	}

	g := f.Toggle(event.CategoryMeeting)
	if g.Enabled(event.CategoryMeeting) {
		t.Error("meeting should be disabled after toggle")
	}
	if !f.Enabled(event.CategoryMeeting) {
		t.Error("Toggle must not modify the receiver")
	}
	if got := g.Toggle(event.CategoryMeeting); !got.Enabled(event.CategoryMeeting) {
		t.Error("second toggle should re-enable meeting")
	}

	if got := g.String(); got != "[work,personal,deadline,reminder]" {
		t.Errorf("String = %q", got)
	}

	if got := NewCategoryFilter("nope", event.CategoryWork); got.Len() != 1 {
		t.Errorf("unknown categories should be ignored, Len = %d", got.Len())
	}
	if got := f.Toggle("nope"); got.Len() != f.Len() {
		t.Error("toggling an unknown category should be a no-op")
	}
}

func TestFilterByCategory(t *testing.T) {
	events := []*event.Event{
		ev("1", "2025-01-10", "09:00", 30, event.CategoryWork),
		ev("2", "2025-01-10", "10:00", 30, event.CategoryMeeting),
		ev("3", "2025-01-11", "11:00", 30, event.CategoryWork),
		ev("4", "2025-01-12", "12:00", 30, event.CategoryReminder),
	}

	tests := []struct {
		name   string
		filter CategoryFilter
		want   []string
	}{
		{name: "all", filter: AllCategories(), want: []string{"1", "2", "3", "4"}},
		{name: "work only", filter: NewCategoryFilter(event.CategoryWork), want: []string{"1", "3"}},
		{name: "meeting and reminder", filter: NewCategoryFilter(event.CategoryReminder, event.CategoryMeeting), want: []string{"2", "4"}},
		{name: "none enabled", filter: NewCategoryFilter(), want: []string{}},
		{name: "zero value", filter: CategoryFilter{}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByCategory(events, tt.filter)
			if got == nil {
				t.Fatal("expected a non-nil slice")
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestEventsOnDate(t *testing.T) {
	events := []*event.Event{
		ev("1", "2025-01-10", "09:00", 30, event.CategoryWork),
		ev("2", "2025-01-11", "10:00", 30, event.CategoryWork),
		ev("3", "2025-01-10", "08:00", 30, event.CategoryWork),
		ev("4", "2025-1-10", "08:00", 30, event.CategoryWork), // not zero padded
	}

	got := EventsOnDate(events, time.Date(2025, 1, 10, 17, 45, 0, 0, time.Local))
	if want := []string{"1", "3"}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}

	if got := EventsOnKey(events, "2025-02-01"); len(got) != 0 {
		t.Errorf("expected no events, got %v", ids(got))
	}
}

func TestEventsOnDate_RoundTrip(t *testing.T) {
	// An event created through the public constructor is always found on the
	// date it was created for.
	for _, d := range []string{"2024-02-29", "2025-01-01", "2025-12-31"} {
		e, err := event.New("Round trip", "work", d, "09:00", 30)
		if err != nil {
			t.Fatalf("New(%s): %v", d, err)
		}
		parsed, _ := time.ParseInLocation("2006-01-02", d, time.Local)
		if got := EventsOnDate([]*event.Event{e}, parsed); len(got) != 1 {
			t.Errorf("%s: event not found on its own date", d)
		}
	}
}

func TestEventsByHour(t *testing.T) {
	events := []*event.Event{
		ev("1", "2025-01-10", "09:00", 30, event.CategoryWork),
		ev("2", "2025-01-10", "09:45", 30, event.CategoryWork),
		ev("3", "2025-01-10", "19:00", 30, event.CategoryWork),
		ev("4", "2025-01-10", "00:15", 30, event.CategoryWork),
		ev("5", "2025-01-10", "9:00", 30, event.CategoryWork),
	}

	tests := []struct {
		hour int
		want []string
	}{
		{hour: 9, want: []string{"1", "2"}},
		{hour: 19, want: []string{"3"}},
		{hour: 0, want: []string{"4"}},
		{hour: 23, want: []string{}},
	}
	for _, tt := range tests {
		got := EventsByHour(events, tt.hour)
		if !equalIDs(ids(got), tt.want) {
			t.Errorf("hour %d: got %v, want %v", tt.hour, ids(got), tt.want)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	window := Window(time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), ModeWeek)
	events := []*event.Event{
		ev("1", "2025-01-13", "09:00", 30, event.CategoryWork),
		ev("2", "2025-01-18", "10:00", 30, event.CategoryWork),
		ev("3", "2025-01-13", "08:00", 30, event.CategoryWork),
		ev("4", "2025-01-19", "08:00", 30, event.CategoryWork), // next week
	}

	groups := GroupByDate(events, window)
	if len(groups) != 7 {
		t.Fatalf("len = %d, want 7", len(groups))
	}
	if got := ids(groups["2025-01-13"]); !equalIDs(got, []string{"1", "3"}) {
		t.Errorf("2025-01-13 = %v", got)
	}
	if got := ids(groups["2025-01-18"]); !equalIDs(got, []string{"2"}) {
		t.Errorf("2025-01-18 = %v", got)
	}
	if day, ok := groups["2025-01-14"]; !ok || day == nil || len(day) != 0 {
		t.Errorf("empty day should map to an empty slice, got %v (present=%v)", day, ok)
	}
	if _, ok := groups["2025-01-19"]; ok {
		t.Error("dates outside the window should not be present")
	}
}
