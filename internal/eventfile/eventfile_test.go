package eventfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/event"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func titles(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "TOML", want: FormatTOML},
		{in: "yml", want: FormatYAML},
		{in: "yaml", want: FormatYAML},
		{in: "ical", want: FormatICS},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if f, err := FormatFromPath("/tmp/events.YML"); err != nil || f != FormatYAML {
		t.Errorf("FormatFromPath = %q, %v", f, err)
	}
	if _, err := FormatFromPath("/tmp/events"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat without extension, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	events, skipped, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil || events != nil || skipped != nil {
		t.Errorf("Load = %v, %v, %v", events, skipped, err)
	}
}

func TestLoad_JSONSkipsBadRecords(t *testing.T) {
	path := writeFile(t, "events.json", `[
  {"id": "1", "title": "Team sync", "date": "2025-01-15", "time": "09:00", "duration": 60, "category": "meeting"},
  {"id": "2", "title": "Broken", "date": "2025-01-15", "time": "10:00", "duration": "sixty", "category": "work"},
  {"id": "3", "title": "", "date": "2025-01-15", "time": "11:00", "duration": 30, "category": "work"},
  {"id": "1", "title": "Same id", "date": "2025-01-16", "time": "09:00", "duration": 30, "category": "work"},
  {"id": 5, "title": "Numeric id", "date": "2025-01-16", "time": "09:00", "duration": 30, "category": "work"},
  {"title": "No id", "date": "2025-01-17", "time": "12:30", "duration": 45, "category": "personal", "attendees": ["ana@example.com"]}
]`)

	events, skipped, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := titles(events); len(got) != 2 || got[0] != "Team sync" || got[1] != "No id" {
		t.Errorf("events = %v", got)
	}
	if len(events[1].Attendees) != 1 {
		t.Errorf("attendees = %v", events[1].Attendees)
	}

	wantSkipped := []struct {
		index int
		id    string
		err   error
	}{
		{2, "2", nil},
		{3, "3", event.ErrEmptyTitle},
		{4, "1", event.ErrDuplicateID},
		{5, "5", nil},
	}
	if len(skipped) != len(wantSkipped) {
		t.Fatalf("skipped = %v", skipped)
	}
	for i, want := range wantSkipped {
		got := skipped[i]
		if got.Index != want.index || got.ID != want.id {
			t.Errorf("skipped[%d] = %d/%q, want %d/%q", i, got.Index, got.ID, want.index, want.id)
		}
		if want.err != nil && !errors.Is(&got, want.err) {
			t.Errorf("skipped[%d] err = %v, want %v", i, got.Err, want.err)
		}
	}
}

func TestDecode_JSONObject(t *testing.T) {
	doc := `{"events": [{"id": "a", "title": "Standup", "date": "2025-01-15", "time": "09:30", "duration": 15, "category": "meeting"}]}`
	events, skipped, err := Decode(strings.NewReader(doc), FormatJSON)
	if err != nil || len(skipped) != 0 || len(events) != 1 {
		t.Fatalf("Decode = %v, %v, %v", events, skipped, err)
	}
}

func TestDecode_MalformedDocument(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
	}{
		{FormatJSON, `[{"id": `},
		{FormatTOML, `[[events]`},
		{FormatYAML, `events: 12`},
	}
	for _, tt := range tests {
		if _, _, err := Decode(strings.NewReader(tt.doc), tt.format); err == nil {
			t.Errorf("%s: expected an error", tt.format)
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	events, skipped, err := Decode(strings.NewReader("  \n"), FormatJSON)
	if err != nil || events != nil || skipped != nil {
		t.Errorf("Decode = %v, %v, %v", events, skipped, err)
	}
	if _, _, err := Decode(strings.NewReader(""), Format("csv")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecode_TOML(t *testing.T) {
	doc := `
[[events]]
id = "1"
title = "Quoted"
date = "2025-01-15"
time = "09:00"
duration = 60
category = "work"

[[events]]
id = "2"
title = "Bare date and time"
date = 2025-01-16
time = 14:30:00
duration = 30
category = "deadline"

[[events]]
id = "3"
title = "Bad duration"
date = "2025-01-16"
time = "14:30"
duration = "long"
category = "work"
`
	events, skipped, err := Decode(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %v", titles(events))
	}
	if events[1].Date != "2025-01-16" || events[1].Time != "14:30" {
		t.Errorf("bare values = %q %q", events[1].Date, events[1].Time)
	}
	if len(skipped) != 1 || skipped[0].Index != 3 || skipped[0].ID != "3" {
		t.Errorf("skipped = %v", skipped)
	}
}

func TestDecode_YAML(t *testing.T) {
	list := `
- id: "1"
  title: Gym
  date: 2025-01-15
  time: "18:00"
  duration: 90
  category: personal
- id: "2"
  title: Broken
  date: 2025-01-15
  time: "19:00"
  duration: [1, 2]
  category: personal
`
	keyed := "events:\n" + strings.ReplaceAll(list, "\n", "\n  ")

	for name, doc := range map[string]string{"list": list, "keyed": keyed} {
		t.Run(name, func(t *testing.T) {
			events, skipped, err := Decode(strings.NewReader(doc), FormatYAML)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(events) != 1 || events[0].Date != "2025-01-15" || events[0].Duration != 90 {
				t.Errorf("events = %+v", events)
			}
			if len(skipped) != 1 || skipped[0].ID != "2" || skipped[0].Index != 2 {
				t.Errorf("skipped = %v", skipped)
			}
		})
	}
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:timed-1\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART:20250115T093000\r\n" +
	"DTEND:20250115T110000\r\n" +
	"SUMMARY:Design review\r\n" +
	"CATEGORIES:MEETING\r\n" +
	"LOCATION:Room 4\r\n" +
	"ATTENDEE:mailto:ana@example.com\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday-1\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20250120\r\n" +
	"DTEND;VALUE=DATE:20250121\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-1\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART:20250113T080000\r\n" +
	"RRULE:FREQ=WEEKLY\r\n" +
	"SUMMARY:Recurring\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nostart-1\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestDecode_ICS(t *testing.T) {
	events, skipped, err := Decode(strings.NewReader(sampleICS), FormatICS)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %v", titles(events))
	}

	timed := events[0]
	if timed.ID != "timed-1" || timed.Date != "2025-01-15" || timed.Time != "09:30" || timed.Duration != 90 {
		t.Errorf("timed = %+v", timed)
	}
	if timed.Category != event.CategoryMeeting || timed.Location != "Room 4" {
		t.Errorf("timed = %+v", timed)
	}
	if len(timed.Attendees) != 1 || timed.Attendees[0] != "ana@example.com" {
		t.Errorf("attendees = %v", timed.Attendees)
	}

	allDay := events[1]
	if allDay.Time != "00:00" || allDay.Duration != 24*60 || allDay.Category != event.CategoryWork {
		t.Errorf("all-day = %+v", allDay)
	}

	if len(skipped) != 2 {
		t.Fatalf("skipped = %v", skipped)
	}
	if skipped[0].ID != "weekly-1" || !errors.Is(&skipped[0], errRecurring) {
		t.Errorf("skipped[0] = %v", skipped[0])
	}
	if skipped[1].ID != "nostart-1" || !errors.Is(&skipped[1], errMissingStart) {
		t.Errorf("skipped[1] = %v", skipped[1])
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	events := []*event.Event{
		{ID: "a", Title: "Planning", Date: "2025-01-15", Time: "09:00", Duration: 60, Category: event.CategoryWork, Description: "Q1", Location: "HQ"},
		{ID: "b", Title: "Dinner", Date: "2025-01-17", Time: "20:15", Duration: 120, Category: event.CategoryPersonal, Color: "#33aa55", Attendees: []string{"bo@example.com"}},
	}

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, events); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, skipped, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(skipped) != 0 {
				t.Fatalf("skipped = %v", skipped)
			}
			if len(got) != len(events) {
				t.Fatalf("got %d events, want %d", len(got), len(events))
			}
			for i, want := range events {
				g := got[i]
				if g.ID != want.ID || g.Title != want.Title || g.Date != want.Date || g.Time != want.Time || g.Duration != want.Duration || g.Category != want.Category {
					t.Errorf("event %d = %+v, want %+v", i, g, want)
				}
				if g.Location != want.Location || g.Color != want.Color || len(g.Attendees) != len(want.Attendees) {
					t.Errorf("event %d optional fields = %+v, want %+v", i, g, want)
				}
			}
		})
	}
}

func TestEncode_ICSHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, FormatICS, []*event.Event{
		{ID: "a", Title: "Planning", Date: "2025-01-15", Time: "09:00", Duration: 60, Category: event.CategoryWork},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "METHOD:PUBLISH", productID, "UID:a", "SUMMARY:Planning", "CATEGORIES:WORK"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestEncode_Unsupported(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, Format("csv"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestImport(t *testing.T) {
	repo, err := db.New(db.MemoryDSN)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	ctx := context.Background()

	existing := &event.Event{ID: "taken", Title: "Already here", Date: "2025-01-14", Time: "08:00", Duration: 30, Category: event.CategoryWork}
	if err := repo.CreateEvent(ctx, existing); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	path := writeFile(t, "events.yaml", `
- {id: taken, title: Clash, date: 2025-01-15, time: "09:00", duration: 30, category: work}
- {title: Fresh, date: 2025-01-15, time: "10:00", duration: 30, category: work}
- {id: bad, title: Bad, date: 2025-01-15, time: "25:00", duration: 30, category: work}
`)

	n, skipped, err := Import(ctx, repo, path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("stored = %d, want 1", n)
	}
	if len(skipped) != 2 || skipped[0].Index != 1 || skipped[1].Index != 3 {
		t.Fatalf("skipped = %v", skipped)
	}
	if !errors.Is(&skipped[0], event.ErrDuplicateID) {
		t.Errorf("skipped[0] = %v", skipped[0])
	}
	if !errors.Is(&skipped[1], event.ErrInvalidTime) {
		t.Errorf("skipped[1] = %v", skipped[1])
	}

	events, _ := repo.ListEventsByDateRange(ctx, time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local))
	if len(events) != 1 || events[0].Title != "Fresh" || events[0].ID == "" {
		t.Errorf("imported = %+v", events)
	}
}

func TestAppend_CreatesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal", "events.toml")
	first := &event.Event{ID: "a", Title: "Standup", Date: "2025-01-15", Time: "09:00", Duration: 15, Category: event.CategoryMeeting}
	if err := Append(path, []*event.Event{first}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := &event.Event{ID: "b", Title: "Gym", Date: "2025-01-15", Time: "18:00", Duration: 60, Category: event.CategoryPersonal}
	if err := Append(path, []*event.Event{second}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, skipped, err := Load(path)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("Load: %v %v", err, skipped)
	}
	if got := titles(events); len(got) != 2 || got[0] != "Standup" || got[1] != "Gym" {
		t.Errorf("titles = %v", got)
	}
}

func TestRewrite(t *testing.T) {
	path := writeFile(t, "events.json", `[{"id": "a", "title": "Old", "date": "2025-01-15", "time": "09:00", "duration": 30, "category": "work"}]`)

	replacement := []*event.Event{{ID: "b", Title: "New", Date: "2025-01-16", Time: "10:00", Duration: 45, Category: event.CategoryReminder}}
	if err := Rewrite(path, replacement); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	events, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := titles(events); len(got) != 1 || got[0] != "New" {
		t.Errorf("titles = %v", got)
	}
}

func TestRewrite_RefusesUnreadableRecords(t *testing.T) {
	doc := `[{"id": "a", "title": "Bad", "date": "2025-01-15", "time": "9am", "duration": 30, "category": "work"}]`
	path := writeFile(t, "events.json", doc)

	err := Rewrite(path, nil)
	if !errors.Is(err, ErrUnreadableRecords) {
		t.Fatalf("expected ErrUnreadableRecords, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != doc {
		t.Error("document should be left untouched")
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "events.txt"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
