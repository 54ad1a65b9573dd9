package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
)

func TestAppendEvents(t *testing.T) {
	for _, ext := range []string{"json", "toml", "yaml", "ics"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "events."+ext)

			first := &event.Event{ID: "a", Title: "Standup", Date: "2025-01-15", Time: "09:00", Duration: 15, Category: event.CategoryMeeting}
			if err := appendEvents(path, []*event.Event{first}); err != nil {
				t.Fatalf("appendEvents (create): %v", err)
			}
			second := &event.Event{ID: "b", Title: "Gym", Date: "2025-01-16", Time: "18:00", Duration: 60, Category: event.CategoryPersonal}
			if err := appendEvents(path, []*event.Event{second}); err != nil {
				t.Fatalf("appendEvents (append): %v", err)
			}

			events, skipped, err := eventfile.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(skipped) != 0 {
				t.Fatalf("skipped = %v", skipped)
			}
			if len(events) != 2 || events[0].ID != "a" || events[1].ID != "b" {
				t.Errorf("events = %+v", events)
			}
		})
	}
}

func TestAppendEvents_RefusesDocumentWithBadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	doc := `[{"id": "a", "title": "", "date": "2025-01-15", "time": "09:00", "duration": 30, "category": "work"}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	err := appendEvents(path, []*event.Event{{Title: "New", Date: "2025-01-15", Time: "10:00", Duration: 30, Category: event.CategoryWork}})
	if !errors.Is(err, eventfile.ErrUnreadableRecords) {
		t.Fatalf("expected ErrUnreadableRecords, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != doc {
		t.Error("document should not be rewritten")
	}
}

func TestAppendEvents_UnknownExtension(t *testing.T) {
	err := appendEvents(filepath.Join(t.TempDir(), "events.csv"), nil)
	if !errors.Is(err, eventfile.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReportSkipped(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	reportSkipped(&buf, "events.json", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	reportSkipped(&buf, "events.json", []eventfile.RecordError{
		{Index: 2, ID: "x", Err: event.ErrEmptyTitle},
		{Index: 5, Err: event.ErrInvalidTime},
	})
	out := buf.String()
	for _, want := range []string{"skipped 2 record(s)", `record 2 (id "x")`, "record 5:"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", home)

	got, err := resolvePath("~/events.json")
	if err != nil {
		t.Fatalf("resolvePath: %v", err)
	}
	if want := filepath.Join(home, "events.json"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}
}
