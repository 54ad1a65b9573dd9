package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/event"
)

func plainView(t *testing.T, m Model) string {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return ansi.Strip(m.View())
}

func TestView_Month(t *testing.T) {
	repo := newRepo(t, ev("Standup", "2025-01-15", "09:00", 15, event.CategoryMeeting))
	m := newTestModel(t, repo, nil)
	out := plainView(t, m)

	for _, want := range []string{"January 2025", "Month", "Standup", "1 ● Work", "5 ● Reminder", "q: quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "[modified]") {
		t.Error("clean model rendered as modified")
	}
}

func TestView_FitsTerminal(t *testing.T) {
	m := newTestModel(t, newRepo(t), nil)
	lines := strings.Split(plainView(t, m), "\n")
	if len(lines) != 40 {
		t.Errorf("lines = %d, want 40", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > 120 {
			t.Errorf("line %d is %d wide", i, w)
		}
	}
}

func TestView_Day(t *testing.T) {
	repo := newRepo(t, ev("Dentist", "2025-01-15", "09:30", 45, event.CategoryPersonal))
	m := newTestModel(t, repo, nil, func(cfg *config.Config) {
		cfg.Calendar.DefaultView = "day"
	})
	out := plainView(t, m)

	for _, want := range []string{"Wednesday, January 15th, 2025", "9:00 AM", "Dentist"} {
		if !strings.Contains(out, want) {
			t.Errorf("day view missing %q", want)
		}
	}
}

func TestView_HiddenCategoryAndDirty(t *testing.T) {
	repo := newRepo(t, ev("Standup", "2025-01-15", "09:00", 15, event.CategoryMeeting))
	m := newTestModel(t, repo, nil)
	m, _ = press(t, m, "3")
	m.dirty = true
	out := plainView(t, m)

	if strings.Contains(out, "Standup") {
		t.Error("hidden category still rendered")
	}
	if !strings.Contains(out, "[modified]") {
		t.Error("dirty marker missing")
	}
}

func TestView_ConflictCount(t *testing.T) {
	repo := newRepo(t,
		ev("Standup", "2025-01-15", "09:00", 60, event.CategoryMeeting),
		ev("Review", "2025-01-15", "09:30", 30, event.CategoryWork),
	)
	m := newTestModel(t, repo, nil)
	if out := plainView(t, m); !strings.Contains(out, "⚠ 1") {
		t.Error("conflict count missing from legend")
	}
}

func TestView_Modals(t *testing.T) {
	repo := newRepo(t, ev("Standup", "2025-01-15", "09:00", 15, event.CategoryMeeting))
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{name: "new event", keys: []string{"l", "a"}, want: []string{"New Event", "Title", "Duration (min)"}},
		{name: "detail", keys: []string{"enter"}, want: []string{"Event", "Standup"}},
		{name: "delete", keys: []string{"x"}, want: []string{"Delete Event", "Standup"}},
		{name: "help", keys: []string{"?"}, want: []string{"Keys"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, repo, nil)
			m, _ = press(t, m, tt.keys...)
			out := plainView(t, m)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("modal missing %q", want)
				}
			}
		})
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newTestModel(t, newRepo(t), nil)
	m = apply(t, m, tea.WindowSizeMsg{Width: 3, Height: 2})
	if out := plainView(t, m); !strings.Contains(out, "Terminal too small") {
		t.Errorf("out = %q", out)
	}
}
