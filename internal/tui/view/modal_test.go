package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/summary"
)

func plainModalStyles() ModalStyles {
	s := lipgloss.NewStyle()
	return ModalStyles{
		HeaderStyle: s, TitleStyle: s, FooterStyle: s, FrameStyle: s,
		ButtonStyle: s, ButtonActiveStyle: s, BodyStyle: s,
	}
}

func plainStyleSet() ModalStyleSet {
	s := lipgloss.NewStyle()
	return ModalStyleSet{
		BodyStyle: s, MetaStyle: s, SectionTitleStyle: s, FocusTitleStyle: s,
		TagStyle: s, LabelStyle: s, HintStyle: s, ErrorStyle: s, WarningStyle: s,
		OptionActive: s, OptionInactive: s,
	}
}

func TestRenderModalButtons_UsesBodySeparator(t *testing.T) {
	styles := ModalStyles{
		BodyStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		ButtonStyle:       lipgloss.NewStyle(),
		ButtonActiveStyle: lipgloss.NewStyle(),
	}

	view := RenderModalButtons(styles, "[Enter] Save", "[Esc] Cancel")
	if !strings.Contains(view, styles.BodyStyle.Render(" ")) {
		t.Fatalf("expected button separator to use body style")
	}
}

func TestRenderModalFrame(t *testing.T) {
	out := RenderModalFrame("Title", "Body", "Footer", plainModalStyles())
	if out != "Title\n\nBody\n\nFooter" {
		t.Errorf("frame = %q", out)
	}
	if got := RenderModalFrame("Title", "", "", plainModalStyles()); got != "Title" {
		t.Errorf("bare frame = %q", got)
	}
}

func TestDraftResultFooter(t *testing.T) {
	styles := plainModalStyles()
	if strings.Contains(DraftResultFooter(true, styles), "Apply") {
		t.Error("draft with issues must not offer Apply")
	}
	if !strings.Contains(DraftResultFooter(false, styles), "[Enter/a] Apply") {
		t.Error("valid draft should offer Apply")
	}
}

func TestRenderEventDetailBody(t *testing.T) {
	e := &event.Event{
		Title: "Dentist", Date: "2025-01-16", Time: "15:00", Duration: 45,
		Category: event.CategoryPersonal, Location: "Main St", Attendees: []string{"Ana", "Luis"},
	}
	other := &event.Event{Title: "Call", Time: "15:30"}

	body := RenderEventDetailBody(NewEventDetailModel(e, other), plainStyleSet().EventDetailStyles(lipgloss.NewStyle()))
	for _, want := range []string{
		"Dentist", "Personal", "15:00 - 15:45 (45m)", "Thursday, Jan 16, 2025",
		"Location: Main St", "With: Ana, Luis", `⚠ Overlaps "Call" at 15:30`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Notes:") {
		t.Error("empty description should be omitted")
	}
}

func TestRenderConfirmDeleteBody(t *testing.T) {
	e := &event.Event{Title: "Standup", Date: "2025-01-15", Time: "09:00", Duration: 15}
	body := RenderConfirmDeleteBody(NewConfirmDeleteModel(e), lipgloss.NewStyle())
	for _, want := range []string{`"Standup"`, "09:00 - 09:15 (15m)", "2025-01-15", "Are you sure?"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
}

func TestRenderEventFormBody(t *testing.T) {
	model := EventFormModel{
		Summary: "Wed Jan 15",
		Fields: []FormField{
			{Label: "Title", Value: "Lunch", Focused: true},
			{Label: "Time", Value: "12:00"},
		},
		Categories:     []string{"Work", "Personal"},
		ActiveCategory: 1,
		Error:          "time must be HH:MM",
	}
	body := RenderEventFormBody(model, plainStyleSet().EventFormStyles())
	for _, want := range []string{"Wed Jan 15", "TITLE\nLunch", "TIME\n12:00", "CATEGORY", "time must be HH:MM"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Use left/right") {
		t.Error("hint shown without category focus")
	}
}

func TestNewDraftResultModel(t *testing.T) {
	resp := &llm.DraftResponse{
		Events: []llm.DraftedEvent{
			{Title: "Lunch", Date: "2025-01-16", Time: "13:00", Duration: 60, Category: "personal"},
			{Title: "Gym", Date: "2025-01-17", Time: "07:00", Duration: 45, Category: "personal"},
			{Title: "Call", Date: "2025-01-16", Time: "16:00", Duration: 30, Category: "party"},
		},
		Warnings: []string{"Lunch overlaps Review"},
	}

	model := NewDraftResultModel("lunch tomorrow", resp)
	if len(model.Days) != 2 || model.Days[0].DateLabel != "Thu Jan 16:" {
		t.Fatalf("days = %+v", model.Days)
	}
	if len(model.Days[0].Lines) != 2 || model.Days[0].Lines[0] != "  [P] 13:00 1h Lunch" {
		t.Errorf("first day lines = %q", model.Days[0].Lines)
	}
	if len(model.Issues) != 1 {
		t.Errorf("issues = %v, want the invalid category", model.Issues)
	}
	if model.Summary != "Total: 3 events across 2 days" {
		t.Errorf("summary = %q", model.Summary)
	}

	body := RenderDraftResultBody(model, plainStyleSet().DraftResultStyles())
	for _, want := range []string{`"lunch tomorrow"`, "ISSUES", "WARNINGS", "- Lunch overlaps Review", "DRAFTED EVENTS"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
}

func TestBuildStatsLines(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{Title: "Standup", Date: "2025-01-15", Time: "09:00", Duration: 15, Category: event.CategoryMeeting},
		{Title: "Review", Date: "2025-01-16", Time: "11:00", Duration: 30, Category: event.CategoryWork},
		{Title: "Trip", Date: "2025-01-20", Time: "08:00", Duration: 60, Category: event.CategoryPersonal},
	}
	lines := BuildStatsLines(summary.Summarize(events, now))

	text := StatsCopyText(lines)
	for _, want := range []string{
		"Sun Jan 12 - Sat Jan 25, 2025",
		"This week: 2 events",
		"Next week: 1 events",
		"BY CATEGORY",
		"2025-01-16 11:00 Review [work]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if !strings.Contains(text, "2025-01-15 09:00 Standup [meeting]") {
		t.Error("earlier event of today should be upcoming")
	}

	var bars int
	for _, l := range lines {
		if l.Style == StatsLineBar {
			bars++
		}
	}
	if bars != len(event.Categories) {
		t.Errorf("histogram bars = %d, want %d", bars, len(event.Categories))
	}
}

func TestRenderFooter(t *testing.T) {
	model := FooterModel{
		InnerW:     40,
		FooterH:    4,
		FullFooter: true,
		LegendText: "1 ● Work",
		StatusText: "Saved",
		HelpText:   "q quit",
		PromptMax:  1,
		VAlign:     lipgloss.Top,

		LegendStyle:      lipgloss.NewStyle(),
		StatusStyle:      lipgloss.NewStyle(),
		HelpStyle:        lipgloss.NewStyle(),
		PromptStyle:      lipgloss.NewStyle(),
		PromptFocusStyle: lipgloss.NewStyle(),
	}
	out := RenderFooter(model)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("footer lines = %d, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1 ● Work") || !strings.HasPrefix(lines[2], "Saved") {
		t.Errorf("footer = %q", lines)
	}

	model.FullFooter = false
	model.FooterH = 2
	short := strings.Split(RenderFooter(model), "\n")
	if !strings.HasPrefix(short[0], "Saved") || !strings.HasPrefix(short[1], "q quit") {
		t.Errorf("short footer = %q", short)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{15: "15m", 60: "1h", 90: "1h 30m"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
