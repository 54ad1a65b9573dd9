package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/event"
)

// EventDetailModel contains the fields needed to render the event detail body.
type EventDetailModel struct {
	Title         string
	CategoryLabel string
	TimeRange     string
	DateLabel     string
	Location      string
	Attendees     string
	Description   string
	Conflict      string
}

// NewEventDetailModel builds the detail model of e. conflict names the
// event it overlaps, if any.
func NewEventDetailModel(e *event.Event, conflict *event.Event) EventDetailModel {
	model := EventDetailModel{
		Title:         e.Title,
		CategoryLabel: e.Category.Label(),
		TimeRange:     TimeRange(e),
		DateLabel:     e.Date,
		Location:      e.Location,
		Attendees:     strings.Join(e.Attendees, ", "),
		Description:   e.Description,
	}
	if d, err := time.Parse("2006-01-02", e.Date); err == nil {
		model.DateLabel = d.Format("Monday, Jan 2, 2006")
	}
	if conflict != nil {
		model.Conflict = fmt.Sprintf("Overlaps %q at %s", conflict.Title, conflict.Time)
	}
	return model
}

// EventDetailStyles groups styles for the event detail body.
type EventDetailStyles struct {
	BodyStyle     lipgloss.Style
	LabelStyle    lipgloss.Style
	CategoryStyle lipgloss.Style
	WarningStyle  lipgloss.Style
}

// RenderEventDetailBody renders the modal body for event details.
func RenderEventDetailBody(model EventDetailModel, styles EventDetailStyles) string {
	var body strings.Builder

	body.WriteString(" " + styles.BodyStyle.Render(model.Title) + "\n\n")
	body.WriteString(" " + styles.CategoryStyle.Render(" "+model.CategoryLabel+" ") + "\n")
	body.WriteString(styles.BodyStyle.Render(" "+model.TimeRange) + "\n")
	body.WriteString(styles.BodyStyle.Render(" "+model.DateLabel) + "\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		body.WriteString("\n" + styles.LabelStyle.Render(" "+label+": ") + styles.BodyStyle.Render(value))
	}
	field("Location", model.Location)
	field("With", model.Attendees)
	field("Notes", model.Description)

	if model.Conflict != "" {
		body.WriteString("\n\n" + styles.WarningStyle.Render(" ⚠ "+model.Conflict))
	}
	return body.String()
}

// ConfirmDeleteModel contains the fields needed to render the confirm delete body.
type ConfirmDeleteModel struct {
	Title     string
	TimeRange string
	DateLabel string
}

// NewConfirmDeleteModel builds a delete confirmation model from an event.
func NewConfirmDeleteModel(e *event.Event) ConfirmDeleteModel {
	return ConfirmDeleteModel{
		Title:     e.Title,
		TimeRange: TimeRange(e),
		DateLabel: e.Date,
	}
}

// RenderConfirmDeleteBody renders the modal body for the delete confirmation.
func RenderConfirmDeleteBody(model ConfirmDeleteModel, bodyStyle lipgloss.Style) string {
	var body strings.Builder
	body.WriteString(bodyStyle.Render(fmt.Sprintf("%q", model.Title)) + "\n")
	body.WriteString(bodyStyle.Render(model.TimeRange) + "\n")
	body.WriteString(bodyStyle.Render(model.DateLabel) + "\n\n")
	body.WriteString(bodyStyle.Render("This removes the event from the calendar.\nAre you sure?"))
	return body.String()
}

// KeyHelp is one line of the key help modal.
type KeyHelp struct {
	Keys        string
	Description string
}

// RenderHelpBody renders key bindings as two aligned columns.
func RenderHelpBody(keys []KeyHelp, keyStyle, bodyStyle lipgloss.Style) string {
	width := 0
	for _, k := range keys {
		width = max(width, len(k.Keys))
	}
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, keyStyle.Render(fmt.Sprintf(" %-*s ", width, k.Keys))+bodyStyle.Render(" "+k.Description))
	}
	return strings.Join(lines, "\n")
}
