package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one labelled input of the event form. Value is the
// rendered text input.
type FormField struct {
	Label   string
	Value   string
	Focused bool
}

// EventFormModel contains the fields needed to render the event form body.
type EventFormModel struct {
	Summary         string // e.g. "Wed Jan 15 · 09:00-10:00 · 1h"
	Fields          []FormField
	Categories      []string
	ActiveCategory  int
	CategoryFocused bool
	Error           string
}

// EventFormStyles groups styles for the event form body.
type EventFormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	FocusTitleStyle   lipgloss.Style
	OptionActive      lipgloss.Style
	OptionInactive    lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderEventFormBody renders the modal body for the event form.
func RenderEventFormBody(model EventFormModel, styles EventFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	if model.Summary != "" {
		body.WriteString(styles.TagStyle.Render(model.Summary) + "\n\n")
	}

	for _, f := range model.Fields {
		title := styles.SectionTitleStyle
		if f.Focused {
			title = styles.FocusTitleStyle
		}
		body.WriteString(title.Render(strings.ToUpper(f.Label)) + "\n")
		body.WriteString(f.Value + "\n\n")
	}

	title := styles.SectionTitleStyle
	if model.CategoryFocused {
		title = styles.FocusTitleStyle
	}
	body.WriteString(title.Render("CATEGORY") + "\n")
	parts := make([]string, 0, len(model.Categories))
	for i, label := range model.Categories {
		if i == model.ActiveCategory {
			parts = append(parts, styles.OptionActive.Render(label))
		} else {
			parts = append(parts, styles.OptionInactive.Render(label))
		}
	}
	body.WriteString(strings.Join(parts, sep))
	if model.CategoryFocused {
		body.WriteString(sep + styles.HintStyle.Render("Use left/right"))
	}
	body.WriteString("\n")

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	}
	return body.String()
}
