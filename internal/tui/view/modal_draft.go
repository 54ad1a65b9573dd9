package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/llm"
)

// DraftDay holds the drafted event lines of one date.
type DraftDay struct {
	DateLabel string
	Lines     []string
}

// DraftResultModel contains the fields needed to render the draft result body.
type DraftResultModel struct {
	Request  string
	Issues   []string
	Warnings []string
	Days     []DraftDay
	Summary  string
}

// NewDraftResultModel groups the drafted events by date in the order the
// dates first appear.
func NewDraftResultModel(request string, resp *llm.DraftResponse) DraftResultModel {
	model := DraftResultModel{Request: request}
	if resp == nil {
		return model
	}
	model.Issues = resp.Issues()
	model.Warnings = resp.Warnings

	byDate := make(map[string]int)
	for _, de := range resp.Events {
		idx, ok := byDate[de.Date]
		if !ok {
			label := de.Date + ":"
			if d, err := time.Parse("2006-01-02", de.Date); err == nil {
				label = d.Format("Mon Jan 2") + ":"
			}
			idx = len(model.Days)
			byDate[de.Date] = idx
			model.Days = append(model.Days, DraftDay{DateLabel: label})
		}
		line := fmt.Sprintf("  [%s] %s %s %s", draftTag(de.Category), de.Time, FormatDuration(de.Duration), de.Title)
		model.Days[idx].Lines = append(model.Days[idx].Lines, line)
	}

	model.Summary = fmt.Sprintf("Total: %d events", len(resp.Events))
	if len(model.Days) > 1 {
		model.Summary += fmt.Sprintf(" across %d days", len(model.Days))
	}
	return model
}

func draftTag(category string) string {
	if category == "" {
		return "?"
	}
	return strings.ToUpper(category[:1])
}

// DraftResultStyles groups styles for the draft result body.
type DraftResultStyles struct {
	MetaStyle         stringRenderer
	SectionTitleStyle stringRenderer
	BodyStyle         stringRenderer
	ErrorStyle        stringRenderer
}

type stringRenderer interface {
	Render(...string) string
}

// RenderDraftResultBody renders the modal body for a draft result.
func RenderDraftResultBody(model DraftResultModel, styles DraftResultStyles) string {
	var body strings.Builder

	if model.Request != "" {
		body.WriteString(styles.MetaStyle.Render(fmt.Sprintf("%q", model.Request)) + "\n\n")
	}

	section := func(title string, items []string, style stringRenderer) {
		if len(items) == 0 {
			return
		}
		body.WriteString(styles.SectionTitleStyle.Render(title) + "\n")
		for _, item := range items {
			body.WriteString(style.Render("- "+item) + "\n")
		}
		body.WriteString("\n")
	}
	section("ISSUES", model.Issues, styles.ErrorStyle)
	section("WARNINGS", model.Warnings, styles.BodyStyle)

	body.WriteString(styles.SectionTitleStyle.Render("DRAFTED EVENTS") + "\n")
	if len(model.Days) == 0 {
		body.WriteString(styles.MetaStyle.Render("No events proposed.") + "\n\n")
	}
	for _, day := range model.Days {
		body.WriteString(styles.BodyStyle.Render(day.DateLabel) + "\n")
		for _, line := range day.Lines {
			body.WriteString(styles.BodyStyle.Render(line) + "\n")
		}
		body.WriteString("\n")
	}

	if model.Summary != "" {
		body.WriteString(styles.MetaStyle.Render(model.Summary) + "\n\n")
	}
	body.WriteString(styles.MetaStyle.Render("Press m to amend the request before applying.") + "\n")
	return body.String()
}
