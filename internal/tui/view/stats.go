package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/summary"
)

// StatsLineStyle indicates how a statistics line should be styled.
type StatsLineStyle int

const (
	StatsLineBody StatsLineStyle = iota
	StatsLineMeta
	StatsLineSection
	StatsLineBar
)

// StatsLine is a display-ready line for the statistics modal. Category is
// set on histogram bars.
type StatsLine struct {
	Text     string
	Style    StatsLineStyle
	Category event.Category
}

// BuildStatsLines lays out weekly counts, the category histogram, the
// upcoming events and the insight, if any.
func BuildStatsLines(s *summary.Statistics) []StatsLine {
	lines := make([]StatsLine, 0, 20)
	end := s.NextWeekStart.AddDate(0, 0, 6)
	lines = append(lines,
		StatsLine{Text: fmt.Sprintf("%s - %s", s.ThisWeekStart.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006")), Style: StatsLineMeta},
		StatsLine{},
		StatsLine{Text: fmt.Sprintf("This week: %d events", s.ThisWeek)},
		StatsLine{Text: fmt.Sprintf("Next week: %d events", s.NextWeek)},
		StatsLine{},
		StatsLine{Text: "BY CATEGORY", Style: StatsLineSection},
	)

	hist := s.Histogram()
	peak := 0
	for _, c := range hist {
		peak = max(peak, c.Count)
	}
	for _, c := range hist {
		lines = append(lines, StatsLine{
			Text:     fmt.Sprintf("%-9s %s %d", c.Category.Label(), bar(c.Count, peak, 16), c.Count),
			Style:    StatsLineBar,
			Category: c.Category,
		})
	}

	lines = append(lines, StatsLine{}, StatsLine{Text: "UPCOMING", Style: StatsLineSection})
	lines = append(lines, UpcomingLines(s)...)

	if s.Insight != "" {
		lines = append(lines, StatsLine{}, StatsLine{Text: "INSIGHT", Style: StatsLineSection})
		for _, line := range strings.Split(strings.TrimSpace(s.Insight), "\n") {
			lines = append(lines, StatsLine{Text: line})
		}
	}
	return lines
}

// UpcomingLines lists the upcoming events, one per line.
func UpcomingLines(s *summary.Statistics) []StatsLine {
	if len(s.Upcoming) == 0 {
		return []StatsLine{{Text: "Nothing scheduled", Style: StatsLineMeta}}
	}
	lines := make([]StatsLine, 0, len(s.Upcoming))
	for _, e := range s.Upcoming {
		lines = append(lines, StatsLine{Text: fmt.Sprintf("%s %s %s [%s]", e.Date, e.Time, e.Title, e.Category)})
	}
	return lines
}

// StatsCopyText renders lines to plain text for the clipboard.
func StatsCopyText(lines []StatsLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

// StatsStyles groups styles for statistics rendering.
type StatsStyles struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	Category          func(event.Category) lipgloss.Style
}

// RenderStatsBody renders statistics lines into a wrapped modal body.
func RenderStatsBody(lines []StatsLine, styles StatsStyles, contentWidth int) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		var style lipgloss.Style
		switch line.Style {
		case StatsLineSection:
			style = styles.SectionTitleStyle
		case StatsLineMeta:
			style = styles.MetaStyle
		case StatsLineBar:
			style = styles.BodyStyle
			if styles.Category != nil {
				style = styles.Category(line.Category)
			}
		default:
			style = styles.BodyStyle
		}
		rendered = append(rendered, wrapModalText(style, line.Text, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

func bar(count, peak, width int) string {
	if peak == 0 {
		return strings.Repeat("░", width)
	}
	filled := count * width / peak
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func wrapModalText(style stringRenderer, text string, width int) []string {
	if width <= 0 {
		return []string{style.Render("")}
	}
	lines := WrapTextToWidths(text, width, width)
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, style.Render(line))
	}
	return wrapped
}
