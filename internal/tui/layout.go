package tui

import "github.com/charmbracelet/lipgloss"

// Footer geometry, in terminal lines.
const (
	footerCompact         = 2 // status + help
	footerBaseLines       = 3 // legend + status + help
	promptBorderLines     = 2
	promptMinContentLines = 1
	footerMinHeight       = footerBaseLines + promptBorderLines + promptMinContentLines
	footerFullMinHeight   = 16 // inner height needed before the full footer shows
	titleLines            = 2  // title + blank line
	minGridHeight         = 4
)

// LayoutCache stores layout dimensions and styles derived from the window size.
type LayoutCache struct {
	InnerW int
	InnerH int

	TitleH  int
	FooterH int
	GridH   int

	LegendStyle        lipgloss.Style
	StatusStyle        lipgloss.Style
	HelpStyle          lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	PromptContentWidth int
}

func promptContentWidth(styles *Styles, innerW int) int {
	frameW, _ := styles.PromptStyle.GetFrameSize()
	width := max(innerW-frameW, 0)
	if width < 20 && innerW >= frameW+20 {
		width = 20
	}
	return width
}

func (m Model) buildLayoutCache(width, height int) LayoutCache {
	styles := m.styles
	appH, appV := styles.AppStyle.GetFrameSize()
	innerW := max(width-appH, 0)
	innerH := max(height-appV, 0)

	promptWidth := promptContentWidth(styles, innerW)
	footerH := footerCompact
	if innerH >= footerFullMinHeight {
		footerH = m.fullFooterHeight(innerH-titleLines, promptWidth)
	}
	gridH := max(innerH-titleLines-footerH, minGridHeight)

	line := lipgloss.NewStyle().Background(styles.colorBg)
	return LayoutCache{
		InnerW:             innerW,
		InnerH:             innerH,
		TitleH:             titleLines,
		FooterH:            footerH,
		GridH:              gridH,
		LegendStyle:        styles.LegendStyle.Inherit(line),
		StatusStyle:        styles.StatusStyle.Inherit(line),
		HelpStyle:          styles.HelpStyle.Inherit(line.Padding(0, 1)),
		PromptStyle:        styles.PromptStyle.Width(promptWidth),
		PromptFocusedStyle: styles.PromptFocusedStyle.Width(promptWidth),
		PromptContentWidth: promptWidth,
	}
}

// agendaHeight is the number of hour lines the day view can show.
func (m *Model) agendaHeight() int {
	return max(m.layoutCache.GridH-1, 1)
}
