package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// Narrowest content width of a grid cell.
const minCellWidth = 6

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
	}
	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	layout := m.layoutCache
	if layout.InnerW <= 0 || layout.InnerH <= 0 {
		return "Terminal too small"
	}

	g := m.grid()
	titleBox := view.PlaceBox(layout.InnerW, layout.TitleH, lipgloss.Top, m.renderTitle(), m.styles.colorBg)

	var gridBox string
	if m.state.Mode == calendar.ModeDay {
		gridBox = m.renderAgenda(g, layout)
	} else {
		gridBox = view.RenderTable(m.tableViewState(g, layout))
	}
	footerBox := view.RenderFooter(m.footerViewState(g, layout))

	content := lipgloss.JoinVertical(lipgloss.Left, titleBox, gridBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render(m.state.Title()) +
		m.styles.TitleModeStyle.Render(" · "+m.state.Mode.Label())
	if m.dirty {
		title += m.styles.DirtyStyle.Render("  [modified]")
	}
	if !m.loaded {
		title += m.styles.TitleModeStyle.Render("  loading...")
	}
	return title
}

// cellLimit returns how many chips fit in a cell for the given number of
// week rows, capped at the grid's own limit. At least one chip is shown.
func cellLimit(g *calendar.Grid, rows, gridH int) int {
	if rows <= 0 {
		return g.CellLimit()
	}
	// top border, header, header separator, bottom border, row separators
	chrome := 4 + rows - 1
	perRow := (gridH - chrome) / rows
	return min(max(perRow-2, 1), g.CellLimit())
}

func cellWidth(innerW int) int {
	// outer borders plus six column separators, and the table inset
	return max((innerW-2-8)/7, minCellWidth)
}

func (m Model) tableViewState(g *calendar.Grid, layout LayoutCache) view.TableViewState {
	if layout.GridH <= 0 {
		return view.TableViewState{Render: false}
	}

	rows := g.Rows()
	limit := cellLimit(g, len(rows), layout.GridH)
	width := cellWidth(layout.InnerW)
	selectedKey := dateutil.FormatKey(m.selected)
	selectedID := ""
	if e := m.selectedEvent(); e != nil {
		selectedID = e.ID
	}

	headers, todayCols := view.HeaderLabels(g)
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headers {
		headerStyles[i] = m.styles.DayHeaderStyle
		if todayCols[i] {
			headerStyles[i] = m.styles.DayHeaderToday
		}
	}

	content := view.TableContent{
		Rows:       make([][]string, 0, len(rows)),
		CellStyles: make([][]lipgloss.Style, 0, len(rows)),
	}
	cellStyles := m.styles.cellStyles()
	for _, row := range rows {
		texts := make([]string, 0, len(row))
		styles := make([]lipgloss.Style, 0, len(row))
		for _, cell := range row {
			model := view.CellModel{Cell: cell, Limit: limit, Width: width}
			style := m.styles.CellStyle
			if !cell.InMonth {
				style = m.styles.CellMutedStyle
			}
			if cell.Key == selectedKey {
				model.Selected = selectedID
				style = m.styles.CellCursorStyle
			}
			texts = append(texts, view.RenderCell(model, cellStyles))
			styles = append(styles, style.Width(width))
		}
		content.Rows = append(content.Rows, texts)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return view.TableViewState{
		InnerW:       layout.InnerW,
		GridH:        layout.GridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		RowBorders:   m.state.Mode == calendar.ModeMonth,
		VAlign:       lipgloss.Top,
		Bg:           m.styles.colorBg,
		Render:       true,
	}
}

func (m Model) renderAgenda(g *calendar.Grid, layout LayoutCache) string {
	cell, _ := g.Cell(m.state.Key())
	selectedID := ""
	if e := m.selectedEvent(); e != nil {
		selectedID = e.ID
	}
	agenda := view.RenderAgenda(view.AgendaModel{
		Rows:     g.HourRows(),
		First:    m.dayScroll,
		Height:   layout.GridH,
		Width:    layout.InnerW,
		Selected: selectedID,
		Conflict: cell.Conflict,
	}, m.styles.agendaStyles())
	return view.PlaceBox(layout.InnerW, layout.GridH, lipgloss.Top, agenda, m.styles.colorBg)
}

func (m Model) footerViewState(g *calendar.Grid, layout LayoutCache) view.FooterModel {
	contentWidth := layout.PromptContentWidth
	maxLines := m.promptMaxContentLines()
	lines := view.ClampPromptLines(m.promptLines(contentWidth), maxLines, contentWidth)

	return view.FooterModel{
		InnerW:           layout.InnerW,
		FooterH:          layout.FooterH,
		FullFooter:       layout.FooterH >= footerMinHeight,
		LegendText:       m.renderLegend(g),
		StatusText:       m.statusMsgOrDefault(),
		HelpText:         m.renderHelp(),
		PromptLines:      lines,
		PromptMax:        maxLines,
		PromptFocus:      m.mode == ModePrompt,
		ShowPrompt:       m.mode != ModeModal,
		LegendStyle:      layout.LegendStyle,
		StatusStyle:      layout.StatusStyle,
		HelpStyle:        layout.HelpStyle,
		PromptStyle:      layout.PromptStyle,
		PromptFocusStyle: layout.PromptFocusedStyle,
		VAlign:           lipgloss.Bottom,
		Bg:               m.styles.colorBg,
	}
}

// renderLegend renders the category toggles and the conflict count.
func (m Model) renderLegend(g *calendar.Grid) string {
	parts := make([]string, 0, len(event.Categories)+1)
	for i, c := range event.Categories {
		label := fmt.Sprintf("%d ● %s", i+1, c.Label())
		if m.filter.Enabled(c) {
			parts = append(parts, m.styles.CategoryText(c).Render(label))
		} else {
			parts = append(parts, m.styles.LegendOffStyle.Render(label))
		}
	}
	if n := g.ConflictCount(); n > 0 {
		parts = append(parts, m.styles.ConflictStyle.Background(m.styles.colorBg).Render(fmt.Sprintf("⚠ %d", n)))
	}
	return strings.Join(parts, m.styles.LegendStyle.Render("  "))
}

// statusMsgOrDefault returns the status message or a space to preserve layout.
func (m Model) statusMsgOrDefault() string {
	if m.statusMsg == "" {
		return " "
	}
	return m.statusMsg
}

// renderHelp renders the help line for the current mode.
func (m Model) renderHelp() string {
	switch m.mode {
	case ModePrompt:
		if m.amending {
			return "Enter: redraft | Esc: back to draft"
		}
		return "Enter: submit | Tab: complete | Esc: cancel"
	case ModeModal:
		switch m.modalType {
		case ModalEventForm:
			return "Tab: next field | ←/→: category | Enter: save | Esc: cancel"
		case ModalEventDetail:
			return "e: edit | x: delete | y: copy | Esc: close"
		case ModalConfirmDelete:
			return "y/Enter: delete | n/Esc: cancel"
		case ModalDraftResult:
			return "a/Enter: apply | m: amend | c/Esc: cancel"
		case ModalStats:
			return "y: copy | i: insight | Esc: close"
		default:
			return "Esc: close"
		}
	}
	return "hjkl: move | n/p: period | m/w/d: view | 1-5: filter | a: add | i: draft | ?: help | q: quit"
}
