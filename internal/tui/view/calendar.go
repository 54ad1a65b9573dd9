package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
)

// ChipStyler returns the style of an event chip. alt is set for a chip
// following one of the same category; muted for days outside the month.
type ChipStyler func(c event.Category, alt, muted bool) lipgloss.Style

// CellStyles groups the styles used inside one grid cell.
type CellStyles struct {
	DayNumber      lipgloss.Style
	DayNumberToday lipgloss.Style
	DayNumberMuted lipgloss.Style
	Conflict       lipgloss.Style
	More           lipgloss.Style
	Selected       lipgloss.Style
	Chip           ChipStyler
}

// CellModel is a grid cell ready to render.
type CellModel struct {
	Cell     calendar.Cell
	Limit    int    // events shown before "+N more"
	Width    int    // content width
	Selected string // id of the selected event, if it is in this cell
}

// RenderCell renders the day number line, up to Limit event chips and a
// "+N more" line. The result always has Limit+2 lines so rows line up.
func RenderCell(model CellModel, styles CellStyles) string {
	cell := model.Cell
	width := max(model.Width, 1)
	lines := make([]string, 0, model.Limit+2)

	numStyle := styles.DayNumber
	switch {
	case cell.Today:
		numStyle = styles.DayNumberToday
	case !cell.InMonth:
		numStyle = styles.DayNumberMuted
	}
	head := numStyle.Render(strconv.Itoa(cell.Date.Day()))
	if cell.Conflict {
		head += styles.Conflict.Render(" ⚠")
	}
	lines = append(lines, head)

	shown, hidden := cell.Visible(model.Limit)
	var prev event.Category
	for i, e := range shown {
		text := ansi.Truncate(e.Time+" "+e.Title, width, "…")
		text += strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))

		style := styles.Chip(e.Category, i > 0 && e.Category == prev, !cell.InMonth)
		if model.Selected != "" && e.ID == model.Selected {
			style = styles.Selected
		}
		lines = append(lines, style.Render(text))
		prev = e.Category
	}
	if hidden > 0 {
		lines = append(lines, styles.More.Render(fmt.Sprintf("+%d more", hidden)))
	}

	for len(lines) < model.Limit+2 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// AgendaStyles groups the styles of the day agenda.
type AgendaStyles struct {
	Hour     lipgloss.Style
	Empty    lipgloss.Style
	Meta     lipgloss.Style
	Conflict lipgloss.Style
	Selected lipgloss.Style
	Chip     ChipStyler
}

// AgendaModel is the day view: one row per hour.
type AgendaModel struct {
	Rows     []calendar.HourRow
	First    int // first hour shown
	Height   int // lines available
	Width    int
	Selected string
	Conflict bool
}

// RenderAgenda renders the hour rows of the day view starting at First.
// Hours with several events take one line per event.
func RenderAgenda(model AgendaModel, styles AgendaStyles) string {
	lines := make([]string, 0, model.Height)
	if model.Conflict {
		lines = append(lines, styles.Conflict.Render("⚠ overlapping events"))
	}

	const labelWidth = 9
	chipWidth := max(model.Width-labelWidth-3, 10)
	for _, row := range model.Rows[min(max(model.First, 0), len(model.Rows)):] {
		if model.Height > 0 && len(lines) >= model.Height {
			break
		}
		label := styles.Hour.Render(fmt.Sprintf("%*s", labelWidth, row.Label))
		if len(row.Events) == 0 {
			lines = append(lines, label+styles.Empty.Render(" │"))
			continue
		}
		for i, e := range row.Events {
			if i > 0 {
				label = strings.Repeat(" ", labelWidth)
			}
			lines = append(lines, label+styles.Empty.Render(" │ ")+agendaChip(e, chipWidth, model.Selected, styles))
		}
	}
	return strings.Join(lines, "\n")
}

func agendaChip(e *event.Event, width int, selected string, styles AgendaStyles) string {
	end, err := e.End()
	if err != nil {
		end = "?"
	}
	text := fmt.Sprintf("%s-%s %s", e.Time, end, e.Title)
	if e.Location != "" {
		text += " @ " + e.Location
	}
	text = ansi.Truncate(text, width, "…")
	text += strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))

	style := styles.Chip(e.Category, false, false)
	if selected != "" && e.ID == selected {
		style = styles.Selected
	}
	return style.Render(text)
}
