package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/summary"
)

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Verbose       bool // Show descriptions and attendees
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "    HH:MM-HH:MM  [W]  " plus "  XhYYm"
	available := termWidth() - 30
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// categoryTag returns the one-letter tag of a category, e.g. "[W]".
func categoryTag(c event.Category) string {
	if c == "" {
		return "[?]"
	}
	return "[" + strings.ToUpper(string(c[:1])) + "]"
}

// PrintEventRow prints a single event row with consistent formatting.
func PrintEventRow(w io.Writer, e *event.Event, opts PrintOpts, maxTitleWidth int) {
	end, err := e.End()
	if err != nil {
		end = "??:??"
	}

	title := ansi.Truncate(e.Title, maxTitleWidth, "…")
	line := fmt.Sprintf("    %s-%s  %s  %s  %s",
		e.Time, end,
		formatCategory(e.Category, categoryTag(e.Category)),
		pad(title, maxTitleWidth),
		formatMuted(FormatDuration(e.Duration)))
	if e.Location != "" {
		line += formatMuted("  @ " + e.Location)
	}
	fmt.Fprintln(w, strings.TrimRight(line, " "))

	if !opts.Verbose {
		return
	}
	if e.Description != "" {
		fmt.Fprintf(w, "                 %s\n", formatMuted(e.Description))
	}
	if len(e.Attendees) > 0 {
		fmt.Fprintf(w, "                 %s\n", formatMuted("with "+strings.Join(e.Attendees, ", ")))
	}
}

// PrintDay prints a date header followed by its events in start order.
func PrintDay(w io.Writer, cell calendar.Cell, opts PrintOpts) {
	header := formatHeader(cell.Date.Format("Mon Jan 2"))
	if cell.Today {
		header += formatStats("  today")
	}
	if cell.Conflict {
		header += formatConflict("  ⚠ conflict")
	}
	fmt.Fprintln(w, header)

	if len(cell.Events) == 0 {
		fmt.Fprintln(w, formatMuted("    No events"))
		return
	}
	maxTitle := opts.CalcMaxTitleWidth(40)
	for _, e := range cell.Events {
		PrintEventRow(w, e, opts, maxTitle)
	}
}

// PrintGrid prints the grid of a month or week view as a seven-column
// table. Cells show the first events and a "+N more" line.
func PrintGrid(w io.Writer, g *calendar.Grid, width int) {
	colWidth := max((width-8)/7, 6)
	sep := "│"

	var head []string
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		head = append(head, pad(d, colWidth))
	}
	fmt.Fprintln(w, sep+strings.Join(head, sep)+sep)

	limit := g.CellLimit()
	for _, row := range g.Rows() {
		fmt.Fprintln(w, "├"+strings.TrimSuffix(strings.Repeat(strings.Repeat("─", colWidth)+"┼", len(row)), "┼")+"┤")

		lines := make([][]string, limit+2)
		for _, cell := range row {
			shown, hidden := cell.Visible(limit)

			num := fmt.Sprintf("%2d", cell.Date.Day())
			if cell.Conflict {
				num += " ⚠"
			}
			lines[0] = append(lines[0], styleCell(cell, pad(num, colWidth)))

			for i := 0; i < limit; i++ {
				text := ""
				if i < len(shown) {
					e := shown[i]
					text = formatCategory(e.Category, pad(ansi.Truncate(e.Time+" "+e.Title, colWidth, "…"), colWidth))
				} else {
					text = pad("", colWidth)
				}
				lines[i+1] = append(lines[i+1], text)
			}

			more := ""
			if hidden > 0 {
				more = fmt.Sprintf("+%d more", hidden)
			}
			lines[limit+1] = append(lines[limit+1], formatMuted(pad(more, colWidth)))
		}
		for _, l := range lines {
			fmt.Fprintln(w, sep+strings.Join(l, sep)+sep)
		}
	}
}

func styleCell(cell calendar.Cell, s string) string {
	switch {
	case cell.Today:
		return formatToday(s)
	case cell.Conflict:
		return formatConflict(s)
	case !cell.InMonth:
		return formatMuted(s)
	default:
		return formatHeader(s)
	}
}

// PrintMiniMonth prints a compact month overview. Days with events carry a
// dot and days with a conflict an exclamation mark.
func PrintMiniMonth(w io.Writer, g *calendar.Grid) {
	title := g.State.Anchor.Format("January 2006")
	fmt.Fprintln(w, formatHeader(pad(strings.Repeat(" ", max(0, (20-len(title))/2))+title, 20)))
	fmt.Fprintln(w, "Su Mo Tu We Th Fr Sa")

	for _, row := range g.Rows() {
		var sb strings.Builder
		for _, cell := range row {
			if !cell.InMonth {
				sb.WriteString("   ")
				continue
			}
			marker := " "
			switch {
			case cell.Conflict:
				marker = formatConflict("!")
			case len(cell.Events) > 0:
				marker = formatCategory(cell.Events[0].Category, "•")
			}
			day := fmt.Sprintf("%2d", cell.Date.Day())
			if cell.Today {
				day = formatToday(day)
			}
			sb.WriteString(day + marker)
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}

// PrintHourRows prints the day view: one line per hour with the events
// starting in it.
func PrintHourRows(w io.Writer, g *calendar.Grid, opts PrintOpts) {
	maxTitle := opts.CalcMaxTitleWidth(40)
	for _, row := range g.HourRows() {
		if len(row.Events) == 0 {
			fmt.Fprintln(w, formatMuted(fmt.Sprintf("%8s", row.Label)))
			continue
		}
		fmt.Fprintln(w, formatHeader(fmt.Sprintf("%8s", row.Label)))
		for _, e := range row.Events {
			PrintEventRow(w, e, opts, maxTitle)
		}
	}
}

// PrintLegend prints the category legend with the enabled state of each.
func PrintLegend(w io.Writer, filter calendar.CategoryFilter) {
	var parts []string
	for i, c := range event.Categories {
		mark := "○"
		if filter.Enabled(c) {
			mark = "●"
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", i+1, formatCategory(c, mark), c.Label()))
	}
	fmt.Fprintln(w, strings.Join(parts, "   "))
}

// PrintStats prints weekly counts, the category histogram and the
// upcoming events.
func PrintStats(w io.Writer, s *summary.Statistics) {
	fmt.Fprintf(w, "  This week (%s):  %s\n",
		s.ThisWeekStart.Format("Jan 2"), formatStats(fmt.Sprintf("%d events", s.ThisWeek)))
	fmt.Fprintf(w, "  Next week (%s):  %s\n",
		s.NextWeekStart.Format("Jan 2"), formatStats(fmt.Sprintf("%d events", s.NextWeek)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("  By category"))
	hist := s.Histogram()
	peak := 0
	for _, c := range hist {
		peak = max(peak, c.Count)
	}
	for _, c := range hist {
		fmt.Fprintf(w, "    %-9s %s %d\n", c.Category.Label(), formatCategory(c.Category, Bar(c.Count, peak, 20)), c.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("  Upcoming"))
	if len(s.Upcoming) == 0 {
		fmt.Fprintln(w, formatMuted("    Nothing scheduled"))
		return
	}
	for _, e := range s.Upcoming {
		fmt.Fprintf(w, "    %s %s  %s  %s\n",
			e.Date, e.Time, formatCategory(e.Category, categoryTag(e.Category)), e.Title)
	}
}

// Bar draws a horizontal bar of count relative to peak.
func Bar(count, peak, width int) string {
	if peak == 0 {
		return strings.Repeat("░", width)
	}
	filled := (count * width) / peak
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// pad right-pads s with spaces to width display columns.
func pad(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case isLabelLine(trimmed):
		// "FOCUS: ..." style lines from the briefing prompt
		idx := strings.Index(trimmed, ":")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)

	case isNumberedItem(trimmed):
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isLabelLine reports whether s starts with an upper-case label and a colon.
func isLabelLine(s string) bool {
	idx := strings.Index(s, ":")
	if idx < 2 || idx > 12 {
		return false
	}
	for _, r := range s[:idx] {
		if (r < 'A' || r > 'Z') && r != ' ' {
			return false
		}
	}
	return true
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	if s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.' {
		return true
	}
	return false
}

// wrapAndPrint wraps text to width and prints it, the first line after
// prefix and the rest aligned under it.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return
	}
	continuation := strings.Repeat(" ", ansi.StringWidth(prefix))
	for i, line := range strings.Split(wordwrap.String(text, max(width, 1)), "\n") {
		p := continuation
		if i == 0 {
			p = prefix
		}
		fmt.Fprintln(w, formatInsight(p+line))
	}
}

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
