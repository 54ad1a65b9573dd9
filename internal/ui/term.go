package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rocinante/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	colorWork     = color.New(color.FgBlue, color.Bold)
	colorPersonal = color.New(color.FgGreen)
	colorMeeting  = color.New(color.FgMagenta)
	colorDeadline = color.New(color.FgRed, color.Bold)
	colorReminder = color.New(color.FgYellow)

	// Conflicts: red so an overlap is hard to miss
	colorConflict = color.New(color.FgRed)

	// Today in grids: reversed
	colorToday = color.New(color.ReverseVideo)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatCategory colors s with the category color.
func formatCategory(c event.Category, s string) string {
	switch c {
	case event.CategoryWork:
		return colorWork.Sprint(s)
	case event.CategoryPersonal:
		return colorPersonal.Sprint(s)
	case event.CategoryMeeting:
		return colorMeeting.Sprint(s)
	case event.CategoryDeadline:
		return colorDeadline.Sprint(s)
	case event.CategoryReminder:
		return colorReminder.Sprint(s)
	default:
		return s
	}
}

func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatInsight formats text for insight/coaching output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
