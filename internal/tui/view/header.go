package view

import (
	"strconv"

	"github.com/javiermolinar/rocinante/internal/calendar"
)

// WeekdayNames are the column labels, Sunday first.
var WeekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// HeaderLabels builds the column labels of a month or week grid and marks
// the column holding today. Week columns carry the day number.
func HeaderLabels(g *calendar.Grid) ([]string, map[int]bool) {
	labels := make([]string, 0, 7)
	todayCols := make(map[int]bool)

	if g.State.Mode == calendar.ModeMonth {
		labels = append(labels, WeekdayNames[:]...)
		return labels, todayCols
	}

	for i, cell := range g.Cells {
		if i >= 7 {
			break
		}
		label := WeekdayNames[cell.Date.Weekday()] + " " + strconv.Itoa(cell.Date.Day())
		if cell.Today {
			label = "*" + label + "*"
			todayCols[i] = true
		}
		labels = append(labels, label)
	}
	return labels, todayCols
}
