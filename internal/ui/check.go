package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
)

var errCheckFailed = errors.New("check failed")

func (a *App) checkCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		strict    bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report overlapping events and unreadable records",
		Long: `Check the events file and the calendar for problems.

Reports records of the events file that could not be loaded and every day
in the range where two consecutive events overlap. The range defaults to
the current month.`,
		Example: `  rocinante check
  rocinante check --start=2025-01-01 --end=2025-03-31 --strict`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var dateRange *dateutil.DateRange
			if startDate == "" && endDate == "" {
				first, last := dateutil.MonthRange(a.now())
				dateRange = &dateutil.DateRange{Start: first, End: last}
			} else {
				r, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				dateRange = r
			}

			events, err := a.repo.ListEventsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			w := cmd.OutOrStdout()
			days := dateRange.Days()
			groups := calendar.GroupByDate(events, days)
			conflicts := 0
			for _, d := range days {
				c, ok := calendar.FirstConflict(groups[dateutil.FormatKey(d)])
				if !ok {
					continue
				}
				conflicts++
				fmt.Fprintf(w, "%s  %s %s-%s overlaps %s %s\n",
					formatConflict(d.Format("Mon Jan 2")),
					c.First.Title, c.First.Time, c.End,
					c.Second.Title, c.Second.Time)
			}

			fmt.Fprintf(w, "Checked %d events from %s to %s: %d day(s) with overlaps, %d unreadable record(s)\n",
				len(events), dateutil.FormatKey(dateRange.Start), dateutil.FormatKey(dateRange.End),
				conflicts, len(a.skipped))

			if strict && (conflicts > 0 || len(a.skipped) > 0) {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to the first of this month)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when anything is reported")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
