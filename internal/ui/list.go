package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate  string
		endDate    string
		categories []string
		verbose    bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events scheduled within a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  rocinante list
  rocinante list --start=2025-01-15
  rocinante list --start=2025-01-15 --end=2025-01-20 --category=meeting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			filter, err := a.categoryFilter(categories)
			if err != nil {
				return err
			}

			events, err := a.repo.ListEventsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}
			events = calendar.FilterByCategory(events, filter)

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No events found in the specified date range.")
				return nil
			}

			days := dateRange.Days()
			groups := calendar.GroupByDate(events, days)
			todayKey := dateutil.FormatKey(a.now())
			printed := false
			for _, d := range days {
				key := dateutil.FormatKey(d)
				dayEvents := groups[key]
				if len(dayEvents) == 0 {
					continue
				}
				if printed {
					fmt.Fprintln(w)
				}
				PrintDay(w, calendar.Cell{
					Date:     d,
					Key:      key,
					Events:   calendar.SortByTime(dayEvents),
					Conflict: calendar.HasConflict(dayEvents),
					InMonth:  true,
					Today:    key == todayKey,
				}, PrintOpts{Verbose: verbose})
				printed = true
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Show only these categories (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions and attendees")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
