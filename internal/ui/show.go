package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

func (a *App) showCmd() *cobra.Command {
	var (
		date       string
		mode       string
		mini       bool
		verbose    bool
		noColor    bool
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the month, week or day view",
		Long: `Print a calendar view without starting the TUI.

The view defaults to the configured mode anchored on today. Days whose
events overlap are flagged with ⚠.`,
		Example: `  rocinante show
  rocinante show --mode=week --date=2025-01-15
  rocinante show --mini
  rocinante show --mode=day --category=meeting --category=deadline`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			state, err := a.viewState(date, mode)
			if err != nil {
				return err
			}
			if mini {
				state = calendar.WithMode(state, calendar.ModeMonth)
			}
			filter, err := a.categoryFilter(categories)
			if err != nil {
				return err
			}

			events, err := a.repo.ListEvents(context.Background())
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}
			g := calendar.BuildGrid(state, events, filter, a.now())

			w := cmd.OutOrStdout()
			if mini {
				PrintMiniMonth(w, g)
				return nil
			}

			fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(state.Title()))
			opts := PrintOpts{Verbose: verbose}
			switch state.Mode {
			case calendar.ModeDay:
				cell := g.Cells[0]
				if cell.Conflict {
					fmt.Fprintln(w, formatConflict("⚠ overlapping events"))
				}
				PrintHourRows(w, g, opts)
			case calendar.ModeWeek:
				for _, cell := range g.Cells {
					PrintDay(w, cell, opts)
				}
			default:
				PrintGrid(w, g, termWidth())
			}

			fmt.Fprintln(w)
			PrintLegend(w, filter)
			if n := g.ConflictCount(); n > 0 {
				fmt.Fprintln(w, formatConflict(fmt.Sprintf("%d day(s) with overlapping events", n)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Anchor date (YYYY-MM-DD, today, tomorrow, monday...; default today)")
	cmd.Flags().StringVar(&mode, "mode", "", "View mode: month, week or day (default from config)")
	cmd.Flags().BoolVar(&mini, "mini", false, "Print a compact month overview")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Show only these categories (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions and attendees")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// viewState builds the initial view state from flag values, falling back
// to today and the configured mode.
func (a *App) viewState(date, mode string) (calendar.ViewState, error) {
	now := a.now()
	viewMode := a.config.ViewMode()
	if mode != "" {
		m, err := calendar.ParseViewMode(mode)
		if err != nil {
			return calendar.ViewState{}, err
		}
		viewMode = m
	}

	state := calendar.NewViewState(now, viewMode)
	if date != "" {
		anchor, err := dateutil.ParseRelativeDate(date, now)
		if err != nil {
			return calendar.ViewState{}, err
		}
		state = calendar.JumpTo(state, anchor)
	}
	return state, nil
}

// categoryFilter parses --category values. No values means the configured
// filter.
func (a *App) categoryFilter(names []string) (calendar.CategoryFilter, error) {
	if len(names) == 0 {
		return a.config.CategoryFilter(), nil
	}
	cats := make([]event.Category, 0, len(names))
	for _, name := range names {
		c, err := event.ParseCategory(name)
		if err != nil {
			return calendar.CategoryFilter{}, fmt.Errorf("%w: %q", err, name)
		}
		cats = append(cats, c)
	}
	return calendar.NewCategoryFilter(cats...), nil
}
