package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		duration    int
		category    string
		description string
		location    string
		color       string
		attendees   []string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an event to the events file",
		Long: `Add a new event and append it to the configured events file.

Example:
  rocinante add "Dentist" --date=2025-01-10 --time=15:30 --duration=45 --category=personal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			e, err := event.New(strings.Join(args, " "), category, date, start, duration)
			if err != nil {
				return err
			}
			e.Description = description
			e.Location = location
			e.Color = color
			e.Attendees = attendees

			ctx := context.Background()
			if err := a.repo.CreateEvent(ctx, e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}
			if err := appendEvents(a.config.Storage.EventsFile, []*event.Event{e}); err != nil {
				return fmt.Errorf("saving event: %w", err)
			}

			w := cmd.OutOrStdout()
			end, _ := e.End()
			fmt.Fprintf(w, "Created event %s: %s [%s] %s %s-%s\n",
				e.ID, e.Title, e.Category, e.Date, e.Time, end)
			return a.warnConflicts(ctx, w, e.Date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "time", "09:00", "Start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	cmd.Flags().StringVar(&category, "category", string(event.CategoryWork), "Category: work, personal, meeting, deadline or reminder")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex), overrides the category color")
	cmd.Flags().StringSliceVar(&attendees, "attendee", nil, "Attendee email (repeatable)")

	return cmd
}

// warnConflicts prints a warning when the events of date overlap.
func (a *App) warnConflicts(ctx context.Context, w io.Writer, date string) error {
	dayEvents, err := a.eventsOn(ctx, date)
	if err != nil {
		return err
	}
	if c, ok := calendar.FirstConflict(dayEvents); ok {
		fmt.Fprintln(w, formatConflict(fmt.Sprintf("⚠ %s (%s-%s) overlaps %s (%s)",
			c.First.Title, c.First.Time, c.End, c.Second.Title, c.Second.Time)))
	}
	return nil
}

func (a *App) eventsOn(ctx context.Context, date string) ([]*event.Event, error) {
	all, err := a.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return calendar.EventsOnKey(all, date), nil
}
