package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format    string
		output    string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as JSON, TOML, YAML or iCalendar",
		Long: `Write the loaded events to stdout or a file.

The format is taken from --format, or from the extension of --output.
Without a range every event is exported.`,
		Example: `  rocinante export --format=ics > calendar.ics
  rocinante export --output=events.yaml
  rocinante export --format=json --start=2025-01-01 --end=2025-01-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}

			ctx := context.Background()
			var events []*event.Event
			if startDate == "" && endDate == "" {
				events, err = a.repo.ListEvents(ctx)
			} else {
				var r *dateutil.DateRange
				r, err = dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				events, err = a.repo.ListEventsByDateRange(ctx, r.Start, r.End)
			}
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}

			if output == "" {
				return eventfile.Encode(cmd.OutOrStdout(), f, events)
			}

			var buf bytes.Buffer
			if err := eventfile.Encode(&buf, f, events); err != nil {
				return err
			}
			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(events), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: json, toml, yaml or ics")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	return cmd
}

// exportFormat resolves the export format. An explicit format wins over
// the output extension; JSON is the default.
func exportFormat(format, output string) (eventfile.Format, error) {
	switch {
	case format != "":
		return eventfile.ParseFormat(format)
	case output != "":
		return eventfile.FormatFromPath(output)
	default:
		return eventfile.FormatJSON, nil
	}
}
