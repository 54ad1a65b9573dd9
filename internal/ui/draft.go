package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/llm"
)

func (a *App) draftCmd() *cobra.Command {
	var (
		modelFlag string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "draft [request]",
		Short: "Draft events from natural language input",
		Long: `Use AI to turn a short request into calendar events.

The LLM understands natural language dates like:
  - "today", "tomorrow", "next Monday"
  - "in 2 days", "next week"
  - "2025-01-15" (explicit YYYY-MM-DD)

Examples:
  rocinante draft "lunch with Ana tomorrow at 13:00"
  rocinante draft "1 hour review every afternoon this week" --dry-run

Interactive mode:
  After the AI proposes events, you can:
  - [a]ccept: Append the events to your events file
  - [m]odify: Provide feedback to adjust the proposal
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := a.newClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			return a.runDraft(cmd.Context(), draftSession{
				drafter: llm.NewDrafter(client),
				input:   strings.Join(args, " "),
				compact: a.config.LLM.Provider != llm.ProviderCopilot,
				dryRun:  dryRun,
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show drafted events without saving")

	return cmd
}

type draftSession struct {
	drafter *llm.Drafter
	input   string
	compact bool
	dryRun  bool
	in      io.Reader
	out     io.Writer
}

func (a *App) runDraft(ctx context.Context, s draftSession) error {
	w := s.out
	now := a.now()

	nearby, err := a.repo.ListEventsByDateRange(ctx, dateutil.TruncateToDay(now), now.AddDate(0, 0, 14))
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	draft := func(input string) (draftResult, error) {
		fmt.Fprintln(w, "Drafting events...")
		resp, err := s.drafter.Draft(ctx, llm.DraftRequest{
			Input:            input,
			Now:              now,
			Existing:         nearby,
			UseCompactPrompt: s.compact,
		})
		if err != nil {
			return draftResult{}, fmt.Errorf("drafting: %w", err)
		}
		events, invalid := resp.ToEvents()
		return draftResult{events: events, warnings: resp.Warnings, invalid: invalid}, nil
	}

	input := s.input
	result, err := draft(input)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(s.in)
	for {
		displayDraft(w, result)

		if s.dryRun {
			fmt.Fprintln(w, "\n(Dry run - events not saved)")
			return nil
		}

		fmt.Fprint(w, "\n[a]ccept / [m]odify / [c]ancel: ")
		choice, err := reader.ReadString('\n')
		if err != nil && choice == "" {
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.TrimSpace(strings.ToLower(choice)) {
		case "a", "accept":
			if result.invalid != nil || len(result.events) == 0 {
				fmt.Fprintln(w, "Nothing valid to save. Please [m]odify the request or [c]ancel.")
				continue
			}
			events := result.events
			if err := a.repo.CreateEvents(ctx, events); err != nil {
				return fmt.Errorf("creating events: %w", err)
			}
			if err := appendEvents(a.config.Storage.EventsFile, events); err != nil {
				return fmt.Errorf("saving events: %w", err)
			}
			fmt.Fprintf(w, "\n%d events saved to %s\n", len(events), a.config.Storage.EventsFile)
			for _, date := range draftDates(events) {
				if err := a.warnConflicts(ctx, w, date); err != nil {
					return err
				}
			}
			return nil

		case "m", "modify":
			fmt.Fprint(w, "What would you like to change? ")
			modification, _ := reader.ReadString('\n')
			modification = strings.TrimSpace(modification)
			if modification == "" {
				fmt.Fprintln(w, "No modification provided, showing current draft...")
				continue
			}
			input = input + "\nAdjustment: " + modification
			if result, err = draft(input); err != nil {
				return err
			}

		case "c", "cancel":
			fmt.Fprintln(w, "Draft cancelled.")
			return nil

		default:
			fmt.Fprintln(w, "Invalid choice. Please enter 'a', 'm', or 'c'.")
		}
	}
}

// draftResult is one LLM proposal. invalid is set when an event failed
// validation; events is then empty.
type draftResult struct {
	events   []*event.Event
	warnings []string
	invalid  error
}

// displayDraft shows the drafted events grouped by date.
func displayDraft(w io.Writer, result draftResult) {
	events := result.events
	fmt.Fprintln(w)
	if len(result.warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range result.warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
		fmt.Fprintln(w)
	}
	if result.invalid != nil {
		fmt.Fprintf(w, "The draft is not valid: %v\n", result.invalid)
		return
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No events proposed.")
		return
	}

	dates := draftDates(events)
	for _, date := range dates {
		label := date
		if d, err := dateutil.ParseKey(date); err == nil {
			label = d.Format("Monday, January 2")
		}
		fmt.Fprintf(w, "%s:\n", label)
		for _, e := range events {
			if e.Date == date {
				PrintEventRow(w, e, PrintOpts{}, 40)
			}
		}
	}
	fmt.Fprintf(w, "Total: %d events", len(events))
	if len(dates) > 1 {
		fmt.Fprintf(w, " across %d days", len(dates))
	}
	fmt.Fprintln(w)
}

// draftDates returns the distinct dates of events in first-seen order.
func draftDates(events []*event.Event) []string {
	var dates []string
	seen := make(map[string]bool)
	for _, e := range events {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	return dates
}
