package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/summary"
)

func (a *App) statsCmd() *cobra.Command {
	var (
		model      string
		insight    bool
		noColor    bool
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekly counts, categories and upcoming events",
		Long: `Display event statistics relative to now.

Counts the events of this week and next week (Sunday to Saturday), shows
how events spread over categories and lists the next few upcoming events.
With --insight, the configured LLM briefs the two-week agenda.

Only the configured categories are counted unless --category is given.`,
		Example: `  rocinante stats
  rocinante stats --category=work --category=meeting
  rocinante stats --insight`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			filter, err := a.categoryFilter(categories)
			if err != nil {
				return err
			}

			if model == "" {
				model = a.config.LLM.Model
			}

			stats, err := summary.Build(context.Background(), a.repo, summary.BuildOptions{
				Now:            a.now(),
				Filter:         &filter,
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("building statistics: %w", err)
			}

			w := cmd.OutOrStdout()
			if stats.Total() == 0 {
				fmt.Fprintln(w, "No events.")
				return nil
			}

			end := stats.NextWeekStart.AddDate(0, 0, 6)
			header := fmt.Sprintf("STATS: %s - %s", stats.ThisWeekStart.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006"))
			fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
			fmt.Fprintln(w, strings.Repeat("─", 60))
			PrintStats(w, stats)

			if stats.Insight != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, strings.Repeat("─", 60))
				PrintInsightWrapped(w, stats.Insight, min(termWidth(), 80)-4)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the LLM for an agenda briefing")
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Count only these categories (repeatable)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
