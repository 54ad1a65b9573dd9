package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    event.Repository
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	skipped []eventfile.RecordError
	closer  io.Closer

	now       func() time.Time
	newClient func(provider, model, baseURL string) (llm.Client, error)
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the config and seeded from the
// events file.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, now: time.Now, newClient: llm.NewClient}

	a.root = &cobra.Command{
		Use:   "rocinante",
		Short: "A terminal calendar",
		Long: `Rocinante is a terminal calendar with month, week and day views.

Events are read from a JSON, TOML, YAML or iCalendar document and kept in
an in-memory database for the session. Overlapping events are flagged,
categories can be toggled and an optional LLM briefs your agenda.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes rocinante-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.draftCmd())

	return a
}

// ensureRepo opens the configured database and loads the events file into
// it. It runs at most once per process.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.closer = repo

	_, skipped, err := eventfile.Import(context.Background(), repo, a.config.Storage.EventsFile)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	a.skipped = skipped
	reportSkipped(os.Stderr, a.config.Storage.EventsFile, skipped)
	return nil
}

// Close releases the database opened by ensureRepo.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rocinante %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
