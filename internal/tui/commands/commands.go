// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/summary"
)

// EventsLoadedMsg carries every event in the repository.
type EventsLoadedMsg struct {
	Events []*event.Event
}

// MutationKind names a change made to the repository.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// EventSavedMsg is sent after an event was created, updated or deleted.
type EventSavedMsg struct {
	Kind  MutationKind
	Event *event.Event
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// DraftResultMsg is sent when the LLM has drafted events.
type DraftResultMsg struct {
	Request  string
	Response *llm.DraftResponse
}

// DraftSavedMsg is sent when drafted events were stored.
type DraftSavedMsg struct {
	Count int
}

// StatsMsg is sent when statistics are ready.
type StatsMsg struct {
	Stats *summary.Statistics
}

// DocumentSavedMsg is sent when the events document was rewritten.
type DocumentSavedMsg struct {
	Path  string
	Count int
}

// LoadEvents lists every event in the repository.
func LoadEvents(repo event.Repository) tea.Cmd {
	return func() tea.Msg {
		events, err := repo.ListEvents(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}
		return EventsLoadedMsg{Events: events}
	}
}

// CreateEvent stores a new event. The repository assigns its ID.
func CreateEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateEvent(context.Background(), e); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating event: %w", err)}
		}
		return EventSavedMsg{Kind: MutationCreate, Event: e}
	}
}

// UpdateEvent replaces the stored event with the same ID.
func UpdateEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateEvent(context.Background(), e); err != nil {
			return ErrMsg{Err: fmt.Errorf("updating event: %w", err)}
		}
		return EventSavedMsg{Kind: MutationUpdate, Event: e}
	}
}

// DeleteEvent removes e by ID.
func DeleteEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteEvent(context.Background(), e.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting event: %w", err)}
		}
		return EventSavedMsg{Kind: MutationDelete, Event: e}
	}
}

// Draft asks the configured LLM to turn input into events. existing are
// the events the model should warn about when they overlap.
func Draft(input string, cfg *config.Config, existing []*event.Event, now time.Time) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		return runDraft(client, input, cfg.LLM.Provider != llm.ProviderCopilot, existing, now)
	}
}

func runDraft(client llm.Client, input string, compact bool, existing []*event.Event, now time.Time) tea.Msg {
	resp, err := llm.NewDrafter(client).Draft(context.Background(), llm.DraftRequest{
		Input:            input,
		Now:              now,
		Existing:         existing,
		UseCompactPrompt: compact,
	})
	if err != nil {
		return ErrMsg{Err: err}
	}
	return DraftResultMsg{Request: input, Response: resp}
}

// SaveDraft stores the drafted events in one transaction.
func SaveDraft(repo event.Repository, resp *llm.DraftResponse) tea.Cmd {
	return func() tea.Msg {
		if resp == nil {
			return ErrMsg{Err: errors.New("no draft to save")}
		}
		events, err := resp.ToEvents()
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreateEvents(context.Background(), events); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving draft: %w", err)}
		}
		return DraftSavedMsg{Count: len(events)}
	}
}

// Stats builds the statistics of the events passing filter at now, with an
// LLM briefing if insight is set.
func Stats(repo event.Repository, cfg *config.Config, filter calendar.CategoryFilter, now time.Time, insight bool) tea.Cmd {
	return func() tea.Msg {
		stats, err := summary.Build(context.Background(), repo, summary.BuildOptions{
			Now:            now,
			Filter:         &filter,
			IncludeInsight: insight,
			Provider:       cfg.LLM.Provider,
			Model:          cfg.LLM.Model,
			BaseURL:        cfg.LLM.BaseURL,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatsMsg{Stats: stats}
	}
}

// SaveDocument writes every event in the repository back to path.
func SaveDocument(repo event.Repository, path string) tea.Cmd {
	return func() tea.Msg {
		events, err := repo.ListEvents(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("listing events: %w", err)}
		}
		if err := eventfile.Rewrite(path, events); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving %s: %w", path, err)}
		}
		return DocumentSavedMsg{Path: path, Count: len(events)}
	}
}
