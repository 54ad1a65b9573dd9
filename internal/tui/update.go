package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

const (
	statusTTL = 3 * time.Second
	errorTTL  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutCache = m.buildLayoutCache(m.width, m.height)
		m.clampDayScroll()
		return m, nil

	case commands.EventsLoadedMsg:
		m.events = msg.Events
		m.eventsGen++
		m.loaded = true
		m.ensureEventVisible()
		return m, nil

	case commands.EventSavedMsg:
		m.dirty = true
		LogMutation(msg.Kind, msg.Event)
		title := ""
		if msg.Event != nil {
			title = msg.Event.Title
		}
		switch msg.Kind {
		case commands.MutationCreate:
			m.statusMsg = fmt.Sprintf("Created: %s", title)
		case commands.MutationUpdate:
			m.statusMsg = fmt.Sprintf("Updated: %s", title)
		case commands.MutationDelete:
			m.statusMsg = fmt.Sprintf("Deleted: %s", title)
			m.eventIdx = 0
		}
		m.statusTime = m.now().Add(statusTTL)
		return m, tea.Batch(commands.LoadEvents(m.repo), clearStatusAfter(statusTTL))

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorTTL)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusTTL)
		return m, clearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.DraftResultMsg:
		m.draftRequest = msg.Request
		m.draftResponse = msg.Response
		m.mode = ModeModal
		m.modalType = ModalDraftResult
		m.statusMsg = ""
		return m, nil

	case commands.DraftSavedMsg:
		m.dirty = true
		LogMutation(commands.MutationCreate, nil)
		m.draftResponse = nil
		m.draftRequest = ""
		m = m.closeModal()
		m.statusMsg = fmt.Sprintf("Saved %d events", msg.Count)
		m.statusTime = m.now().Add(statusTTL)
		return m, tea.Batch(commands.LoadEvents(m.repo), clearStatusAfter(statusTTL))

	case commands.StatsMsg:
		m.stats = msg.Stats
		m.statsLines = view.BuildStatsLines(msg.Stats)
		m.mode = ModeModal
		m.modalType = ModalStats
		m.statusMsg = ""
		return m, nil

	case commands.DocumentSavedMsg:
		m.dirty = false
		m.quitArmed = false
		m.statusMsg = fmt.Sprintf("Wrote %d events to %s", msg.Count, msg.Path)
		m.statusTime = m.now().Add(statusTTL)
		return m, clearStatusAfter(statusTTL)
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.mode == ModeModal && m.modalType == ModalEventForm && m.form.focus != fieldCategory {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
