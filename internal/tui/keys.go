package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/summary"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/input"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitArmed = false
	}

	switch key {
	case "q":
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.statusMsg = "Unsaved changes: ctrl+s to save, q again to quit"
			return m, nil
		}
		return m, tea.Quit

	// Selection
	case "h", "left":
		m.selectDate(m.selected.AddDate(0, 0, -1), "left")
	case "l", "right":
		m.selectDate(m.selected.AddDate(0, 0, 1), "right")
	case "j", "down":
		if m.state.Mode == calendar.ModeMonth {
			m.selectDate(m.selected.AddDate(0, 0, 7), "down")
		} else {
			m.cycleEvent(1)
		}
	case "k", "up":
		if m.state.Mode == calendar.ModeMonth {
			m.selectDate(m.selected.AddDate(0, 0, -7), "up")
		} else {
			m.cycleEvent(-1)
		}
	case "tab":
		m.cycleEvent(1)
	case "shift+tab":
		m.cycleEvent(-1)

	// Day view scrolling
	case "ctrl+d", "pgdown":
		m.dayScroll += max(m.agendaHeight()/2, 1)
		m.clampDayScroll()
	case "ctrl+u", "pgup":
		m.dayScroll -= max(m.agendaHeight()/2, 1)
		m.clampDayScroll()

	// Periods
	case "n", "L", "shift+right":
		m.setState(calendar.Next(m.state), "next")
	case "p", "H", "shift+left":
		m.setState(calendar.Prev(m.state), "prev")
	case "t":
		m.setState(calendar.Today(m.state, m.now()), "today")
	case "m":
		m.switchMode(calendar.ModeMonth)
	case "w":
		m.switchMode(calendar.ModeWeek)
	case "d":
		m.switchMode(calendar.ModeDay)

	// Category filters
	case "1", "2", "3", "4", "5":
		m.toggleCategory(event.Categories[int(key[0]-'1')])

	// Events
	case "a":
		return m.openNewEvent()
	case "enter":
		if e := m.selectedEvent(); e != nil {
			m.mode = ModeModal
			m.modalType = ModalEventDetail
			m.modalEvent = e
			return m, nil
		}
		return m.openNewEvent()
	case "e":
		if e := m.selectedEvent(); e != nil {
			return m.openEditEvent(e)
		}
		m.statusMsg = "No event selected"
	case "x":
		if e := m.selectedEvent(); e != nil {
			m.mode = ModeModal
			m.modalType = ModalConfirmDelete
			m.modalEvent = e
			return m, nil
		}
		m.statusMsg = "No event selected"

	// Panels and prompt
	case "y":
		return m.copyUpcoming()
	case "s":
		m.statusMsg = "Summarizing..."
		return m, commands.Stats(m.repo, m.config, m.filter, m.now(), false)
	case "i":
		return m.openPrompt("/draft ")
	case "g":
		return m.openPrompt("/goto ")
	case "/":
		return m.openPrompt("/")
	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
	case "ctrl+s":
		return m.saveDocument()
	case "esc":
		m.statusMsg = ""
	}

	return m, nil
}

func (m *Model) switchMode(mode calendar.ViewMode) {
	from := m.state
	m.state = calendar.JumpTo(calendar.WithMode(m.state, mode), m.selected)
	if mode == calendar.ModeDay {
		m.dayScroll = defaultDayScroll
		m.ensureEventVisible()
	}
	LogNavigate(from, m.state, "mode")
}

func (m *Model) toggleCategory(c event.Category) {
	m.filter = m.filter.Toggle(c)
	state := "shown"
	if !m.filter.Enabled(c) {
		state = "hidden"
	}
	m.statusMsg = fmt.Sprintf("%s %s", c.Label(), state)
	LogFilterToggle(c, m.filter.Enabled(c))
}

func (m Model) openNewEvent() (tea.Model, tea.Cmd) {
	m.mode = ModeModal
	m.modalType = ModalEventForm
	m.modalEvent = nil
	m.form = m.form.openNew(m.selected)
	return m, textinput.Blink
}

func (m Model) openEditEvent(e *event.Event) (tea.Model, tea.Cmd) {
	m.mode = ModeModal
	m.modalType = ModalEventForm
	m.modalEvent = e
	m.form = m.form.openEdit(e)
	return m, textinput.Blink
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	m.layoutCache = m.buildLayoutCache(m.width, m.height)
	return m, textinput.Blink
}

func (m Model) closePrompt() Model {
	m.mode = ModeNormal
	m.amending = false
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.layoutCache = m.buildLayoutCache(m.width, m.height)
	return m
}

func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalEvent = nil
	return m
}

// copyUpcoming copies the upcoming events of the visible categories to the
// clipboard.
func (m Model) copyUpcoming() (tea.Model, tea.Cmd) {
	stats := summary.Summarize(calendar.FilterByCategory(m.events, m.filter), m.now())
	if len(stats.Upcoming) == 0 {
		m.statusMsg = "Nothing upcoming to copy"
		return m, nil
	}
	if err := m.copyFn(view.StatsCopyText(view.UpcomingLines(stats))); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		LogError("clipboard", err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Copied %d upcoming events", len(stats.Upcoming))
	return m, nil
}

func (m Model) saveDocument() (tea.Model, tea.Cmd) {
	path := m.config.Storage.EventsFile
	if path == "" {
		m.statusMsg = "No events file configured"
		return m, nil
	}
	m.statusMsg = "Saving..."
	return m, commands.SaveDocument(m.repo, path)
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.amending && m.draftResponse != nil {
			m = m.closePrompt()
			m.mode = ModeModal
			m.modalType = ModalDraftResult
			return m, nil
		}
		return m.closePrompt(), nil

	case "enter":
		value := m.prompt.Value()
		amending := m.amending
		m = m.closePrompt()
		return m.handlePromptSubmit(value, amending)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			m.layoutCache = m.buildLayoutCache(m.width, m.height)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.layoutCache = m.buildLayoutCache(m.width, m.height)
	return m, cmd
}

// handleModalKeys routes keys to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalEventForm:
		return m.handleEventFormKeys(msg)
	case ModalEventDetail:
		return m.handleEventDetailKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalDraftResult:
		return m.handleDraftResultKeys(msg)
	case ModalStats:
		return m.handleStatsKeys(msg)
	default:
		switch msg.String() {
		case "esc", "enter", "q", "?":
			return m.closeModal(), nil
		}
	}
	return m, nil
}

// handleEventFormKeys handles keys in the event form.
func (m Model) handleEventFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil
	case "tab", "down":
		m.form = m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form = m.form.prev()
		return m, nil
	case "enter":
		return m.saveEventFromForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// saveEventFromForm validates the form and stores the event.
func (m Model) saveEventFromForm() (tea.Model, tea.Cmd) {
	e, err := m.form.build(m.now())
	if err != nil {
		m.form.err = formErrorMessage(err)
		return m, nil
	}

	isNew := m.form.isNew()
	m = m.closeModal()
	m.selectDate(parseKeyOr(e.Date, m.selected), "saved")
	if isNew {
		m.statusMsg = "Creating..."
		return m, commands.CreateEvent(m.repo, e)
	}
	m.statusMsg = "Saving..."
	return m, commands.UpdateEvent(m.repo, e)
}

// handleEventDetailKeys handles keys in the event detail modal.
func (m Model) handleEventDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.modalEvent
	if e == nil {
		return m.closeModal(), nil
	}
	switch msg.String() {
	case "esc", "enter", "q":
		return m.closeModal(), nil
	case "e":
		return m.openEditEvent(e)
	case "x":
		m.modalType = ModalConfirmDelete
		return m, nil
	case "y":
		if err := m.copyFn(eventCopyText(e)); err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Copied event"
	}
	return m, nil
}

// handleConfirmDeleteKeys handles keys in the delete confirmation.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		if m.modalEvent != nil {
			m.modalType = ModalEventDetail
			return m, nil
		}
		return m.closeModal(), nil
	case "enter", "y":
		e := m.modalEvent
		m = m.closeModal()
		if e == nil {
			return m, nil
		}
		m.statusMsg = "Deleting..."
		return m, commands.DeleteEvent(m.repo, e)
	}
	return m, nil
}

// handleDraftResultKeys handles keys in the draft result modal.
func (m Model) handleDraftResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		m = m.closeModal()
		m.draftResponse = nil
		m.draftRequest = ""
		m.statusMsg = "Draft discarded"
		return m, nil

	case "enter", "a":
		if m.draftResponse == nil {
			return m, nil
		}
		if len(m.draftResponse.Issues()) > 0 {
			m.statusMsg = "Cannot apply: fix the issues with m"
			return m, nil
		}
		if len(m.draftResponse.Events) == 0 {
			m.statusMsg = "Nothing to apply"
			return m, nil
		}
		m.statusMsg = "Saving draft..."
		return m, commands.SaveDraft(m.repo, m.draftResponse)

	case "m":
		m.modalType = ModalNone
		updated, cmd := m.openPrompt("")
		model := updated.(Model)
		model.amending = true
		model.statusMsg = "What would you like to change?"
		return model, cmd
	}
	return m, nil
}

// handleStatsKeys handles keys in the statistics panel.
func (m Model) handleStatsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", "s":
		m = m.closeModal()
		m.stats = nil
		m.statsLines = nil
		return m, nil
	case "y":
		if m.stats == nil {
			return m, nil
		}
		if err := m.copyFn(view.StatsCopyText(m.statsLines)); err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Copied statistics"
	case "i":
		if m.config.LLM.Model == "" {
			m.statusMsg = "Insight needs llm.model in the config"
			return m, nil
		}
		m.statusMsg = "Asking for insight..."
		return m, commands.Stats(m.repo, m.config, m.filter, m.now(), true)
	}
	return m, nil
}
