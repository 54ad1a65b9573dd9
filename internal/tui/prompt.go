package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/input"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

var promptCommands = []input.PromptCommand{
	{Name: "/draft", Usage: "<text>", Description: "Draft events from natural language"},
	{Name: "/goto", Usage: "<date>", Description: "Jump to a date (YYYY-MM-DD, tomorrow, friday)"},
	{Name: "/view", Usage: "<month|week|day>", Description: "Change the view"},
	{Name: "/stats", Description: "Show statistics"},
	{Name: "/insight", Description: "Show statistics with an LLM briefing"},
	{Name: "/save", Description: "Write events back to the events file"},
	{Name: "/help", Description: "Show key bindings"},
}

// handlePromptSubmit processes the submitted prompt. Text without a command
// is drafted; while amending it refines the previous draft request.
func (m Model) handlePromptSubmit(value string, amending bool) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" {
		if amending && m.draftResponse != nil {
			m.mode = ModeModal
			m.modalType = ModalDraftResult
		}
		return m, nil
	}

	name, arg := input.ParseCommand(value)
	if amending && name == "" {
		return m.startDraft(m.draftRequest + "\nChange: " + arg)
	}

	switch name {
	case "":
		return m.startDraft(arg)
	case "/draft":
		if arg == "" {
			m.statusMsg = "Draft requires input"
			return m, nil
		}
		return m.startDraft(arg)
	case "/goto":
		if arg == "" {
			m.statusMsg = "Goto requires a date"
			return m, nil
		}
		date, err := dateutil.ParseRelativeDate(arg, m.now())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Unknown date: %s", arg)
			return m, nil
		}
		from := m.state
		m.state = calendar.JumpTo(m.state, date)
		m.selected = m.state.Anchor
		m.eventIdx = 0
		LogNavigate(from, m.state, "goto")
		return m, nil
	case "/view":
		mode, err := calendar.ParseViewMode(arg)
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.switchMode(mode)
		return m, nil
	case "/stats":
		m.statusMsg = "Summarizing..."
		return m, commands.Stats(m.repo, m.config, m.filter, m.now(), false)
	case "/insight":
		if m.config.LLM.Model == "" {
			m.statusMsg = "Insight needs llm.model in the config"
			return m, nil
		}
		m.statusMsg = "Asking for insight..."
		return m, commands.Stats(m.repo, m.config, m.filter, m.now(), true)
	case "/save":
		return m.saveDocument()
	case "/help":
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil
	default:
		m.statusMsg = fmt.Sprintf("Unknown command: %s", name)
		return m, nil
	}
}

func (m Model) startDraft(request string) (tea.Model, tea.Cmd) {
	m.draftRequest = request
	m.statusMsg = "Drafting..."
	return m, commands.Draft(request, m.config, m.draftContext(), m.now())
}

func (m Model) fullFooterHeight(innerH, promptWidth int) int {
	promptLines := max(promptMinContentLines, len(m.promptLines(promptWidth)))
	desired := footerBaseLines + promptLines + promptBorderLines

	maxFooter := innerH - minGridHeight
	if maxFooter < footerMinHeight {
		return footerCompact
	}
	return min(max(desired, footerMinHeight), maxFooter)
}

func (m Model) promptMaxContentLines() int {
	return max(m.layoutCache.FooterH-footerBaseLines-promptBorderLines, promptMinContentLines)
}

func (m Model) promptCursor() string {
	if m.mode == ModePrompt {
		return "_"
	}
	return ""
}

func (m Model) promptLines(contentWidth int) []string {
	state := view.PromptState{
		Value:  m.prompt.Value(),
		Cursor: m.promptCursor(),
		Active: m.mode == ModePrompt,
	}
	return view.PromptLines(state, contentWidth, promptCommands)
}
