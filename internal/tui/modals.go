package tui

import (
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// keyHelp lists the bindings shown by ?.
var keyHelp = []view.KeyHelp{
	{Keys: "h/l ←/→", Description: "previous / next day"},
	{Keys: "j/k ↓/↑", Description: "next / previous week (month), next / previous event"},
	{Keys: "tab", Description: "cycle events of the selected day"},
	{Keys: "n/p", Description: "next / previous month, week or day"},
	{Keys: "t", Description: "today"},
	{Keys: "m/w/d", Description: "month, week or day view"},
	{Keys: "1-5", Description: "toggle work, personal, meeting, deadline, reminder"},
	{Keys: "a", Description: "add event"},
	{Keys: "enter", Description: "event details"},
	{Keys: "e/x", Description: "edit / delete selected event"},
	{Keys: "i", Description: "draft events with the LLM"},
	{Keys: "g", Description: "go to date"},
	{Keys: "s", Description: "statistics"},
	{Keys: "y", Description: "copy upcoming events"},
	{Keys: "ctrl+s", Description: "write events file"},
	{Keys: "/", Description: "commands"},
	{Keys: "q", Description: "quit"},
}

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalEventForm:
		return m.renderEventFormModal()
	case ModalEventDetail:
		return m.renderEventDetailModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalDraftResult:
		return m.renderDraftResultModal()
	case ModalStats:
		return m.renderStatsModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

func (m Model) renderEventFormModal() string {
	title := "New Event"
	if !m.form.isNew() {
		title = "Edit Event"
	}
	body := view.RenderEventFormBody(m.form.viewModel(m.now()), m.styles.ModalSet.EventFormStyles())
	footer := view.EventFormFooter(m.styles.Modal)
	return view.RenderModalFrame(title, body, footer, m.styles.Modal)
}

func (m Model) renderEventDetailModal() string {
	e := m.modalEvent
	if e == nil {
		return ""
	}
	model := view.NewEventDetailModel(e, m.conflictFor(e))
	styles := m.styles.ModalSet.EventDetailStyles(m.styles.Chip(e.Category, false, false).Padding(0, 1))
	body := view.RenderEventDetailBody(model, styles)
	footer := view.EventDetailFooter(m.styles.Modal)
	return view.RenderModalFrame("Event", body, footer, m.styles.Modal)
}

func (m Model) renderConfirmDeleteModal() string {
	if m.modalEvent == nil {
		return ""
	}
	body := view.RenderConfirmDeleteBody(view.NewConfirmDeleteModel(m.modalEvent), m.styles.ModalSet.BodyStyle)
	footer := view.ConfirmDeleteFooter(m.styles.Modal)
	return view.RenderModalFrame("Delete Event", body, footer, m.styles.Modal)
}

func (m Model) renderDraftResultModal() string {
	if m.draftResponse == nil {
		return ""
	}
	model := view.NewDraftResultModel(m.draftRequest, m.draftResponse)
	body := view.RenderDraftResultBody(model, m.styles.ModalSet.DraftResultStyles())
	footer := view.DraftResultFooter(len(model.Issues) > 0, m.styles.Modal)
	return view.RenderModalFrame("LLM Draft", body, footer, m.styles.Modal)
}

func (m Model) renderStatsModal() string {
	if m.stats == nil {
		return ""
	}
	styles := m.styles.Modal
	styles.FrameStyle = m.styles.ModalWide
	body := view.RenderStatsBody(m.statsLines, view.StatsStyles{
		BodyStyle:         m.styles.ModalSet.BodyStyle,
		MetaStyle:         m.styles.ModalSet.MetaStyle,
		SectionTitleStyle: m.styles.ModalSet.SectionTitleStyle,
		Category:          m.styles.ModalCategoryText,
	}, view.ModalContentWidth(styles.FrameStyle, 60))
	return view.RenderModalFrame("Statistics", body, view.StatsFooter(styles), styles)
}

func (m Model) renderHelpModal() string {
	styles := m.styles.Modal
	styles.FrameStyle = m.styles.ModalWide
	body := view.RenderHelpBody(keyHelp, m.styles.ModalSet.TagStyle, m.styles.ModalSet.BodyStyle)
	return view.RenderModalFrame("Keys", body, view.HelpFooter(styles), styles)
}
