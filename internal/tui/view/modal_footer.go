package view

// EventFormFooter renders the footer for the event form modal.
func EventFormFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Save", "[Tab] Next", "[Esc] Cancel")
}

// EventDetailFooter renders the footer for the event detail modal.
func EventDetailFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[e] Edit", "[x] Delete", "[y] Copy", "[Esc] Close")
}

// ConfirmDeleteFooter renders the footer for the confirm delete modal.
func ConfirmDeleteFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Delete", "[n/Esc] Cancel")
}

// DraftResultFooter renders the footer for the draft result modal. A draft
// with invalid events cannot be applied.
func DraftResultFooter(hasIssues bool, styles ModalStyles) string {
	if hasIssues {
		return RenderModalButtons(styles, "[m] Amend", "[Esc/c] Cancel")
	}
	return RenderModalButtons(styles, "[Enter/a] Apply", "[m] Amend", "[Esc/c] Cancel")
}

// StatsFooter renders the footer for the statistics modal.
func StatsFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[y] Copy", "[i] Insight", "[Esc] Close")
}

// HelpFooter renders the footer for the key help modal.
func HelpFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Esc] Close")
}
