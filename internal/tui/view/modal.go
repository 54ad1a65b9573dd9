package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	HeaderStyle       lipgloss.Style
	TitleStyle        lipgloss.Style
	FooterStyle       lipgloss.Style
	FrameStyle        lipgloss.Style
	ButtonStyle       lipgloss.Style
	ButtonActiveStyle lipgloss.Style
	BodyStyle         lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render(styles.TitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FooterStyle.Render(footer))
	}

	return styles.FrameStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	return renderButtons(styles.ButtonStyle, styles.ButtonActiveStyle, styles.BodyStyle, labels)
}

// RenderModalButtonsCompact renders buttons with less padding, for modals
// with many actions.
func RenderModalButtonsCompact(styles ModalStyles, labels ...string) string {
	return renderButtons(styles.ButtonStyle.Padding(0, 1), styles.ButtonActiveStyle.Padding(0, 1), styles.BodyStyle, labels)
}

func renderButtons(button, active, sep lipgloss.Style, labels []string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := button
		if i == 0 {
			style = active
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, sep.Render(" "))
}

// ModalContentWidth returns the content width for a modal body.
func ModalContentWidth(style lipgloss.Style, fallback int) int {
	width := style.GetWidth()
	if width <= 0 {
		return fallback
	}
	return max(width-4, 10)
}
