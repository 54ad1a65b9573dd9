package view

import "github.com/charmbracelet/lipgloss"

// ModalStyleSet groups modal styles to reduce call-site verbosity.
type ModalStyleSet struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	FocusTitleStyle   lipgloss.Style
	TagStyle          lipgloss.Style
	LabelStyle        lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
	WarningStyle      lipgloss.Style
	OptionActive      lipgloss.Style
	OptionInactive    lipgloss.Style
}

// EventFormStyles returns the modal styles needed for the event form.
func (s ModalStyleSet) EventFormStyles() EventFormStyles {
	return EventFormStyles{
		TagStyle:          s.TagStyle,
		BodyStyle:         s.BodyStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		FocusTitleStyle:   s.FocusTitleStyle,
		OptionActive:      s.OptionActive,
		OptionInactive:    s.OptionInactive,
		HintStyle:         s.HintStyle,
		ErrorStyle:        s.ErrorStyle,
	}
}

// EventDetailStyles returns the modal styles needed for event details.
// category is the chip style of the event's category.
func (s ModalStyleSet) EventDetailStyles(category lipgloss.Style) EventDetailStyles {
	return EventDetailStyles{
		BodyStyle:     s.BodyStyle,
		LabelStyle:    s.LabelStyle,
		CategoryStyle: category,
		WarningStyle:  s.WarningStyle,
	}
}

// DraftResultStyles returns the modal styles needed for draft results.
func (s ModalStyleSet) DraftResultStyles() DraftResultStyles {
	return DraftResultStyles{
		MetaStyle:         s.MetaStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		BodyStyle:         s.BodyStyle,
		ErrorStyle:        s.ErrorStyle,
	}
}
