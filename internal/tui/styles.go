// Package tui provides the terminal user interface for rocinante.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorToday       lipgloss.Color
	colorWarning     lipgloss.Color

	// Chip styles per category: base, alternate shade and muted
	chips    map[event.Category]lipgloss.Style
	chipsAlt map[event.Category]lipgloss.Style
	chipsDim map[event.Category]lipgloss.Style

	TitleStyle      lipgloss.Style
	TitleModeStyle  lipgloss.Style
	DirtyStyle      lipgloss.Style
	DayHeaderStyle  lipgloss.Style
	DayHeaderToday  lipgloss.Style
	BorderStyle     lipgloss.Style
	CellStyle       lipgloss.Style
	CellMutedStyle  lipgloss.Style
	CellCursorStyle lipgloss.Style

	DayNumberStyle      lipgloss.Style
	DayNumberTodayStyle lipgloss.Style
	DayNumberMutedStyle lipgloss.Style
	ConflictStyle       lipgloss.Style
	MoreStyle           lipgloss.Style
	ChipSelectedStyle   lipgloss.Style

	HourStyle lipgloss.Style
	RuleStyle lipgloss.Style

	LegendStyle        lipgloss.Style
	LegendOffStyle     lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	StatusStyle        lipgloss.Style
	HelpStyle          lipgloss.Style

	ModalBgColor       lipgloss.Color
	ModalBackdropColor lipgloss.Color
	Modal              view.ModalStyles
	ModalSet           view.ModalStyleSet
	ModalWide          lipgloss.Style

	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{
		palette:          palette,
		colorBg:          palette.Bg,
		colorBgHighlight: palette.BgHighlight,
		colorBgSelection: palette.BgSelection,
		colorFg:          palette.Fg,
		colorFgMuted:     palette.FgMuted,
		colorAccent:      palette.Accent,
		colorToday:       palette.Today,
		colorWarning:     palette.Warning,
		chips:            make(map[event.Category]lipgloss.Style),
		chipsAlt:         make(map[event.Category]lipgloss.Style),
		chipsDim:         make(map[event.Category]lipgloss.Style),
	}

	base := lipgloss.NewStyle().Background(s.colorBg)

	for _, c := range event.Categories {
		cc := palette.Category(c)
		chip := lipgloss.NewStyle().Foreground(cc.TextOn)
		s.chips[c] = chip.Background(cc.Bg)
		s.chipsAlt[c] = chip.Background(cc.BgAlt)
		s.chipsDim[c] = lipgloss.NewStyle().Background(cc.Muted).Foreground(s.colorFgMuted)
	}

	s.TitleStyle = base.Bold(true).Foreground(s.colorAccent)
	s.TitleModeStyle = base.Foreground(s.colorFgMuted)
	s.DirtyStyle = base.Foreground(s.colorWarning).Bold(true)

	s.DayHeaderStyle = base.Bold(true).Align(lipgloss.Center).Foreground(s.colorFg)
	s.DayHeaderToday = s.DayHeaderStyle.Foreground(s.colorToday)
	s.BorderStyle = base.Foreground(s.colorAccent)

	s.CellStyle = base.Foreground(s.colorFg)
	s.CellMutedStyle = base.Foreground(s.colorFgMuted)
	s.CellCursorStyle = lipgloss.NewStyle().Background(s.colorBgSelection).Foreground(s.colorFg)

	s.DayNumberStyle = lipgloss.NewStyle().Bold(true)
	s.DayNumberTodayStyle = lipgloss.NewStyle().Bold(true).
		Background(s.colorToday).
		Foreground(palette.TextOnToday)
	s.DayNumberMutedStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.ConflictStyle = lipgloss.NewStyle().Foreground(s.colorWarning).Bold(true)
	s.MoreStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Italic(true)
	s.ChipSelectedStyle = lipgloss.NewStyle().
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.HourStyle = base.Foreground(s.colorAccent)
	s.RuleStyle = base.Foreground(s.colorFgMuted)

	s.LegendStyle = base.Foreground(s.colorFg)
	s.LegendOffStyle = base.Foreground(s.colorFgMuted).Strikethrough(true)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBackground(s.colorBg).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorBg).
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = base.Foreground(s.colorWarning).Bold(true)
	s.HelpStyle = base.Foreground(s.colorFgMuted)

	s.buildModalStyles(palette.Modal)

	s.AppStyle = base.
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	return s
}

func (s *Styles) buildModalStyles(modal theme.ModalColors) {
	s.ModalBgColor = modal.Bg
	s.ModalBackdropColor = modal.Backdrop

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)
	s.ModalWide = frame.Width(76)

	body := lipgloss.NewStyle().Foreground(modal.Text).Background(modal.Bg)
	muted := lipgloss.NewStyle().Foreground(modal.Muted).Background(modal.Bg)

	s.Modal = view.ModalStyles{
		HeaderStyle: body.Bold(true).Padding(0, 1).Align(lipgloss.Center),
		TitleStyle:  body.Bold(true),
		FooterStyle: lipgloss.NewStyle().Padding(0, 1).Background(modal.Bg),
		FrameStyle:  frame,
		ButtonStyle: lipgloss.NewStyle().
			Background(modal.Panel).
			Foreground(modal.Text).
			Padding(0, 3),
		ButtonActiveStyle: lipgloss.NewStyle().
			Background(modal.Highlight).
			Foreground(modal.ReverseText).
			Padding(0, 3).
			Underline(true),
		BodyStyle: body,
	}

	s.ModalSet = view.ModalStyleSet{
		BodyStyle:         body,
		MetaStyle:         muted,
		SectionTitleStyle: body.Bold(true).PaddingLeft(1),
		FocusTitleStyle: lipgloss.NewStyle().
			Foreground(modal.Highlight).
			Background(modal.Bg).
			Bold(true).
			PaddingLeft(1),
		TagStyle: lipgloss.NewStyle().
			Foreground(modal.Text).
			Background(modal.Panel).
			Bold(true).
			Padding(0, 1),
		LabelStyle:   body.Bold(true),
		HintStyle:    muted,
		ErrorStyle:   lipgloss.NewStyle().Foreground(s.colorWarning).Background(modal.Bg).Bold(true),
		WarningStyle: lipgloss.NewStyle().Foreground(s.colorWarning).Background(modal.Bg),
		OptionActive: lipgloss.NewStyle().
			Background(modal.Highlight).
			Foreground(modal.ReverseText).
			Bold(true).
			Padding(0, 1),
		OptionInactive: muted.Padding(0, 1),
	}

	s.ModalInputTextStyle = body
	s.ModalInputCursorStyle = lipgloss.NewStyle().Foreground(modal.ReverseText).Background(modal.Highlight)
	s.ModalPlaceholderStyle = muted
}

// Chip returns the event chip style of a category. alt selects the shade
// used after a chip of the same category; muted the one for days outside
// the anchor month.
func (s *Styles) Chip(c event.Category, alt, muted bool) lipgloss.Style {
	if !c.Valid() {
		c = event.CategoryWork
	}
	switch {
	case muted:
		return s.chipsDim[c]
	case alt:
		return s.chipsAlt[c]
	default:
		return s.chips[c]
	}
}

// CategoryText returns a foreground-only style in the category color, for
// legends and histogram bars.
func (s *Styles) CategoryText(c event.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.palette.Category(c).Fg).Background(s.colorBg)
}

// ModalCategoryText is CategoryText on the modal background.
func (s *Styles) ModalCategoryText(c event.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.palette.Category(c).Fg).Background(s.ModalBgColor)
}

func (s *Styles) cellStyles() view.CellStyles {
	return view.CellStyles{
		DayNumber:      s.DayNumberStyle,
		DayNumberToday: s.DayNumberTodayStyle,
		DayNumberMuted: s.DayNumberMutedStyle,
		Conflict:       s.ConflictStyle,
		More:           s.MoreStyle,
		Selected:       s.ChipSelectedStyle,
		Chip:           s.Chip,
	}
}

func (s *Styles) agendaStyles() view.AgendaStyles {
	return view.AgendaStyles{
		Hour:     s.HourStyle,
		Empty:    s.RuleStyle,
		Meta:     s.CellMutedStyle,
		Conflict: s.ConflictStyle.Background(s.colorBg),
		Selected: s.ChipSelectedStyle,
		Chip:     s.Chip,
	}
}
