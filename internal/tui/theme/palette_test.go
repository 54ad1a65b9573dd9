package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/event"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Today:       "#777777",
		Warning:     "#888888",
		Work:        "#112233",
		Personal:    "#445566",
		Meeting:     "#00ff00",
		Deadline:    "#0000ff",
		Reminder:    "#ffff00",
	}
}

func TestNewPalette_CategoryShades(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	work := palette.Category(event.CategoryWork)
	if work.Fg != lipgloss.Color(base.Work) {
		t.Fatalf("Work.Fg = %q, want %q", work.Fg, base.Work)
	}
	if work.Bg != lipgloss.Color(darkenColor(base.Work)) {
		t.Fatalf("Work.Bg = %q, want %q", work.Bg, darkenColor(base.Work))
	}
	if work.BgAlt != lipgloss.Color(alternateShade(darkenColor(base.Work), false)) {
		t.Fatalf("Work.BgAlt = %q", work.BgAlt)
	}
	personal := palette.Category(event.CategoryPersonal)
	if personal.Muted != lipgloss.Color(muteColor(base.Personal)) {
		t.Fatalf("Personal.Muted = %q, want %q", personal.Muted, muteColor(base.Personal))
	}
	if len(palette.Categories) != len(event.Categories) {
		t.Errorf("palette has %d categories, want %d", len(palette.Categories), len(event.Categories))
	}
}

func TestPalette_UnknownCategoryFallsBackToWork(t *testing.T) {
	palette := NewPalette(darkTheme())
	if got, want := palette.Category("travel"), palette.Category(event.CategoryWork); got != want {
		t.Errorf("Category(travel) = %+v, want %+v", got, want)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestNewPalette_LightThemeInvertsShades(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Today:       "#c97b00",
		Warning:     "#c2410c",
		Work:        "#1d8a8a",
		Personal:    "#2f8f2f",
	}

	palette := NewPalette(base)
	for _, c := range []event.Category{event.CategoryWork, event.CategoryPersonal} {
		chip := palette.Category(c)
		if relativeLuminance(string(chip.Bg)) <= relativeLuminance(base.Category(c)) {
			t.Errorf("%s chip luminance = %f, want greater than the category color", c, relativeLuminance(string(chip.Bg)))
		}
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
