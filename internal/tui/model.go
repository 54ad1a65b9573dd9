package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/summary"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone          ModalType = iota
	ModalEventForm               // create or edit
	ModalEventDetail             // view existing event
	ModalConfirmDelete           // delete confirmation
	ModalDraftResult             // LLM drafted events
	ModalStats                   // statistics panel
	ModalHelp
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Calendar state
	state     calendar.ViewState
	selected  time.Time // selected date, midnight
	eventIdx  int       // selected event within the selected date, -1 for none
	filter    calendar.CategoryFilter
	cache     *calendar.WindowCache
	grids     *gridMemo
	events    []*event.Event
	eventsGen uint64 // bumped on every reload
	loaded    bool
	dayScroll int // first hour shown in day view

	mode      Mode
	modalType ModalType

	// Modal state
	form       eventForm
	modalEvent *event.Event

	// Drafting state
	draftRequest  string
	draftResponse *llm.DraftResponse
	amending      bool

	// Stats state
	stats      *summary.Statistics
	statsLines []view.StatsLine

	prompt textinput.Model

	width       int
	height      int
	layoutCache LayoutCache

	statusMsg  string
	statusTime time.Time

	// dirty is set once the repository diverges from the events document.
	dirty     bool
	quitArmed bool

	now    func() time.Time
	copyFn func(string) error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.state = calendar.NewViewState(now(), m.state.Mode)
		m.selected = m.state.Anchor
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/draft lunch with Ana tomorrow at 13:00"
	ti.Prompt = ""

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	state := calendar.NewViewState(time.Now(), cfg.ViewMode())
	m := &Model{
		repo:     repo,
		config:   cfg,
		theme:    t,
		styles:   styles,
		state:    state,
		selected: state.Anchor,
		eventIdx: -1,
		filter:   cfg.CategoryFilter(),
		cache:    calendar.NewWindowCache(),
		grids:    &gridMemo{},
		mode:     ModeNormal,
		form:     newEventForm(styles),
		prompt:   ti,
		now:      time.Now,
		copyFn:   clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.dayScroll = defaultDayScroll
	m.layoutCache = m.buildLayoutCache(0, 0)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadEvents(m.repo)
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo event.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
