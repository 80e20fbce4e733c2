package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/registry"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

// Options configures a dashboard session.
type Options struct {
	// Context is the parent of every command the dashboard dispatches.
	Context     context.Context
	Preferences *registry.PreferenceStore
	DisplayMode view.DisplayMode
	SortOrder   view.SortOrder
	UseUnicode  bool
	Clock       func() time.Time
}

// Model is the main dashboard model
type Model struct {
	ctx     context.Context
	service Service
	prefs   *registry.PreferenceStore
	view    *view.Controller

	// Latest registry snapshot and the cards derived from it
	records []idea.Record
	cards   []view.Card
	cursor  int

	form    submitForm
	spinner spinner.Model
	screen  Screen

	// Operation state
	loading      bool
	submitting   bool
	batching     bool
	reevaluating map[string]bool

	// Dimensions
	width  int
	height int

	useUnicode bool
}

// NewModel creates a new dashboard model
func NewModel(svc Service, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	viewOpts := []view.Option{}
	if opts.DisplayMode != "" {
		viewOpts = append(viewOpts, view.WithDisplayMode(opts.DisplayMode))
	}
	if opts.SortOrder != "" {
		viewOpts = append(viewOpts, view.WithSortOrder(opts.SortOrder))
	}
	if opts.Clock != nil {
		viewOpts = append(viewOpts, view.WithClock(opts.Clock))
	}

	m := Model{
		ctx:          ctx,
		service:      svc,
		prefs:        opts.Preferences,
		view:         view.NewController(viewOpts...),
		form:         newSubmitForm(),
		spinner:      s,
		screen:       ScreenMain,
		reevaluating: make(map[string]bool),
		useUnicode:   opts.UseUnicode,
		width:        80,
		height:       24,
	}
	m.refresh()
	return m
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadIdeasCmd(m.ctx, m.service),
	)
}

// refresh re-reads the registry and re-derives the cards, keeping the cursor
// on the same idea when it is still listed.
func (m *Model) refresh() {
	selected := m.selectedID()

	m.records = m.service.Snapshot()
	m.cards = m.view.Cards(m.records)

	if selected != "" {
		for i, card := range m.cards {
			if card.Record.ID == selected {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return ""
	}
	return m.cards[m.cursor].Record.ID
}

// Selected returns the idea under the cursor.
func (m Model) Selected() (idea.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return idea.Record{}, false
	}
	return m.cards[m.cursor].Record, true
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.cards) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.cards) - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.cards) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.cards) {
		m.cursor = 0
	}
}

// CountByStatus returns counts of ideas in each status
func (m Model) CountByStatus() map[idea.Status]int {
	counts := make(map[idea.Status]int)
	for _, record := range m.records {
		counts[record.Status]++
	}
	return counts
}

// Busy reports whether any store or evaluation call is outstanding.
func (m Model) Busy() bool {
	return m.loading || m.submitting || m.batching || len(m.reevaluating) > 0 ||
		m.CountByStatus()[idea.StatusEvaluating] > 0
}

// Tab returns the active tab.
func (m Model) Tab() view.Tab {
	return m.view.Tab()
}

// Cards returns the cards currently on screen.
func (m Model) Cards() []view.Card {
	return m.cards
}

// Cursor returns the selected card index.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) preferences() registry.Preferences {
	return registry.Preferences{
		DisplayMode: string(m.view.DisplayMode()),
		SortOrder:   string(m.view.SortOrder()),
	}
}
