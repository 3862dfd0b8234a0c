// Package ui renders the application state as a Bubble Tea program: a
// search view (input, ranked results, status bar) and a detail view (quick
// status, order books, price history chart).
package ui

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bzx/internal/app"
	"github.com/oakwood-commons/bzx/internal/bazaar"
)

// TickMsg drives the debounce check in the search view.
type TickMsg time.Time

// ProductUpdateMsg carries one background product update into the UI loop.
type ProductUpdateMsg bazaar.Product

// Model is the root Bubble Tea model. It owns the state machine and is the
// only goroutine that mutates it; background refreshes arrive as messages.
type Model struct {
	App         *app.App
	SearchInput textinput.Model
	Status      StatusModel

	WinWidth  int
	WinHeight int
	NoColor   bool

	TickInterval   time.Duration
	DebounceWindow time.Duration

	log *logr.Logger
}

// Options configures a Model beyond its defaults.
type Options struct {
	NoColor        bool
	TickInterval   time.Duration
	DebounceWindow time.Duration
	Logger         *logr.Logger
}

// NewModel wires the state machine into a renderable model.
func NewModel(a *app.App, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search…"
	ti.CharLimit = 200
	ti.SetWidth(60)
	ti.Prompt = ""
	ti.Focus()

	if opts.TickInterval <= 0 {
		opts.TickInterval = 60 * time.Millisecond
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = 120 * time.Millisecond
	}

	return Model{
		App:            a,
		SearchInput:    ti,
		Status:         NewStatusModel(),
		WinWidth:       80,
		WinHeight:      24,
		NoColor:        opts.NoColor,
		TickInterval:   opts.TickInterval,
		DebounceWindow: opts.DebounceWindow,
		log:            opts.Logger,
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForUpdate blocks on the update channel and re-arms after each message.
func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.App.Updates
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return ProductUpdateMsg(p)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd(), m.waitForUpdate())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncComponents()

	switch msg := msg.(type) {
	case TickMsg:
		if m.App.View == app.ViewSearch {
			m.App.MaybeApplyFilter(m.DebounceWindow)
		}
		return m, m.tickCmd()

	case ProductUpdateMsg:
		m.App.UpdateProduct(bazaar.Product(msg))
		return m, m.waitForUpdate()

	case tea.WindowSizeMsg:
		m.WinWidth = msg.Width
		m.WinHeight = msg.Height
		if w := msg.Width - 4; w > 0 {
			m.SearchInput.SetWidth(w)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global quit before any view-specific handling.
	if key == "ctrl+c" {
		m.App.StopRefresh()
		return m, tea.Quit
	}

	switch m.App.View {
	case app.ViewSearch:
		return m.handleSearchKey(msg, key)
	case app.ViewDetail:
		return m.handleDetailKey(key)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	if action, ok := SearchKeyBindings[key]; ok {
		return m.applySearchAction(action)
	}

	// Printable runes edit the query. In Navigate mode typing drops back to
	// Insert and applies the edit.
	if msg.Text != "" {
		m.App.Search.Mode = app.ModeInsert
		for _, ch := range msg.Text {
			m.App.OnInput(ch)
		}
	}
	return m, nil
}

func (m *Model) applySearchAction(action Action) (tea.Model, tea.Cmd) {
	search := &m.App.Search

	switch action {
	case ActionEscape:
		if search.Input == "" {
			m.App.StopRefresh()
			return m, tea.Quit
		}
		m.App.OnDelete()

	case ActionUp:
		m.App.MoveSelection(-1)
		search.Mode = app.ModeNavigate
	case ActionDown:
		m.App.MoveSelection(1)
		search.Mode = app.ModeNavigate
	case ActionTop:
		m.App.JumpToTop()
		search.Mode = app.ModeNavigate
	case ActionBottom:
		m.App.JumpToBottom()
		search.Mode = app.ModeNavigate
	case ActionPageUp:
		m.App.MoveSelection(-pageSize)
		search.Mode = app.ModeNavigate
	case ActionPageDown:
		m.App.MoveSelection(pageSize)
		search.Mode = app.ModeNavigate

	case ActionBackspace:
		search.Mode = app.ModeInsert
		m.App.OnBackspace()
	case ActionClearInput:
		search.Mode = app.ModeInsert
		m.App.OnDelete()

	case ActionSpreadSort:
		m.App.ToggleSpreadSort()

	case ActionEnterDetail:
		m.App.EnterDetail()
	}
	return m, nil
}

func (m *Model) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	action, ok := DetailKeyBindings[key]
	if !ok {
		return m, nil
	}

	detail := &m.App.Detail
	switch action {
	case ActionBack:
		m.App.ExitDetail()
	case ActionTogglePercent:
		detail.ShowPercent = !detail.ShowPercent
		if detail.ShowPercent {
			m.App.Status = "Chart: % mode"
		} else {
			m.App.Status = "Chart: absolute mode"
		}
	case ActionToggleSMA:
		detail.ShowSMA = !detail.ShowSMA
		if detail.ShowSMA {
			m.App.Status = "SMA: on"
		} else {
			m.App.Status = "SMA: off"
		}
	case ActionToggleMidline:
		detail.ShowMidline = !detail.ShowMidline
		if detail.ShowMidline {
			m.App.Status = "Midline: on"
		} else {
			m.App.Status = "Midline: off"
		}
	case ActionManualRefresh:
		m.App.ManualRefresh()
	}
	return m, nil
}

// syncComponents mirrors state-machine fields into the passive components
// so View stays free of mutations.
func (m *Model) syncComponents() {
	m.SearchInput.SetValue(m.App.Search.Input)
	m.SearchInput.SetCursor(len(m.App.Search.Input))
	if m.App.View == app.ViewSearch && m.App.Search.Mode == app.ModeInsert {
		m.SearchInput.Focus()
	} else {
		m.SearchInput.Blur()
	}

	m.Status.StatusText = m.App.Status
	m.Status.Mode = m.App.Search.Mode
	m.Status.LastUpdated = m.App.Data.LastUpdated
	m.Status.Width = m.WinWidth
	m.Status.NoColor = m.NoColor
}

func (m *Model) View() tea.View {
	var body string
	switch m.App.View {
	case app.ViewDetail:
		body = m.detailView()
	default:
		body = m.searchView()
	}

	v := tea.NewView(body)
	v.AltScreen = true
	return v
}
