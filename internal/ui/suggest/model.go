// Package suggest implements a search field that suggests destinations
// from a catalog read once when the field mounts.
package suggest

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"

	"destpick/internal/domain"
	"destpick/internal/ui/pointer"
)

const (
	defaultWidth = 40
	fieldHeight  = 3
	searchIcon   = "⌕ "
)

// Source supplies the destination catalog
type Source interface {
	Destinations(ctx context.Context) ([]domain.Destination, error)
}

// Options configure a Model
type Options struct {
	Source      Source
	Hub         *pointer.Hub
	OnSearch    func(query string)
	Placeholder string
	RoutePrefix string
	Width       int
}

// SelectedMsg is emitted when the user picks a suggestion
type SelectedMsg struct {
	Destination domain.Destination
	Route       string
}

// catalogMsg carries the result of the mount-time catalog read
type catalogMsg struct {
	instance uint64
	mount    uint64
	dests    []domain.Destination
	err      error
}

var instances atomic.Uint64

// Model is the search field and its dropdown. It is used through a pointer
// because the pointer subscription refers back to it.
type Model struct {
	source      Source
	hub         *pointer.Hub
	onSearch    func(string)
	routePrefix string

	input       textinput.Model
	catalog     []domain.Destination
	suggestions []domain.Destination
	visible     bool
	highlight   int

	x, y  int
	width int

	id     uint64
	mount  uint64
	live   bool
	cancel context.CancelFunc
	sub    *pointer.Subscription

	keys   KeyMap
	styles *Styles
}

// New creates an unmounted Model
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = "Where do you want to go?"
	}

	m := &Model{
		source:      opts.Source,
		hub:         opts.Hub,
		onSearch:    opts.OnSearch,
		routePrefix: opts.RoutePrefix,
		input:       ti,
		highlight:   -1,
		id:          instances.Add(1),
		keys:        DefaultKeyMap(),
		styles:      NewStyles(),
	}
	m.SetWidth(opts.Width)
	return m
}

// Mount starts the catalog read and begins listening for pointer presses.
// Mounting a live model does nothing.
func (m *Model) Mount() tea.Cmd {
	if m.live {
		return nil
	}
	m.live = true
	m.mount++

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	if m.hub != nil {
		m.sub = m.hub.Subscribe(m.handlePointer)
	}

	focus := m.input.Focus()
	return tea.Batch(focus, m.fetch(ctx, m.id, m.mount))
}

// Unmount cancels an in-flight catalog read, releases the pointer
// subscription and resets all state. A read that completes afterwards is
// discarded.
func (m *Model) Unmount() {
	if !m.live {
		return
	}
	m.live = false

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.sub.Release()
	m.sub = nil

	m.input.Blur()
	m.input.Reset()
	m.catalog = nil
	m.suggestions = nil
	m.visible = false
	m.highlight = -1
}

func (m *Model) fetch(ctx context.Context, instance, mount uint64) tea.Cmd {
	if m.source == nil {
		return nil
	}
	src := m.source
	return func() tea.Msg {
		dests, err := src.Destinations(ctx)
		return catalogMsg{instance: instance, mount: mount, dests: dests, err: err}
	}
}

// Update handles messages addressed to the field
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case catalogMsg:
		m.handleCatalog(msg)
		return nil

	case tea.KeyMsg:
		if !m.live {
			return nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.live || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if i := m.rowAt(msg.X, msg.Y); i >= 0 {
			return m.selectAt(i)
		}
		return nil
	}

	if !m.live {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleCatalog(msg catalogMsg) {
	if msg.instance != m.id || msg.mount != m.mount || !m.live {
		log.Debug().Uint64("mount", msg.mount).Msg("suggest: dropping catalog result for stale mount")
		return
	}
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("error fetching destinations, suggestions disabled")
		return
	}
	m.catalog = msg.dests
	m.recompute()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next) && m.Visible():
		m.highlight = (m.highlight + 1) % len(m.suggestions)
		return nil
	case key.Matches(msg, m.keys.Prev) && m.Visible():
		m.highlight = (m.highlight - 1 + len(m.suggestions)) % len(m.suggestions)
		return nil
	case key.Matches(msg, m.keys.Select) && m.Visible():
		return m.selectAt(m.highlight)
	case key.Matches(msg, m.keys.Dismiss):
		m.visible = false
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.queryChanged(after)
	}
	return cmd
}

func (m *Model) queryChanged(query string) {
	if m.onSearch != nil {
		m.onSearch(query)
	}
	m.recompute()
}

// recompute rebuilds the suggestions from the current query and catalog
func (m *Model) recompute() {
	m.suggestions = Filter(m.input.Value(), m.catalog)
	m.visible = len(m.suggestions) > 0
	if m.visible {
		m.highlight = 0
	} else {
		m.highlight = -1
	}
}

// selectAt hides the dropdown and clears the query without notifying
// OnSearch, then reports the pick.
func (m *Model) selectAt(i int) tea.Cmd {
	if i < 0 || i >= len(m.suggestions) {
		return nil
	}
	dest := m.suggestions[i]

	m.input.Reset()
	m.recompute()

	route := domain.Route(m.routePrefix, dest)
	return func() tea.Msg {
		return SelectedMsg{Destination: dest, Route: route}
	}
}

func (m *Model) handlePointer(ev pointer.Event) {
	if !m.live {
		return
	}
	if !m.Bounds().Contains(ev.X, ev.Y) {
		m.visible = false
	}
}

// SetOrigin places the field's top-left corner at terminal cell (x, y)
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// SetWidth sets the total width in cells, borders included
func (m *Model) SetWidth(w int) {
	if w <= 0 {
		w = defaultWidth
	}
	m.width = w
	m.input.Width = max(w-7, 1)
}

// Bounds is the rectangle of cells the field currently occupies
func (m *Model) Bounds() pointer.Rect {
	h := fieldHeight
	if m.Visible() {
		h += len(m.suggestions) + 2
	}
	return pointer.Rect{X: m.x, Y: m.y, Width: m.width, Height: h}
}

// rowAt returns the suggestion index under (x, y), or -1
func (m *Model) rowAt(x, y int) int {
	if !m.Visible() {
		return -1
	}
	if x <= m.x || x >= m.x+m.width-1 {
		return -1
	}
	i := y - (m.y + fieldHeight + 1)
	if i < 0 || i >= len(m.suggestions) {
		return -1
	}
	return i
}

// Query returns the current text
func (m *Model) Query() string { return m.input.Value() }

// Suggestions returns a copy of the current suggestions
func (m *Model) Suggestions() []domain.Destination {
	return append([]domain.Destination(nil), m.suggestions...)
}

// Visible reports whether the dropdown is shown
func (m *Model) Visible() bool { return m.visible && len(m.suggestions) > 0 }

// Highlight returns the highlighted suggestion index, or -1
func (m *Model) Highlight() int { return m.highlight }

// CatalogSize returns the number of destinations loaded
func (m *Model) CatalogSize() int { return len(m.catalog) }

// Live reports whether the model is mounted
func (m *Model) Live() bool { return m.live }

// Keys returns the dropdown key bindings
func (m *Model) Keys() KeyMap { return m.keys }

// View renders the field and, when visible, the dropdown below it
func (m *Model) View() string {
	field := m.styles.Field.
		Width(m.width - 2).
		Render(m.styles.Icon.Render(searchIcon) + m.input.View())

	if !m.Visible() {
		return field
	}

	inner := m.width - 2
	textWidth := max(inner-2, 1)
	rows := make([]string, len(m.suggestions))
	for i, d := range m.suggestions {
		rows[i] = m.renderRow(d, i == m.highlight, inner, textWidth)
	}
	dropdown := m.styles.Dropdown.Width(inner).Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, field, dropdown)
}

func (m *Model) renderRow(d domain.Destination, highlighted bool, inner, textWidth int) string {
	text := runewidth.Truncate(d.Name, textWidth, "…")
	if d.Country != "" {
		extra := " · " + d.Country
		if runewidth.StringWidth(text)+runewidth.StringWidth(extra) <= textWidth {
			text += m.styles.Dim.Render(extra)
		}
	}

	style := m.styles.Row
	if highlighted {
		style = m.styles.Highlight
	}
	return style.Width(inner).Render(text)
}
