// Package ui hosts the destination picker in a Bubble Tea program.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"destpick/internal/config"
	"destpick/internal/eventbus"
	"destpick/internal/ui/pointer"
	"destpick/internal/ui/suggest"
)

// Screen position of the search field. The shell pads its content by one
// row and two columns, and the title plus a blank line sit above the field.
const (
	fieldX = 2
	fieldY = 3

	maxFieldWidth = 72
	minFieldWidth = 20
)

// Options configure the application model
type Options struct {
	Config *config.Config
	Source suggest.Source
	Bus    eventbus.EventBus
	// Picker makes the program quit as soon as a destination is chosen
	Picker bool
}

// Model is the root model of the picker program
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	picker bool

	hub    *pointer.Hub
	input  *suggest.Model
	help   help.Model
	styles *Styles
	quit   key.Binding

	width  int
	height int

	status      string
	statusStyle int
	selected    *suggest.SelectedMsg
	quitting    bool
}

const (
	statusPlain = iota
	statusSuccess
)

// NewModel creates the root model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:    opts.Bus,
		config: cfg,
		picker: opts.Picker,
		hub:    pointer.NewHub(),
		help:   help.New(),
		styles: NewStyles(),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		status: "Loading destinations…",
	}

	m.input = suggest.New(suggest.Options{
		Source:      opts.Source,
		Hub:         m.hub,
		OnSearch:    m.publishQuery,
		Placeholder: cfg.UISettings.Placeholder,
		RoutePrefix: cfg.UISettings.RoutePrefix,
	})
	m.input.SetOrigin(fieldX, fieldY)

	return m
}

// publishQuery forwards every keystroke to the bus. No debouncing.
func (m *Model) publishQuery(query string) {
	if m.bus != nil {
		m.bus.Publish(eventbus.QueryChangedEvent{Query: query})
	}
}

// Init mounts the search field
func (m *Model) Init() tea.Cmd {
	return m.input.Mount()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(min(max(msg.Width-2*fieldX, minFieldWidth), maxFieldWidth))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, m.shutdown()
		}
		return m, m.input.Update(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.hub.Dispatch(pointer.Event{X: msg.X, Y: msg.Y})
		}
		return m, m.input.Update(msg)

	case suggest.SelectedMsg:
		return m, m.handleSelected(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m *Model) handleSelected(msg suggest.SelectedMsg) tea.Cmd {
	selected := msg
	m.selected = &selected
	m.status = "→ " + msg.Route
	m.statusStyle = statusSuccess

	if m.bus != nil {
		m.bus.Publish(eventbus.DestinationSelectedEvent{
			Destination: msg.Destination,
			Route:       msg.Route,
		})
	}

	if m.picker {
		return m.shutdown()
	}
	return nil
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.CatalogLoadedEvent:
		if m.selected == nil {
			m.status = fmt.Sprintf("%d destinations", ev.Count)
			m.statusStyle = statusPlain
		}
	case eventbus.CatalogFailedEvent:
		// The field works without a catalog; the failure is only logged.
		if m.selected == nil {
			m.status = ""
			m.statusStyle = statusPlain
		}
	}
}

func (m *Model) shutdown() tea.Cmd {
	m.quitting = true
	m.input.Unmount()
	return tea.Quit
}

// Selected returns the chosen destination, if any
func (m *Model) Selected() (suggest.SelectedMsg, bool) {
	if m.selected == nil {
		return suggest.SelectedMsg{}, false
	}
	return *m.selected, true
}

// Field exposes the search field
func (m *Model) Field() *suggest.Model {
	return m.input
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("destpick"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(append(m.input.Keys().ShortHelp(), m.quit)))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderStatus() string {
	switch m.statusStyle {
	case statusSuccess:
		return m.styles.Route.Render(m.status)
	default:
		return m.styles.Status.Render(m.status)
	}
}
