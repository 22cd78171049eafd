package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the application shell
type Styles struct {
	Main   lipgloss.Style
	Title  lipgloss.Style
	Status lipgloss.Style
	Route  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Main: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Route:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}
