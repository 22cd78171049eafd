package suggest

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the field and its dropdown
type Styles struct {
	Field     lipgloss.Style
	Icon      lipgloss.Style
	Dropdown  lipgloss.Style
	Row       lipgloss.Style
	Highlight lipgloss.Style
	Dim       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Icon: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		Row:       lipgloss.NewStyle().Padding(0, 1),
		Highlight: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")).Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
	}
}
