package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("#101F38")
	Accent  = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#8A94A6")
	Border  = lipgloss.Color("#2A3850")
	Warning = lipgloss.Color("#FFC107")
)

// Styles groups every lipgloss style the browser renders with.
type Styles struct {
	Title     lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Label     lipgloss.Style
	Active    lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Card      lipgloss.Style
	CardName  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Accent),
		StatLabel: lipgloss.NewStyle().Foreground(Muted),
		StatValue: lipgloss.NewStyle().Bold(true),
		Label:     lipgloss.NewStyle().Foreground(Muted),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Help:      lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(Warning),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			Width(cardWidth),
		CardName: lipgloss.NewStyle().Bold(true),
	}
}
