package styles

import (
	"twilight/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the styles used to draw the browser
type Theme struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	File      lipgloss.Style
	Directory lipgloss.Style
	Cursor    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// NewTheme builds the styles from the configured colors. The cursor row
// swaps foreground and background.
func NewTheme(c config.Color) Theme {
	bg := lipgloss.Color(config.HexColor(c.Background))
	fg := lipgloss.Color(config.HexColor(c.Foreground))
	base := lipgloss.NewStyle().Foreground(fg).Background(bg)

	return Theme{
		App: base,
		Title: base.
			Bold(true),
		File:      base,
		Directory: base.Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(bg).
			Background(fg),
		Status: base.
			Faint(true),
		Error: base.
			Foreground(lipgloss.Color("#FF5F5F")),
		Help: base.
			Faint(true),
	}
}
