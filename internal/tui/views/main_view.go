package views

import (
	"strings"

	"twilight/internal/tui/common"
)

// RenderMainView lays out the screen: the title in the top padding rows,
// the listing, then the status bar in the bottom padding rows.
func RenderMainView(m common.ModelReader) string {
	top, bot := m.Padding()
	width := m.Width()
	screen := m.Screen()

	lines := make([]string, 0, top+bot+1)
	for i := 0; i < top; i++ {
		if i == 0 {
			lines = append(lines, screen.Title())
			continue
		}
		lines = append(lines, "")
	}

	lines = append(lines, screen.View())

	for i := 0; i < bot; i++ {
		if i == 0 {
			lines = append(lines, m.StatusBar().View(width, m.ShowHelp()))
			continue
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
