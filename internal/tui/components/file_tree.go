package components

import (
	"strings"

	"twilight/internal/composer"
	"twilight/internal/pager"
	"twilight/internal/tui/styles"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// ScreenRenderer keeps the last frame produced by the pager and draws it
// as the tree listing.
type ScreenRenderer struct {
	theme styles.Theme
	frame pager.Frame
	width int
}

// NewScreenRenderer creates a renderer drawing with theme.
func NewScreenRenderer(theme styles.Theme) *ScreenRenderer {
	return &ScreenRenderer{theme: theme}
}

// Render implements pager.Renderer.
func (s *ScreenRenderer) Render(f pager.Frame) {
	s.frame = f
}

// Frame returns the last rendered frame.
func (s *ScreenRenderer) Frame() pager.Frame {
	return s.frame
}

// SetWidth sets the terminal width. Zero disables truncation.
func (s *ScreenRenderer) SetWidth(w int) {
	s.width = w
}

// Title draws the title line.
func (s *ScreenRenderer) Title() string {
	return s.theme.Title.Render(s.fit(s.frame.Title))
}

// View draws the visible rows, padded with blank lines to the viewport
// height. The cursor row is highlighted.
func (s *ScreenRenderer) View() string {
	lines := make([]string, 0, s.frame.ViewportHeight)
	for i, row := range s.frame.Rows {
		lines = append(lines, s.line(row, i == s.frame.Cursor))
	}
	for len(lines) < s.frame.ViewportHeight {
		lines = append(lines, s.theme.App.Render(s.fit("")))
	}
	return strings.Join(lines, "\n")
}

func (s *ScreenRenderer) line(row composer.Row, cursor bool) string {
	text := s.fit(row.Text)
	switch {
	case cursor:
		return s.theme.Cursor.Render(text)
	case row.IsDir():
		return s.theme.Directory.Render(text)
	default:
		return s.theme.File.Render(text)
	}
}

// fit truncates text to the terminal width and pads it so the background
// color covers the whole line.
func (s *ScreenRenderer) fit(text string) string {
	if s.width <= 0 {
		return text
	}
	return runewidth.FillRight(runewidth.Truncate(text, s.width, ellipsis), s.width)
}
