package components

import (
	"os"
	"strings"

	"twilight/internal/composer"
	"twilight/internal/tui/styles"
	"twilight/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/mattn/go-runewidth"
)

// StatusBar shows details of the selected entry, the last message and,
// when toggled, the key help.
type StatusBar struct {
	theme styles.Theme
	help  help.Model
	keys  types.KeyMap

	path    string
	details string
	text    string
	isError bool
}

func NewStatusBar(theme styles.Theme, keys types.KeyMap) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.ShortDesc = theme.Help
	h.Styles.ShortSeparator = theme.Help

	return &StatusBar{
		theme: theme,
		help:  h,
		keys:  keys,
	}
}

// SetSelected describes row. Files get their size and MIME type; the
// lookup is skipped when the selection did not change.
func (s *StatusBar) SetSelected(row composer.Row) {
	if row.Path == s.path {
		return
	}
	s.path = row.Path
	s.details = Describe(row)
}

// Invalidate forces the next SetSelected to look the entry up again.
func (s *StatusBar) Invalidate() {
	s.path = ""
}

// Describe returns the detail text for row. Only regular files are opened
// for MIME detection; pipes and devices can block a reader indefinitely.
func Describe(row composer.Row) string {
	if row.IsDir() {
		return "directory"
	}

	info, err := os.Stat(row.Path)
	if err != nil {
		if li, lerr := os.Lstat(row.Path); lerr == nil && li.Mode()&os.ModeSymlink != 0 {
			return "broken symlink"
		}
		return "unreadable"
	}

	mode := info.Mode()
	switch {
	case mode.IsRegular():
	case mode&os.ModeNamedPipe != 0:
		return "fifo"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode&os.ModeCharDevice != 0:
		return "character device"
	case mode&os.ModeDevice != 0:
		return "block device"
	default:
		return "special file"
	}

	parts := []string{humanize.Bytes(uint64(info.Size()))}
	if mt, err := mimetype.DetectFile(row.Path); err == nil {
		parts = append(parts, mt.String())
	}
	parts = append(parts, humanize.Time(info.ModTime()))
	return strings.Join(parts, " · ")
}

// SetText sets a status message. An empty text clears it.
func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

// SetError sets an error message.
func (s *StatusBar) SetError(text string) {
	s.text = text
	s.isError = text != ""
}

// Text returns the current message.
func (s *StatusBar) Text() string {
	return s.text
}

// View draws one line of at most width columns. The help line replaces
// the status while showHelp is set.
func (s *StatusBar) View(width int, showHelp bool) string {
	if showHelp {
		s.help.Width = width
		return s.help.View(s.keys)
	}

	line := s.details
	style := s.theme.Status
	if s.text != "" {
		line = s.text
		if s.isError {
			style = s.theme.Error
		}
	}
	if width > 0 {
		line = runewidth.FillRight(runewidth.Truncate(line, width, ellipsis), width)
	}
	return style.Render(line)
}
