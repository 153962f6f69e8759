package components

import (
	"strings"
	"testing"

	"twilight/internal/composer"
	"twilight/internal/config"
	"twilight/internal/pager"
	"twilight/internal/tui/styles"
	"twilight/pkg/testutils"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(rows ...string) pager.Frame {
	f := pager.Frame{Title: "/home/user", ViewportHeight: 4, Total: len(rows)}
	for _, text := range rows {
		f.Rows = append(f.Rows, composer.Row{Name: strings.TrimSpace(text), Text: text})
	}
	return f
}

func TestScreenRendererPadsToViewport(t *testing.T) {
	s := NewScreenRenderer(styles.NewTheme(config.New().Color))
	s.SetWidth(20)
	s.Render(frame("▾ /home/user/", "  file"))

	lines := strings.Split(testutils.StripANSI(s.View()), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, 20, runewidth.StringWidth(l))
	}
	assert.True(t, strings.HasPrefix(lines[1], "  file"))
	assert.Equal(t, strings.Repeat(" ", 20), lines[3])
}

func TestScreenRendererTruncates(t *testing.T) {
	s := NewScreenRenderer(styles.NewTheme(config.New().Color))
	s.SetWidth(8)
	s.Render(frame("  a-very-long-name", "  日本語のファイル"))

	lines := strings.Split(testutils.StripANSI(s.View()), "\n")
	assert.Equal(t, "  a-ver…", lines[0])
	assert.Equal(t, 8, runewidth.StringWidth(lines[1]))
	assert.Equal(t, "/home/u…", testutils.StripANSI(s.Title()))
}

func TestScreenRendererWithoutWidth(t *testing.T) {
	s := NewScreenRenderer(styles.NewTheme(config.New().Color))
	f := frame("  one", "  two")
	f.Cursor = 1
	s.Render(f)

	assert.Equal(t, f, s.Frame())
	lines := strings.Split(testutils.StripANSI(s.View()), "\n")
	assert.Equal(t, []string{"  one", "  two", "", ""}, lines)
}
