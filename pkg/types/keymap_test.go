package types

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestCommandFor(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Command
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, CmdEntryUp},
		{"k", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, CmdEntryUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, CmdEntryDown},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, CmdPageDown},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, CmdPageUp},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, CmdExpandDir},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, CmdCollapseDir},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, CmdFileAction},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, CmdReload},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, CmdQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit},
		{"help toggle", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, CmdNone},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.CommandFor(tt.msg))
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "expand_dir", CmdExpandDir.String())
	assert.Equal(t, "unknown", Command(99).String())
	assert.True(t, CmdReload.Mutates())
	assert.True(t, CmdCollapseDir.Mutates())
	assert.False(t, CmdEntryDown.Mutates())
}

func TestHelpBindings(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Len(t, keys.ShortHelp(), 7)
	assert.Len(t, keys.FullHelp(), 3)
}
