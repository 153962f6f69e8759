package types

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the browser. Each binding maps to
// exactly one Command, except Help which only toggles the help line.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Expand     key.Binding
	Collapse   key.Binding
	FileAction key.Binding
	Reload     key.Binding
	Quit       key.Binding
	Help       key.Binding
}

// DefaultKeyMap mirrors the classic bindings: arrows move and fold, enter
// runs the file action, r reloads and q quits. Vim keys are accepted too.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		FileAction: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// CommandFor maps a key press to its command. Unbound keys and the help
// toggle map to CmdNone.
func (k KeyMap) CommandFor(msg fmt.Stringer) Command {
	switch {
	case key.Matches(msg, k.Quit):
		return CmdQuit
	case key.Matches(msg, k.Up):
		return CmdEntryUp
	case key.Matches(msg, k.Down):
		return CmdEntryDown
	case key.Matches(msg, k.PageUp):
		return CmdPageUp
	case key.Matches(msg, k.PageDown):
		return CmdPageDown
	case key.Matches(msg, k.Expand):
		return CmdExpandDir
	case key.Matches(msg, k.Collapse):
		return CmdCollapseDir
	case key.Matches(msg, k.FileAction):
		return CmdFileAction
	case key.Matches(msg, k.Reload):
		return CmdReload
	}
	return CmdNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Collapse, k.FileAction, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Expand, k.Collapse, k.FileAction},
		{k.Reload, k.Help, k.Quit},
	}
}
