package types

// Command is the closed set of actions the browser core understands. Key
// input is mapped to a Command before it reaches the controller.
type Command int

const (
	CmdNone Command = iota
	CmdEntryUp
	CmdEntryDown
	CmdPageUp
	CmdPageDown
	CmdExpandDir
	CmdCollapseDir
	CmdFileAction
	CmdReload
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:        "none",
	CmdEntryUp:     "entry_up",
	CmdEntryDown:   "entry_down",
	CmdPageUp:      "page_up",
	CmdPageDown:    "page_down",
	CmdExpandDir:   "expand_dir",
	CmdCollapseDir: "collapse_dir",
	CmdFileAction:  "file_action",
	CmdReload:      "reload",
	CmdQuit:        "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Mutates reports whether the command can change the tree.
func (c Command) Mutates() bool {
	switch c {
	case CmdExpandDir, CmdCollapseDir, CmdReload:
		return true
	}
	return false
}
