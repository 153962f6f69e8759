package common

import (
	"twilight/internal/tui/components"
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Screen() *components.ScreenRenderer
	StatusBar() *components.StatusBar
	ShowHelp() bool
	Width() int
	Padding() (top, bot int)
}
