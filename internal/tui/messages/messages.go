// Package messages holds the bubbletea messages produced outside the model.
package messages

import (
	"twilight/internal/watch"
)

// DirectoryChangeMsg reports that a listed directory gained or lost an entry.
type DirectoryChangeMsg struct {
	Change watch.ChangeEvent
}

// WatchClosedMsg is sent once the watcher's event channel is closed.
type WatchClosedMsg struct{}
