// Package watch reports changes to the directories shown in the listing.
package watch

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"twilight/internal/errors"
	"twilight/internal/log"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent is an entry appearing in or leaving a watched directory.
type ChangeEvent struct {
	Dir       string
	Name      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// listingOps are the operations that change what a directory lists.
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher monitors the expanded directories using fsnotify
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering listing changes
	events chan ChangeEvent

	// Channel to signal stop, and the loop's exit
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a new directory watcher. Up to buffer events are queued
// before further events are dropped.
func New(buffer int) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if buffer < 1 {
		buffer = 1
	}

	return &Watcher{
		events:    make(chan ChangeEvent, buffer),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Sync makes the watched set equal to dirs. Directories that cannot be
// watched are skipped; the first such error is returned after the others
// have been applied.
func (w *Watcher) Sync(dirs []string) error {
	want := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		want[filepath.Clean(d)] = true
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	var firstErr error
	kept := w.directories[:0]
	for _, d := range w.directories {
		if want[d] {
			kept = append(kept, d)
			delete(want, d)
			continue
		}
		// The directory may already be gone, which also drops the watch
		if err := w.fsWatcher.Remove(d); err != nil {
			log.LogWithFields(log.F("directory", d)).Debugf("remove watch: %v", err)
		}
	}
	w.directories = kept

	added := make([]string, 0, len(want))
	for d := range want {
		added = append(added, d)
	}
	slices.Sort(added)

	for _, d := range added {
		if err := w.fsWatcher.Add(d); err != nil {
			log.LogWithFields(log.F("directory", d), log.F("error", err)).Warn("cannot watch directory")
			if firstErr == nil {
				firstErr = errors.NewFileError("cannot watch directory", d, errors.PathUnreadable, err)
			}
			continue
		}
		w.directories = append(w.directories, d)
		log.LogWithFields(log.F("directory", d)).Debug("watching directory")
	}
	return firstErr
}

// Events returns the channel that delivers listing changes. It is closed
// by Stop.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Start begins forwarding fsnotify events. A watcher cannot be restarted
// after Stop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	select {
	case <-w.stopChan:
		w.mutex.Unlock()
		return errors.New("watcher stopped")
	default:
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	log.Debug("watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&listingOps == 0 {
				continue
			}

			change := ChangeEvent{
				Dir:       filepath.Dir(event.Name),
				Name:      filepath.Base(event.Name),
				Op:        event.Op,
				Timestamp: time.Now(),
			}

			// Send non-blockingly so a busy UI never stalls the watcher
			select {
			case w.events <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Warn("event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the event channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		// Never started: release fsnotify and end consumers once
		select {
		case <-w.stopChan:
		default:
			close(w.stopChan)
			w.fsWatcher.Close()
			close(w.events)
		}
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}
	<-w.done
	w.running = false
	log.Debug("watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return slices.Clone(w.directories)
}
