// Package tui runs the browser as a bubbletea program. The model turns key
// presses into commands for the controller and draws the frame the pager
// produced.
package tui

import (
	"fmt"

	"twilight/internal/config"
	"twilight/internal/controller"
	"twilight/internal/log"
	"twilight/internal/tui/components"
	"twilight/internal/tui/messages"
	"twilight/internal/tui/views"
	"twilight/internal/watch"
	"twilight/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model of the browser.
type Model struct {
	cfg     *config.Config
	ctrl    *controller.Controller
	screen  *components.ScreenRenderer
	status  *components.StatusBar
	keys    types.KeyMap
	watcher *watch.Watcher

	width    int
	showHelp bool
}

// New creates the model. screen must be the renderer the controller's
// pager draws through. watcher may be nil.
func New(cfg *config.Config, ctrl *controller.Controller, screen *components.ScreenRenderer, status *components.StatusBar, watcher *watch.Watcher) *Model {
	m := &Model{
		cfg:     cfg,
		ctrl:    ctrl,
		screen:  screen,
		status:  status,
		keys:    types.DefaultKeyMap(),
		watcher: watcher,
	}
	m.ctrl.Refresh()
	m.syncWatches()
	m.syncStatus()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return WaitForChange(m.watcher.Events())
}

// WaitForChange delivers the next watcher event as a message.
func WaitForChange(ch <-chan watch.ChangeEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.DirectoryChangeMsg{Change: ev}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.screen.SetWidth(msg.Width)
		m.ctrl.Resize(msg.Height)
		m.syncStatus()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.DirectoryChangeMsg:
		return m, m.handleChange(msg.Change)

	case messages.WatchClosedMsg:
		log.Debug("watcher closed")
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	cmd := m.keys.CommandFor(msg)
	switch cmd {
	case types.CmdNone:
		return m, nil
	case types.CmdQuit:
		return m, tea.Quit
	}

	// Failures are logged and kept as the controller's status
	_ = m.ctrl.Dispatch(cmd)
	if cmd.Mutates() {
		m.status.Invalidate()
		m.syncWatches()
	}
	m.syncStatus()
	return m, nil
}

func (m *Model) handleChange(ev watch.ChangeEvent) tea.Cmd {
	log.LogWithFields(log.F("dir", ev.Dir), log.F("name", ev.Name), log.F("op", ev.Op.String())).Debug("directory changed")

	if m.cfg.Behavior.AutoReload {
		_ = m.ctrl.Dispatch(types.CmdReload)
		m.status.Invalidate()
		m.syncWatches()
	} else {
		m.ctrl.SetStatus(fmt.Sprintf("%s changed, press r to reload", ev.Dir))
	}
	m.syncStatus()

	if m.watcher == nil {
		return nil
	}
	return WaitForChange(m.watcher.Events())
}

func (m *Model) syncWatches() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Sync(m.ctrl.ExpandedDirs()); err != nil {
		log.LogWithError(err).Warn("watch sync incomplete")
	}
}

func (m *Model) syncStatus() {
	if row, ok := m.ctrl.Selected(); ok {
		m.status.SetSelected(row)
	}
	msg := m.ctrl.Status()
	if msg == "" {
		m.status.SetText("")
		return
	}
	if m.ctrl.Failed() {
		m.status.SetError(msg)
		return
	}
	m.status.SetText(msg)
}

// Screen returns the listing renderer.
func (m *Model) Screen() *components.ScreenRenderer { return m.screen }

// StatusBar returns the status bar.
func (m *Model) StatusBar() *components.StatusBar { return m.status }

// ShowHelp reports whether the help line is shown.
func (m *Model) ShowHelp() bool { return m.showHelp }

// Width returns the terminal width.
func (m *Model) Width() int { return m.width }

// Padding returns the rows reserved above and below the listing.
func (m *Model) Padding() (top, bot int) {
	return m.cfg.Debug.PaddingTop, m.cfg.Debug.PaddingBot
}

// Controller returns the controller driving the listing.
func (m *Model) Controller() *controller.Controller { return m.ctrl }
