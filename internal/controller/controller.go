// Package controller applies commands to the directory tree and keeps the
// composed rows and the pager in step with it.
//
// A command that targets the cursor always resolves the cursor row to a
// tree index right before mutating the tree, so an index is never reused
// after the tree changed shape.
package controller

import (
	"twilight/internal/composer"
	"twilight/internal/config"
	"twilight/internal/errors"
	"twilight/internal/log"
	"twilight/internal/pager"
	"twilight/internal/pathnode"
	"twilight/pkg/types"
)

// Controller owns the tree, the rows composed from it and the pager.
type Controller struct {
	cfg      *config.Config
	pager    *pager.Pager
	composer *composer.Composer
	compare  pathnode.Comparator
	reader   pathnode.DirReader
	launcher Launcher

	root   *pathnode.PathNode
	rows   []composer.Row
	status string
	failed bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithReader replaces the filesystem reader. Ignore patterns still apply.
func WithReader(r pathnode.DirReader) Option {
	return func(c *Controller) { c.reader = r }
}

// WithLauncher replaces the file action launcher.
func WithLauncher(l Launcher) Option {
	return func(c *Controller) { c.launcher = l }
}

// New builds the tree for cfg.Setup.WorkingDir with the root expanded.
// Failing to open the root is fatal and returned to the caller.
func New(cfg *config.Config, p *pager.Pager, opts ...Option) (*Controller, error) {
	compare, err := pathnode.ComparatorFor(cfg.Behavior.PathNodeSort)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:      cfg,
		pager:    p,
		composer: composer.New(cfg.Composition),
		compare:  compare,
		reader:   pathnode.OSReader{},
		launcher: ShellLauncher{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.reader, err = pathnode.NewFilteredReader(c.reader, cfg.Behavior.Ignore)
	if err != nil {
		return nil, err
	}

	root, err := c.buildRoot()
	if err != nil {
		return nil, err
	}
	c.root = root
	c.rows = c.composer.ComposePathNode(c.root)
	return c, nil
}

func (c *Controller) buildRoot() (*pathnode.PathNode, error) {
	root, err := pathnode.New(c.cfg.Setup.WorkingDir)
	if err != nil {
		return nil, err
	}
	if err := root.ExpandDir(types.RootIndex(), c.compare, c.reader); err != nil {
		return nil, err
	}
	return root, nil
}

// Dispatch runs cmd to completion and redraws. Errors are logged and kept
// as the status message; the tree is left as it was before the command.
// CmdQuit and CmdNone do nothing here.
func (c *Controller) Dispatch(cmd types.Command) error {
	var err error
	c.status, c.failed = "", false

	switch cmd {
	case types.CmdEntryUp:
		c.move(-1)
	case types.CmdEntryDown:
		c.move(1)
	case types.CmdPageUp:
		c.move(-c.pager.ViewportHeight())
	case types.CmdPageDown:
		c.move(c.pager.ViewportHeight())
	case types.CmdExpandDir:
		err = c.mutate(func(idx types.TreeIndex) error {
			return c.root.ExpandDir(idx, c.compare, c.reader)
		})
	case types.CmdCollapseDir:
		err = c.mutate(c.root.CollapseDir)
	case types.CmdFileAction:
		err = c.fileAction()
	case types.CmdReload:
		err = c.Reload()
	case types.CmdQuit, types.CmdNone:
		return nil
	default:
		err = errors.Newf("unknown command %d", int(cmd))
	}

	if err != nil {
		c.report(cmd, err)
	}
	return err
}

func (c *Controller) move(delta int) {
	c.pager.Update(delta, c.rows, c.root.GetAbsolutePath())
}

// mutate resolves the cursor row, applies fn to it and redraws against the
// new rows.
func (c *Controller) mutate(fn func(types.TreeIndex) error) error {
	if len(c.rows) == 0 {
		return errors.ErrEmptyListing
	}

	idx := c.root.FlatIndexToTreeIndex(c.pager.CursorRow())
	if err := fn(idx); err != nil {
		return err
	}

	c.Refresh()
	return nil
}

func (c *Controller) fileAction() error {
	row, ok := c.Selected()
	if !ok {
		return errors.ErrEmptyListing
	}
	if row.IsDir() {
		return nil
	}
	return c.launcher.Launch(ActionCommand(c.cfg.Behavior.FileAction, row.Path))
}

// Reload rebuilds the tree from the working directory and expands the root
// level only. Expand state below the root is not restored. On failure the
// current tree is kept.
func (c *Controller) Reload() error {
	root, err := c.buildRoot()
	if err != nil {
		return err
	}
	c.root = root
	c.Refresh()
	log.LogWithFields(log.F("root", root.AbsolutePath), log.F("rows", len(c.rows))).Debug("reloaded")
	return nil
}

// Refresh recomposes the rows and redraws without moving the cursor.
func (c *Controller) Refresh() {
	c.rows = c.composer.ComposePathNode(c.root)
	c.pager.Update(0, c.rows, c.root.GetAbsolutePath())
}

// Resize adapts the viewport to a new terminal height and redraws.
func (c *Controller) Resize(height int) {
	c.pager.SetTerminalHeight(height)
	c.Refresh()
}

func (c *Controller) report(cmd types.Command, err error) {
	entry := log.LogWithError(err).With(log.F("command", cmd.String()))
	if errors.IsStaleIndex(err) {
		entry.Error("tree index resolved against a changed tree")
	} else {
		entry.Warn("command failed")
	}
	c.status, c.failed = err.Error(), true
}

// Rows returns the current listing.
func (c *Controller) Rows() []composer.Row { return c.rows }

// Root returns the tree.
func (c *Controller) Root() *pathnode.PathNode { return c.root }

// Status returns the message left by the last command, if any.
func (c *Controller) Status() string { return c.status }

// Failed reports whether the status message is an error.
func (c *Controller) Failed() bool { return c.failed }

// SetStatus replaces the status message with an informational one.
func (c *Controller) SetStatus(msg string) { c.status, c.failed = msg, false }

// Selected returns the row under the cursor.
func (c *Controller) Selected() (composer.Row, bool) {
	row := c.pager.CursorRow()
	if row < 0 || row >= len(c.rows) {
		return composer.Row{}, false
	}
	return c.rows[row], true
}

// ExpandedDirs lists the directories whose contents are on screen.
func (c *Controller) ExpandedDirs() []string {
	return c.root.ExpandedDirs()
}
