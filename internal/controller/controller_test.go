package controller

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"twilight/internal/composer"
	"twilight/internal/config"
	"twilight/internal/errors"
	"twilight/internal/pager"
	"twilight/pkg/testutils"
	"twilight/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	frames []pager.Frame
}

func (r *recordingRenderer) Render(f pager.Frame) {
	r.frames = append(r.frames, f)
}

type fakeLauncher struct {
	commands []string
	err      error
}

func (l *fakeLauncher) Launch(command string) error {
	l.commands = append(l.commands, command)
	return l.err
}

type fixture struct {
	ctrl     *Controller
	renderer *recordingRenderer
	launcher *fakeLauncher
	root     string
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	root := testutils.ScenarioTree(t)

	cfg := config.New()
	cfg.Setup.WorkingDir = root
	cfg.Behavior.FileAction = "open %s"
	if mutate != nil {
		mutate(cfg)
	}

	f := &fixture{renderer: &recordingRenderer{}, launcher: &fakeLauncher{}, root: root}
	p := pager.New(cfg, f.renderer)
	ctrl, err := New(cfg, p, WithLauncher(f.launcher))
	require.NoError(t, err)
	ctrl.Refresh()
	f.ctrl = ctrl
	return f
}

func (f *fixture) names() []string {
	return composer.Names(f.ctrl.Rows())
}

func (f *fixture) selected(t *testing.T) string {
	t.Helper()
	row, ok := f.ctrl.Selected()
	require.True(t, ok)
	return row.Name
}

func TestScenarioThroughCommands(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{f.root, "dir1", "file1"}, f.names())

	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))
	assert.Equal(t, "dir1", f.selected(t))

	require.NoError(t, f.ctrl.Dispatch(types.CmdExpandDir))
	assert.Equal(t, []string{f.root, "dir1", "file2", "file1"}, f.names())
	assert.Equal(t, "dir1", f.selected(t), "cursor stays on the expanded row")

	require.NoError(t, f.ctrl.Dispatch(types.CmdCollapseDir))
	assert.Equal(t, []string{f.root, "dir1", "file1"}, f.names())

	last := f.renderer.frames[len(f.renderer.frames)-1]
	assert.Equal(t, f.root, last.Title)
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 1, last.Cursor)
}

func TestNavigationWraps(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryUp))
	assert.Equal(t, "file1", f.selected(t))
	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))
	assert.Equal(t, f.root, f.selected(t))

	require.NoError(t, f.ctrl.Dispatch(types.CmdPageDown))
	assert.Equal(t, "file1", f.selected(t))
	require.NoError(t, f.ctrl.Dispatch(types.CmdPageUp))
	assert.Equal(t, f.root, f.selected(t))
}

func TestCollapseRootThenExpand(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.ctrl.Dispatch(types.CmdCollapseDir))
	assert.Equal(t, []string{f.root}, f.names())
	require.NoError(t, f.ctrl.Dispatch(types.CmdExpandDir))
	assert.Equal(t, []string{f.root, "dir1", "file1"}, f.names())
}

func TestExpandOnFileIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryUp))

	require.NoError(t, f.ctrl.Dispatch(types.CmdExpandDir))
	assert.Len(t, f.ctrl.Rows(), 3)
	assert.Empty(t, f.ctrl.Status())
}

func TestExpandFailureKeepsTree(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "dir1")))

	err := f.ctrl.Dispatch(types.CmdExpandDir)
	require.Error(t, err)
	assert.True(t, errors.IsPathNotFound(err))
	assert.Equal(t, []string{f.root, "dir1", "file1"}, f.names())
	assert.Contains(t, f.ctrl.Status(), "dir1")

	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))
	assert.Empty(t, f.ctrl.Status(), "next command clears the status")
}

func TestFileAction(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.ctrl.Dispatch(types.CmdEntryUp))

		require.NoError(t, f.ctrl.Dispatch(types.CmdFileAction))
		assert.Equal(t, []string{"open " + filepath.Join(f.root, "file1")}, f.launcher.commands)
	})

	t.Run("directory is ignored", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))

		require.NoError(t, f.ctrl.Dispatch(types.CmdFileAction))
		assert.Empty(t, f.launcher.commands)
	})

	t.Run("launch failure is reported", func(t *testing.T) {
		f := newFixture(t, nil)
		f.launcher.err = errors.NewKind(errors.ActionFailed, "failed to start file action", os.ErrPermission)
		require.NoError(t, f.ctrl.Dispatch(types.CmdEntryUp))

		err := f.ctrl.Dispatch(types.CmdFileAction)
		assert.Equal(t, errors.ActionFailed, errors.KindOf(err))
		assert.Contains(t, f.ctrl.Status(), "failed to start file action")
	})
}

func TestReload(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryDown))
	require.NoError(t, f.ctrl.Dispatch(types.CmdExpandDir))
	require.Len(t, f.ctrl.Rows(), 4)

	testutils.CreateTree(t, f.root, "file0")
	require.NoError(t, f.ctrl.Dispatch(types.CmdReload))

	assert.Equal(t, []string{f.root, "dir1", "file0", "file1"}, f.names(), "only the root level is expanded again")
	assert.Equal(t, []string{f.root}, f.ctrl.ExpandedDirs())

	t.Run("missing root keeps the old tree", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(f.root))
		err := f.ctrl.Dispatch(types.CmdReload)
		assert.True(t, errors.IsPathNotFound(err))
		assert.Len(t, f.ctrl.Rows(), 4)
	})
}

func TestResizeKeepsCursorVisible(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Debug.PaddingTop = 0
		c.Debug.PaddingBot = 0
	})
	require.NoError(t, f.ctrl.Dispatch(types.CmdEntryUp))

	f.ctrl.Resize(1)
	last := f.renderer.frames[len(f.renderer.frames)-1]
	require.Len(t, last.Rows, 1)
	assert.Equal(t, "file1", last.Rows[0].Name)
	assert.Equal(t, 0, last.Cursor)
}

func TestIgnorePatterns(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Behavior.Ignore = []string{"file*"}
	})
	assert.Equal(t, []string{f.root, "dir1"}, f.names())
}

func TestNewErrors(t *testing.T) {
	t.Run("missing working directory", func(t *testing.T) {
		cfg := config.New()
		cfg.Setup.WorkingDir = filepath.Join(t.TempDir(), "missing")
		_, err := New(cfg, pager.New(cfg, nil))
		assert.True(t, errors.IsPathNotFound(err))
	})

	t.Run("unknown sort policy", func(t *testing.T) {
		cfg := config.New()
		cfg.Behavior.PathNodeSort = "by_size"
		_, err := New(cfg, pager.New(cfg, nil))
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestShellLauncher(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, ShellLauncher{Shell: "sh"}.Launch(ActionCommand("echo launched > %s", out)))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && string(data) == "launched\n"
	}, 5*time.Second, 20*time.Millisecond)

	err := ShellLauncher{Shell: filepath.Join(t.TempDir(), "no-shell")}.Launch("true")
	assert.Equal(t, errors.ActionFailed, errors.KindOf(err))
}

func TestActionCommand(t *testing.T) {
	assert.Equal(t, "vim /a/b", ActionCommand("vim %s", "/a/b"))
	assert.Equal(t, "diff /x /x", ActionCommand("diff %s %s", "/x"))
	assert.Equal(t, "true", ActionCommand("true", "/x"))
}
