package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"twilight/internal/config"
	"twilight/internal/errors"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	validYAML = `
behavior:
  file_action: "xdg-open %s"
  path_node_sort: dirs_bot_simple
  scrolling: center
  ignore: [".git", "*.o"]
composition:
  indent: 4
  show_indent: true
debug:
  padding_top: 2
setup:
  working_dir: /srv
`
	legacyTOML = `
[behavior]
file_action = "less %s"
scrolling = "center"

[composition]
use_utf8 = false

[debug]
spacing_bot = 3
spacing_top = 3
`
	invalidSyntaxYAML = `
behavior:
  file_action: "unterminated
composition: [
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid yaml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestFile(t, "config.yaml", validYAML))
		require.NoError(t, err)

		assert.Equal(t, "xdg-open %s", cfg.Behavior.FileAction)
		assert.Equal(t, config.SortDirsBot, cfg.Behavior.PathNodeSort)
		assert.Equal(t, config.ScrollCenter, cfg.Behavior.Scrolling)
		assert.Equal(t, []string{".git", "*.o"}, cfg.Behavior.Ignore)
		assert.Equal(t, 4, cfg.Composition.Indent)
		assert.True(t, cfg.Composition.ShowIndent)
		assert.Equal(t, 2, cfg.Debug.PaddingTop)
		assert.Equal(t, "/srv", cfg.Setup.WorkingDir)

		// Keys absent from the file keep their defaults
		assert.True(t, cfg.Composition.UseUTF8)
		assert.Equal(t, 1, cfg.Debug.PaddingBot)
		assert.Equal(t, "000000", cfg.Color.Background)
	})

	t.Run("load legacy toml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestFile(t, "rc.toml", legacyTOML))
		require.NoError(t, err)

		assert.Equal(t, "less %s", cfg.Behavior.FileAction)
		assert.Equal(t, config.ScrollCenter, cfg.Behavior.Scrolling)
		assert.False(t, cfg.Composition.UseUTF8)
		assert.Equal(t, 3, cfg.Debug.SpacingBot)
		assert.Equal(t, 3, cfg.Debug.SpacingTop)
		assert.Equal(t, config.SortDirsTop, cfg.Behavior.PathNodeSort)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err, "a missing file yields the defaults")
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestFile(t, "bad.yaml", invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		param  string
	}{
		{"unknown sort", func(c *config.Config) { c.Behavior.PathNodeSort = "size" }, "behavior.path_node_sort"},
		{"unknown scrolling", func(c *config.Config) { c.Behavior.Scrolling = "smooth" }, "behavior.scrolling"},
		{"bad glob", func(c *config.Config) { c.Behavior.Ignore = []string{"[a-"} }, "behavior.ignore"},
		{"bad color", func(c *config.Config) { c.Color.Foreground = "white" }, "color.foreground"},
		{"zero indent", func(c *config.Config) { c.Composition.Indent = 0 }, "composition.indent"},
		{"negative padding", func(c *config.Config) { c.Debug.PaddingTop = -1 }, "debug.padding_top"},
		{"negative spacing", func(c *config.Config) { c.Debug.SpacingBot = -2 }, "debug.spacing_bot"},
		{"empty working dir", func(c *config.Config) { c.Setup.WorkingDir = "" }, "setup.working_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var configErr *errors.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.param, configErr.Param())
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, config.New().Validate())
	})

	t.Run("hex color with hash", func(t *testing.T) {
		cfg := config.New()
		cfg.Color.Background = "#1d2021"
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, "#1d2021", config.HexColor(cfg.Color.Background))
		assert.Equal(t, "#FFFFFF", config.HexColor(cfg.Color.Foreground))
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Composition.Indent = 3
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Composition.Indent)
}

func TestSaveConfigErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	path := filepath.Join(blocker, "config.yaml")
	err := config.SaveConfig(config.New(), path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.Param())
}

func TestFlags(t *testing.T) {
	newFlagSet := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("twilight", pflag.ContinueOnError)
		config.RegisterFlags(fs)
		return fs
	}

	t.Run("changed flags override", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{
			"--behavior.file_action=vim %s",
			"--behavior.scrolling=center",
			"--behavior.ignore=.git,node_modules",
			"--composition.indent=3",
			"--composition.use_utf8=false",
			"--debug.enabled",
			"--debug.spacing_top=2",
			"--setup.working_dir=/tmp",
		}))

		cfg := config.New()
		require.NoError(t, config.ApplyFlags(fs, cfg))
		assert.Equal(t, "vim %s", cfg.Behavior.FileAction)
		assert.Equal(t, config.ScrollCenter, cfg.Behavior.Scrolling)
		assert.Equal(t, []string{".git", "node_modules"}, cfg.Behavior.Ignore)
		assert.Equal(t, 3, cfg.Composition.Indent)
		assert.False(t, cfg.Composition.UseUTF8)
		assert.True(t, cfg.Debug.Enabled)
		assert.Equal(t, 2, cfg.Debug.SpacingTop)
		assert.Equal(t, "/tmp", cfg.Setup.WorkingDir)
	})

	t.Run("unchanged flags keep file values", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestFile(t, "config.yaml", validYAML))
		require.NoError(t, err)

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--debug.padding_bot=0"}))
		require.NoError(t, config.ApplyFlags(fs, cfg))

		assert.Equal(t, 4, cfg.Composition.Indent)
		assert.Equal(t, "/srv", cfg.Setup.WorkingDir)
		assert.Equal(t, 0, cfg.Debug.PaddingBot)
	})

	t.Run("invalid value after override", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--behavior.path_node_sort=random"}))
		err := config.ApplyFlags(fs, config.New())
		assert.True(t, errors.IsInvalidConfig(err))
	})
}
