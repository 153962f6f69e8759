package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"twilight/internal/errors"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Sort policies accepted by behavior.path_node_sort.
const (
	SortDirsTop = "dirs_top_simple"
	SortDirsBot = "dirs_bot_simple"
	SortNone    = "none"
)

// Scrolling policies accepted by behavior.scrolling.
const (
	ScrollEditor = "editor"
	ScrollCenter = "center"
)

// Behavior controls sorting, scrolling and the file action.
type Behavior struct {
	FileAction   string   `yaml:"file_action" toml:"file_action"`       // Shell command, %s is the selected path
	PathNodeSort string   `yaml:"path_node_sort" toml:"path_node_sort"` // dirs_top_simple, dirs_bot_simple or none
	Scrolling    string   `yaml:"scrolling" toml:"scrolling"`           // editor or center
	AutoReload   bool     `yaml:"auto_reload" toml:"auto_reload"`       // Reload when a watched directory changes
	Ignore       []string `yaml:"ignore" toml:"ignore"`                 // Glob patterns of entry names to hide
}

// Color holds the listing colors as hex RGB, with or without a leading #.
type Color struct {
	Background string `yaml:"background" toml:"background"`
	Foreground string `yaml:"foreground" toml:"foreground"`
}

// Composition controls how rows are decorated.
type Composition struct {
	Indent     int  `yaml:"indent" toml:"indent"`           // Columns per depth level
	ShowIndent bool `yaml:"show_indent" toml:"show_indent"` // Draw indent guides
	UseUTF8    bool `yaml:"use_utf8" toml:"use_utf8"`       // Use box drawing and triangle glyphs
}

// Debug controls logging and the rows reserved around the viewport.
type Debug struct {
	Enabled    bool   `yaml:"enabled" toml:"enabled"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	PaddingBot int    `yaml:"padding_bot" toml:"padding_bot"` // Rows reserved below the listing
	PaddingTop int    `yaml:"padding_top" toml:"padding_top"` // Rows reserved above the listing
	SpacingBot int    `yaml:"spacing_bot" toml:"spacing_bot"` // Rows kept below the cursor when scrolling
	SpacingTop int    `yaml:"spacing_top" toml:"spacing_top"` // Rows kept above the cursor when scrolling
}

// Setup holds startup parameters.
type Setup struct {
	WorkingDir string `yaml:"working_dir" toml:"working_dir"`
}

// Config represents the application configuration structure. It is built
// once at startup and passed explicitly to the components that need it.
type Config struct {
	Behavior    Behavior    `yaml:"behavior" toml:"behavior"`
	Color       Color       `yaml:"color" toml:"color"`
	Composition Composition `yaml:"composition" toml:"composition"`
	Debug       Debug       `yaml:"debug" toml:"debug"`
	Setup       Setup       `yaml:"setup" toml:"setup"`
}

// DefaultPath returns the YAML config location (~/.config/twilight/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "twilight", "config.yaml"), nil
}

// LegacyPath returns the location of the TOML rc file read when no YAML
// config exists.
func LegacyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".twilight-commander-rc.toml"), nil
}

// LoadConfig loads configuration from the default locations: the YAML file
// first, then the legacy TOML file, then built-in defaults.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return New(), nil
	}
	if _, err := os.Stat(path); err == nil {
		return LoadConfigFile(path)
	}

	legacy, err := LegacyPath()
	if err != nil {
		return New(), nil
	}
	return LoadConfigFile(legacy)
}

// LoadConfigFile loads configuration from a specific file path. The format
// is chosen by extension (.toml, otherwise YAML). If the file doesn't exist,
// returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	// Decoding onto the defaults keeps every unset key at its default value.
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Behavior.FileAction = "true %s" // No-op until configured
	cfg.Behavior.PathNodeSort = SortDirsTop
	cfg.Behavior.Scrolling = ScrollEditor
	cfg.Behavior.AutoReload = false
	cfg.Behavior.Ignore = []string{}

	cfg.Color.Background = "000000"
	cfg.Color.Foreground = "FFFFFF"

	cfg.Composition.Indent = 2
	cfg.Composition.ShowIndent = false
	cfg.Composition.UseUTF8 = true

	cfg.Debug.Enabled = false
	cfg.Debug.PaddingBot = 1 // status line
	cfg.Debug.PaddingTop = 1 // title line
	cfg.Debug.SpacingBot = 0
	cfg.Debug.SpacingTop = 0

	cfg.Setup.WorkingDir = "."

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig writes the configuration as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewConfigError("failed to create config directory", path, errors.InvalidConfig, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewConfigError("failed to marshal config", path, errors.InvalidConfig, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewConfigError("failed to write config file", path, errors.InvalidConfig, err)
	}
	return nil
}

func invalid(param string, format string, args ...interface{}) error {
	return errors.NewConfigError("invalid configuration", param, errors.InvalidConfig, fmt.Errorf(format, args...))
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return invalid("", "nil config")
	}

	switch c.Behavior.PathNodeSort {
	case SortDirsTop, SortDirsBot, SortNone:
	default:
		return invalid("behavior.path_node_sort", "unknown sort %q", c.Behavior.PathNodeSort)
	}

	switch c.Behavior.Scrolling {
	case ScrollEditor, ScrollCenter:
	default:
		return invalid("behavior.scrolling", "unknown scrolling %q", c.Behavior.Scrolling)
	}

	for i, pattern := range c.Behavior.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("behavior.ignore", "pattern %d (%q): %v", i, pattern, err)
		}
	}

	for _, color := range []struct{ param, value string }{
		{"color.background", c.Color.Background},
		{"color.foreground", c.Color.Foreground},
	} {
		if !isHexColor(color.value) {
			return invalid(color.param, "expected 6 hex digits, got %q", color.value)
		}
	}

	if c.Composition.Indent < 1 {
		return invalid("composition.indent", "must be >= 1, got %d", c.Composition.Indent)
	}

	for _, v := range []struct {
		param string
		value int
	}{
		{"debug.padding_bot", c.Debug.PaddingBot},
		{"debug.padding_top", c.Debug.PaddingTop},
		{"debug.spacing_bot", c.Debug.SpacingBot},
		{"debug.spacing_top", c.Debug.SpacingTop},
	} {
		if v.value < 0 {
			return invalid(v.param, "must be >= 0, got %d", v.value)
		}
	}

	if c.Setup.WorkingDir == "" {
		return invalid("setup.working_dir", "must not be empty")
	}

	return nil
}

// HexColor returns a color with a leading #, as lipgloss expects.
func HexColor(value string) string {
	return "#" + strings.TrimPrefix(value, "#")
}

func isHexColor(value string) bool {
	value = strings.TrimPrefix(value, "#")
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// LogFile returns the debug log path, falling back to fallback when unset.
func (c *Config) LogFile(fallback string) string {
	if c.Debug.LogFile != "" {
		return c.Debug.LogFile
	}
	return fallback
}
