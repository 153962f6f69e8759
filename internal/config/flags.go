package config

import (
	"github.com/spf13/pflag"
)

// flagBinding ties one dotted command line flag to a config key.
type flagBinding struct {
	name     string
	register func(fs *pflag.FlagSet, def *Config)
	apply    func(fs *pflag.FlagSet, cfg *Config) error
}

func stringFlag(name, usage string, get func(*Config) *string) flagBinding {
	return flagBinding{
		name: name,
		register: func(fs *pflag.FlagSet, def *Config) {
			fs.String(name, *get(def), usage)
		},
		apply: func(fs *pflag.FlagSet, cfg *Config) error {
			v, err := fs.GetString(name)
			if err == nil {
				*get(cfg) = v
			}
			return err
		},
	}
}

func intFlag(name, usage string, get func(*Config) *int) flagBinding {
	return flagBinding{
		name: name,
		register: func(fs *pflag.FlagSet, def *Config) {
			fs.Int(name, *get(def), usage)
		},
		apply: func(fs *pflag.FlagSet, cfg *Config) error {
			v, err := fs.GetInt(name)
			if err == nil {
				*get(cfg) = v
			}
			return err
		},
	}
}

func boolFlag(name, usage string, get func(*Config) *bool) flagBinding {
	return flagBinding{
		name: name,
		register: func(fs *pflag.FlagSet, def *Config) {
			fs.Bool(name, *get(def), usage)
		},
		apply: func(fs *pflag.FlagSet, cfg *Config) error {
			v, err := fs.GetBool(name)
			if err == nil {
				*get(cfg) = v
			}
			return err
		},
	}
}

func sliceFlag(name, usage string, get func(*Config) *[]string) flagBinding {
	return flagBinding{
		name: name,
		register: func(fs *pflag.FlagSet, def *Config) {
			fs.StringSlice(name, *get(def), usage)
		},
		apply: func(fs *pflag.FlagSet, cfg *Config) error {
			v, err := fs.GetStringSlice(name)
			if err == nil {
				*get(cfg) = v
			}
			return err
		},
	}
}

var bindings = []flagBinding{
	stringFlag("behavior.file_action", "shell command run on enter, %s is the file path",
		func(c *Config) *string { return &c.Behavior.FileAction }),
	stringFlag("behavior.path_node_sort", "dirs_top_simple, dirs_bot_simple or none",
		func(c *Config) *string { return &c.Behavior.PathNodeSort }),
	stringFlag("behavior.scrolling", "editor or center",
		func(c *Config) *string { return &c.Behavior.Scrolling }),
	boolFlag("behavior.auto_reload", "reload when a watched directory changes",
		func(c *Config) *bool { return &c.Behavior.AutoReload }),
	sliceFlag("behavior.ignore", "glob patterns of entry names to hide",
		func(c *Config) *[]string { return &c.Behavior.Ignore }),
	stringFlag("color.background", "background color as hex RGB",
		func(c *Config) *string { return &c.Color.Background }),
	stringFlag("color.foreground", "foreground color as hex RGB",
		func(c *Config) *string { return &c.Color.Foreground }),
	intFlag("composition.indent", "columns per depth level",
		func(c *Config) *int { return &c.Composition.Indent }),
	boolFlag("composition.show_indent", "draw indent guides",
		func(c *Config) *bool { return &c.Composition.ShowIndent }),
	boolFlag("composition.use_utf8", "use unicode glyphs",
		func(c *Config) *bool { return &c.Composition.UseUTF8 }),
	boolFlag("debug.enabled", "write a debug log",
		func(c *Config) *bool { return &c.Debug.Enabled }),
	stringFlag("debug.log_file", "debug log path",
		func(c *Config) *string { return &c.Debug.LogFile }),
	intFlag("debug.padding_bot", "rows reserved below the listing",
		func(c *Config) *int { return &c.Debug.PaddingBot }),
	intFlag("debug.padding_top", "rows reserved above the listing",
		func(c *Config) *int { return &c.Debug.PaddingTop }),
	intFlag("debug.spacing_bot", "rows kept below the cursor",
		func(c *Config) *int { return &c.Debug.SpacingBot }),
	intFlag("debug.spacing_top", "rows kept above the cursor",
		func(c *Config) *int { return &c.Debug.SpacingTop }),
	stringFlag("setup.working_dir", "directory to browse",
		func(c *Config) *string { return &c.Setup.WorkingDir }),
}

// RegisterFlags adds one dotted flag per config key to fs, e.g.
// --composition.indent=4. Flag defaults show the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	def := defaultConfig()
	for _, b := range bindings {
		b.register(fs, def)
	}
}

// ApplyFlags copies every flag the user actually set onto cfg and
// re-validates it.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	for _, b := range bindings {
		if !fs.Changed(b.name) {
			continue
		}
		if err := b.apply(fs, cfg); err != nil {
			return invalid(b.name, "%v", err)
		}
	}
	return cfg.Validate()
}
