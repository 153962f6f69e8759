package main

import (
	"fmt"
	"io"

	"twilight/internal/config"
	"twilight/internal/controller"
	"twilight/internal/log"
	"twilight/internal/pager"
	"twilight/internal/tui"
	"twilight/internal/tui/components"
	"twilight/internal/tui/styles"
	"twilight/internal/watch"
	"twilight/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// watchBuffer is the number of directory changes queued for the UI.
const watchBuffer = 64

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "twilight [directory]",
		Short: "Browse a directory tree in the terminal",
		Long: `Twilight shows a directory as an indented tree. Expand and collapse
directories in place, move with the arrow keys and press enter to run the
configured file action on the selected file.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, cfgFile, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/twilight/config.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newConfigCmd(&cfgFile))

	return rootCmd
}

// resolveConfig loads the config file, applies flag overrides and then the
// positional directory, in that order of precedence.
func resolveConfig(cmd *cobra.Command, cfgFile string, args []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if err := config.ApplyFlags(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Setup.WorkingDir = args[0]
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	if !cfg.Debug.Enabled {
		return
	}
	log.Configure(log.WithFile(cfg.LogFile(log.DefaultFile())))
	log.SetDebug(true)
}

func run(cfg *config.Config) error {
	setupLogging(cfg)
	defer log.Configure(log.WithOutput(io.Discard))

	theme := styles.NewTheme(cfg.Color)
	screen := components.NewScreenRenderer(theme)
	ctrl, err := controller.New(cfg, pager.New(cfg, screen))
	if err != nil {
		return err
	}

	watcher, err := watch.New(watchBuffer)
	if err != nil {
		log.LogError(err, "directory watching disabled")
		watcher = nil
	} else {
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	log.LogWithFields(log.F("root", ctrl.Root().GetAbsolutePath()), log.F("version", version)).Info("starting")
	model := tui.New(cfg, ctrl, screen, components.NewStatusBar(theme, types.DefaultKeyMap()), watcher)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func newConfigCmd(cfgFile *string) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration twilight would run with, after the config file
and defaults are merged. With --save the result is written as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *cfgFile, nil)
			if err != nil {
				return err
			}

			if save != "" {
				if err := config.SaveConfig(cfg, save); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", save)
				return nil
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "write the configuration to this file")
	return cmd
}
