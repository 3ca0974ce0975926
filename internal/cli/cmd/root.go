// Package cmd provides Cobra CLI commands for sashes.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/cli"
	"github.com/bnema/sashes/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info

	configDir string
	logLevel  string

	rootCmd = &cobra.Command{
		Use:   "sashes",
		Short: "Split-pane layout engine for tiling window managers",
		Long: `Sashes - the layout core of a tiling window manager.

A layout is a binary tree of sashes: every split divides its rectangle
between two children along one axis, and every leaf is a pane.

Features:
  - Layouts described in TOML, YAML or JSON
  - Add, remove, swap and move panes with minimum size enforcement
  - Muntin drags and drop-zone hit testing
  - Pane lifecycle events with a debounced resize stream
  - Event journal stored in SQLite

Use 'sashes layout' to inspect a layout file, or 'sashes replay' to run a
scripted session against one and watch the events it produces.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.AppOptions{ConfigDir: configDir, LogLevel: logLevel})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/sashes)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
