package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/desktop-agent/internal/config"
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/output"
	"github.com/mj1618/desktop-agent/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-agent",
	Short: "Snapshot and drive desktop applications through the accessibility layer",
	Long: `A tool that lets AI agents see and operate desktop applications.

"snapshot" renders the frontmost application's UI as compact notation in which
every interactive element carries an ID. Actions (click, type, key, launch, do)
refer to those IDs. IDs are only valid for the snapshot they came from.`,
	SilenceUsage: true,
}

// appConfig is loaded by the root command before any subcommand runs.
var appConfig = config.Default()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, text")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/desktop-agent/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		appConfig = cfg

		level := cfg.LogLevel
		if l, _ := rootCmd.PersistentFlags().GetString("log-level"); l != "" {
			level = l
		}
		if err := logging.Init(os.Stderr, level); err != nil {
			return err
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		return nil
	}
}

// formatSet reports whether --format was given explicitly.
func formatSet() bool {
	return rootCmd.PersistentFlags().Changed("format")
}
