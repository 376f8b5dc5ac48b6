package cmd

import (
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/output"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List running applications",
	Long:  "List running applications with their PID, name, and bundle identifier. The frontmost application is marked.",
	Args:  cobra.NoArgs,
	RunE:  runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	apps, err := provider.Apps.Running()
	if err != nil {
		return err
	}

	res := output.AppsResult{Apps: apps}
	if front, err := provider.Apps.Frontmost(); err == nil {
		res.Frontmost = &front
	} else {
		logging.Debug("no frontmost application", "err", err)
	}
	return printValue(cmd, res)
}
