package cmd

import "github.com/spf13/cobra"

var launchCmd = &cobra.Command{
	Use:   "launch <bundle-id>",
	Short: "Launch an application or bring it to the front",
	Long: `Launch the application with the given bundle identifier, or bring it to the front if it
is already running, then wait for its UI to settle. Take a new snapshot afterwards.`,
	Example: `  desktop-agent launch com.apple.Notes`,
	Args:    cobra.ExactArgs(1),
	RunE:    runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	sess, err := openSession(*appConfig)
	if err != nil {
		return err
	}
	return printResult(cmd, sess.LaunchApplication(args[0]))
}
