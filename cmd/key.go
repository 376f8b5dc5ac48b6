package cmd

import "github.com/spf13/cobra"

var keyCmd = &cobra.Command{
	Use:   "key <combo>",
	Short: "Press a key combination",
	Long: `Press one key with optional modifiers, written as "+"-separated tokens.
Modifiers: cmd/command, shift, option/alt/opt, control/ctrl.`,
	Example: `  desktop-agent key cmd+t
  desktop-agent key shift+tab
  desktop-agent key return`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	sess, err := openSession(*appConfig)
	if err != nil {
		return err
	}
	return printResult(cmd, sess.ExecuteKeyboardCommand(args[0]))
}
