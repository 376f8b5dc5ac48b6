package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Enter text into an element by ID",
	Long: `Set the value of the element with the given ID. When the element rejects a direct value,
the text is typed as keystrokes; only letters, digits, and spaces can be typed that way.
Text can be passed as a positional argument or via --text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().Int("id", 0, "Element ID from the snapshot notation")
	typeCmd.Flags().String("text", "", "Text to enter (alternative to positional arg)")
}

func runType(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	text, _ := cmd.Flags().GetString("text")
	if len(args) > 0 {
		if text != "" {
			return fmt.Errorf("pass text as an argument or with --text, not both")
		}
		text = args[0]
	}
	if id <= 0 {
		return fmt.Errorf("--id is required")
	}

	sess, err := openFreshSession(*appConfig)
	if err != nil {
		return err
	}
	return printResult(cmd, sess.TypeText(id, text))
}
