package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click an element by ID",
	Long: `Click the element with the given ID from the current snapshot. Elements whose center lies
on screen receive a synthetic mouse click; others are pressed through the accessibility action.`,
	Args: cobra.NoArgs,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("id", 0, "Element ID from the snapshot notation")
}

func runClick(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	if id <= 0 {
		return fmt.Errorf("--id is required")
	}
	sess, err := openFreshSession(*appConfig)
	if err != nil {
		return err
	}
	return printResult(cmd, sess.Click(id))
}
