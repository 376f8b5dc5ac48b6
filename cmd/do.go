package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-agent/internal/plan"
	"github.com/spf13/cobra"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Run an action plan",
	Long: `Run a sequence of actions read from stdin (or --file) as JSON or YAML.

A fresh snapshot is taken first; element IDs in the plan refer to it. Steps run in
order and by default execution stops on the first error. A finish step ends the run.

Example:
  desktop-agent do <<'EOF'
  {"actions": [
    {"open_app": {"bundle_id": "com.apple.Notes"}},
    {"wait": {"seconds": 1}},
    {"click_element": {"id": 3}},
    {"type_in_element": {"id": 4, "text": "groceries"}},
    {"keyboard_command": {"command": "cmd+s"}},
    {"finish": {}}
  ]}
  EOF`,
	Args: cobra.NoArgs,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().String("file", "", "Read the plan from a file instead of stdin")
	doCmd.Flags().Bool("continue-on-error", false, "Run remaining steps after a failure")
	doCmd.Flags().Bool("refresh", false, "Take a snapshot after the run and include its notation")
}

func runDo(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	data, err := readInput(cmd, path)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	p, err := plan.Parse(data)
	if err != nil {
		return err
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("no steps provided: expected a list of actions")
	}

	continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
	refresh, _ := cmd.Flags().GetBool("refresh")

	sess, err := openFreshSession(*appConfig)
	if err != nil {
		return err
	}
	rep := plan.Run(sess, p, plan.Options{ContinueOnError: continueOnError, RefreshAfter: refresh})
	if err := printValue(cmd, rep); err != nil {
		return err
	}
	if !rep.OK {
		return fmt.Errorf("plan failed")
	}
	return nil
}
