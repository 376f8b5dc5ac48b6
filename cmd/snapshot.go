package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-agent/internal/notation"
	"github.com/mj1618/desktop-agent/internal/output"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Snapshot the frontmost application and print it as notation",
	Long: `Walk the frontmost application's accessibility tree and print it in compact notation.

Each element renders as tag[ID=n][title=".."][value=".."][placeholder=".."]{text}, with
children after ">" and siblings joined by "+". Only interactive elements carry an ID.
The notation is followed by a flat ID index and the list of running applications.

Prints plain text unless --format is given.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().Bool("check", false, "Verify identifier invariants of the built snapshot")
	snapshotCmd.Flags().Int("max-elements", 0, "Override the element budget for this snapshot")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if n, _ := cmd.Flags().GetInt("max-elements"); n > 0 {
		cfg.Walk.MaxElements = n
	}
	sess, err := openFreshSession(cfg)
	if err != nil {
		return err
	}
	snap := sess.Snapshot()

	if check, _ := cmd.Flags().GetBool("check"); check {
		if err := snap.Validate(); err != nil {
			return fmt.Errorf("snapshot %s failed validation: %w", snap.ID, err)
		}
	}

	res := output.NewSnapshotResult(snap, notation.Render(snap))
	if !formatSet() {
		return output.Fprint(cmd.OutOrStdout(), output.FormatText, res)
	}
	return printValue(cmd, res)
}
