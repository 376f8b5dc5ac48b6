package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/desktop-agent/internal/config"
	"github.com/mj1618/desktop-agent/internal/executor"
	"github.com/mj1618/desktop-agent/internal/output"
	"github.com/mj1618/desktop-agent/internal/platform"
	"github.com/mj1618/desktop-agent/internal/session"
	"github.com/spf13/cobra"
)

// Platform hooks, replaced in tests.
var (
	newProvider      = platform.NewProvider
	checkPermissions = platform.CheckPermissions
)

// openSession builds a session over the platform provider using cfg.
func openSession(cfg config.Config) (*session.Session, error) {
	if err := checkPermissions(); err != nil {
		return nil, err
	}
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(provider); err != nil {
		return nil, err
	}
	return session.New(provider, cfg.SessionOptions()), nil
}

// openFreshSession opens a session and builds its first snapshot. IDs passed
// on the command line refer to this snapshot, which matches the one a
// preceding "snapshot" run printed as long as the UI has not changed.
func openFreshSession(cfg config.Config) (*session.Session, error) {
	sess, err := openSession(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Refresh(); err != nil {
		return nil, fmt.Errorf("failed to snapshot: %w", err)
	}
	return sess, nil
}

// printResult writes r and turns a failed action into a command error.
func printResult(cmd *cobra.Command, r executor.Result) error {
	if err := printValue(cmd, r); err != nil {
		return err
	}
	return r.Err()
}

func printValue(cmd *cobra.Command, v interface{}) error {
	return output.Fprint(cmd.OutOrStdout(), output.OutputFormat, v)
}

// readInput returns the contents of path, or stdin when path is "" or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
