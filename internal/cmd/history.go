package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'codesum history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Run history commands",
		Long: `Commands for viewing and managing recorded generate runs.

Every generate run records its scan root, report destination, and
summary counters in a central database so past runs can be inspected,
aggregated, and exported.`,
	}

	// Add subcommands
	cmd.AddCommand(NewHistoryShowCommand())
	cmd.AddCommand(NewHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())
	cmd.AddCommand(newHistoryExportCommand())

	return cmd
}

// resolveRootFilter resolves a --dir flag value to the absolute form
// runs are recorded under. Empty means no filter.
func resolveRootFilter(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory path: %w", err)
	}
	return abs, nil
}
