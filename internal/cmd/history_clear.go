package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/history"
)

// newHistoryClearCommand creates the 'codesum history clear' command
func newHistoryClearCommand() *cobra.Command {
	var clearAll bool
	var dir string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear recorded runs",
		Long: `Clear recorded runs for a specific scan root or the entire database.

Examples:
  # Clear runs recorded for one directory (requires confirmation)
  codesum history clear --dir ./myproject

  # Clear all recorded runs (requires confirmation)
  codesum history clear --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("clear takes no arguments")
			}
			clearAll, _ := cmd.Flags().GetBool("all")
			dir, _ := cmd.Flags().GetString("dir")
			if clearAll && dir != "" {
				return fmt.Errorf("cannot use --dir together with --all")
			}
			if !clearAll && dir == "" {
				return fmt.Errorf("requires --dir or --all flag")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd, clearAll, dir, dbPath)
		},
	}

	cmd.Flags().BoolVar(&clearAll, "all", false, "Clear the entire history database")
	cmd.Flags().StringVar(&dir, "dir", "", "Clear runs recorded for this scan root")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryClear executes the clear command
func runHistoryClear(cmd *cobra.Command, clearAll bool, dir, dbPathOverride string) error {
	output := cmd.OutOrStdout()

	var rootFilter string
	if clearAll {
		// Confirm clearing all data
		fmt.Fprintf(output, "WARNING: This will delete ALL recorded runs from the history database.\n")
		if !confirmAction(output) {
			fmt.Fprintf(output, "Operation cancelled.\n")
			return nil
		}
	} else {
		var err error
		rootFilter, err = resolveRootFilter(dir)
		if err != nil {
			return err
		}

		// Confirm clearing one scan root
		fmt.Fprintf(output, "This will delete all recorded runs for: %s\n", rootFilter)
		if !confirmAction(output) {
			fmt.Fprintf(output, "Operation cancelled.\n")
			return nil
		}
	}

	// Use override path if provided (for testing), otherwise use default
	var dbPath string
	if dbPathOverride != "" {
		dbPath = dbPathOverride
	} else {
		var err error
		dbPath, err = config.GetHistoryDBPath()
		if err != nil {
			return fmt.Errorf("failed to get history database path: %w", err)
		}
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No history database found at: %s\n", dbPath)
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	deletedCount, err := store.ClearRuns(context.Background(), rootFilter)
	if err != nil {
		return fmt.Errorf("delete runs: %w", err)
	}

	// Report results
	recordText := "record"
	if deletedCount != 1 {
		recordText = "records"
	}
	fmt.Fprintf(output, "Deleted %d %s.\n", deletedCount, recordText)

	return nil
}

// confirmAction prompts the user for confirmation
func confirmAction(output io.Writer) bool {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Fprintf(output, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
