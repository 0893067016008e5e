package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/filelock"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default .codesum/config.yaml",
		Long: `Create .codesum/config.yaml with the default settings under the target
directory (default: current directory).

The file is written atomically. An existing config is left untouched.

Examples:
  codesum init
  codesum init ./api`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	return cmd
}

// runInit implements the init command logic
func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	configPath := filepath.Join(dir, ".codesum", "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at: %s\n", configPath)
		return nil
	}

	if err := filelock.LockAndWrite(configPath, config.DefaultYAML()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
