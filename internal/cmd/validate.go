package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/report"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <report-file>...",
		Short: "Validate the structure of generated reports",
		Long: `Parse one or more generated reports and check their structure:
  - The "# Codebase Summary" title is present
  - The "## Project Overview" section is present
  - Code fences are balanced
  - Every file section carries a code fence

Examples:
  codesum validate summary.md
  codesum validate reports/*.md

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateReportsWithOutput(args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateReportsWithOutput verifies report files with a custom output
// writer (for testing)
func validateReportsWithOutput(paths []string, output io.Writer) error {
	verifier := report.NewVerifier()
	var errors []string

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errMsg := fmt.Sprintf("Failed to read %s: %v", path, err)
			errors = append(errors, errMsg)
			fmt.Fprintf(output, "✗ %s\n", errMsg)
			continue
		}

		problems := verifier.Verify(data)
		if len(problems) == 0 {
			fmt.Fprintf(output, "✓ %s\n", path)
			continue
		}

		fmt.Fprintf(output, "✗ %s\n", path)
		for _, p := range problems {
			errors = append(errors, fmt.Sprintf("%s: %v", path, p))
		}
	}

	if len(errors) == 0 {
		if len(paths) == 1 {
			fmt.Fprintf(output, "\n✓ Report is valid!\n")
		} else {
			fmt.Fprintf(output, "\n✓ All %d reports are valid!\n", len(paths))
		}
		return nil
	}

	// Report all validation errors
	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}
