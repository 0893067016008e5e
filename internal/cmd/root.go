package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for codesum
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codesum",
		Short: "Generate prioritized Markdown summaries of codebases",
		Long: `Codesum walks a project tree, filters it down to the files that matter,
and renders one Markdown report: project overview, entry points,
configuration files, dependency analysis, and every included file in
priority order inside fenced code blocks.

Reports are deterministic for an unchanged tree, ordered so the most
important files come first, and oversized files are truncated at a line
boundary with an explicit marker.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
