package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/history"
	"github.com/wheeler/codesum/internal/models"
)

// NewHistoryShowCommand creates the 'codesum history show' command
func NewHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded generate runs",
		Long: `Display recorded generate runs, most recent first, including:
  - Scan root and report destination
  - File, line, truncation, and read-error counts
  - Detected languages and project types
  - Timestamps and durations`,
		Args: cobra.NoArgs,
		RunE: runHistoryShow,
	}

	cmd.Flags().String("dir", "", "Only show runs recorded for this scan root")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 shows all)")

	return cmd
}

// runHistoryShow executes the history show command
func runHistoryShow(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	dir, _ := cmd.Flags().GetString("dir")
	limit, _ := cmd.Flags().GetInt("limit")

	rootFilter, err := resolveRootFilter(dir)
	if err != nil {
		return err
	}

	// Use centralized codesum home database location
	dbPath, err := config.GetHistoryDBPath()
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No recorded runs yet.\n")
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	runs, err := store.ListRuns(ctx, rootFilter, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	// Check if we have any runs
	if len(runs) == 0 {
		if rootFilter != "" {
			fmt.Fprintf(output, "No recorded runs for: %s\n", rootFilter)
		} else {
			fmt.Fprintf(output, "No recorded runs yet.\n")
		}
		return nil
	}

	printRunHistory(output, runs)

	return nil
}

// printRunHistory formats and prints recorded runs, most recent first
func printRunHistory(w io.Writer, runs []*models.RunRecord) {
	// Colors
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	// Header
	cyan.Fprintf(w, "\n=== Run History ===\n\n")
	fmt.Fprintf(w, "Runs shown: %d\n\n", len(runs))

	for i, run := range runs {
		cyan.Fprintf(w, "Run %s\n", shortRunID(run.RunID))

		// Timestamp
		fmt.Fprintf(w, "  Time: %s ", formatTimestamp(run.CreatedAt))
		gray.Fprintf(w, "(%s ago)\n", formatDuration(time.Since(run.CreatedAt)))

		// Scan root and report destination
		fmt.Fprintf(w, "  Root: %s\n", run.RootDir)
		fmt.Fprintf(w, "  Report: ")
		if run.OutputPath == "" {
			gray.Fprintf(w, "stdout\n")
		} else {
			fmt.Fprintf(w, "%s\n", run.OutputPath)
		}

		// Counters
		fmt.Fprintf(w, "  Files: %d (%d lines)\n", run.FileCount, run.TotalLines)
		if run.TruncatedCount > 0 {
			fmt.Fprintf(w, "  Truncated: ")
			yellow.Fprintf(w, "%d\n", run.TruncatedCount)
		}
		if run.ErrorCount > 0 {
			fmt.Fprintf(w, "  Read errors: ")
			red.Fprintf(w, "%d\n", run.ErrorCount)
		}

		// Detected languages and project types
		if len(run.Languages) > 0 {
			fmt.Fprintf(w, "  Languages: %s\n", strings.Join(run.Languages, ", "))
		}
		if len(run.ProjectTypes) > 0 {
			fmt.Fprintf(w, "  Project types: %s\n", strings.Join(run.ProjectTypes, ", "))
		}

		fmt.Fprintf(w, "  Duration: %s\n", run.Duration.Round(time.Millisecond))

		// Separator between runs
		if i < len(runs)-1 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)

	// Summary statistics
	cleanCount := 0
	totalFiles := 0
	totalDuration := time.Duration(0)
	languageSet := make(map[string]bool)

	for _, run := range runs {
		if run.ErrorCount == 0 {
			cleanCount++
		}
		totalFiles += run.FileCount
		totalDuration += run.Duration
		for _, lang := range run.Languages {
			languageSet[lang] = true
		}
	}

	cyan.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Clean runs: ")
	cleanRate := float64(cleanCount) / float64(len(runs)) * 100
	if cleanRate >= 70 {
		green.Fprintf(w, "%.1f%%", cleanRate)
	} else if cleanRate >= 40 {
		yellow.Fprintf(w, "%.1f%%", cleanRate)
	} else {
		red.Fprintf(w, "%.1f%%", cleanRate)
	}
	fmt.Fprintf(w, " (%d/%d)\n", cleanCount, len(runs))

	fmt.Fprintf(w, "  Files summarized: %d\n", totalFiles)

	avgDuration := totalDuration / time.Duration(len(runs))
	fmt.Fprintf(w, "  Average duration: %s\n", avgDuration.Round(time.Millisecond))

	if len(languageSet) > 0 {
		languages := make([]string, 0, len(languageSet))
		for lang := range languageSet {
			languages = append(languages, lang)
		}
		sort.Strings(languages)
		fmt.Fprintf(w, "  Languages seen: %s\n", strings.Join(languages, ", "))
	}

	fmt.Fprintln(w)
}

// shortRunID trims a run UUID to its leading segment for display
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatDuration formats a duration for human-readable display
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
