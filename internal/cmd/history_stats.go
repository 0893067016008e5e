package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/history"
)

// NewHistoryStatsCommand creates the 'codesum history stats' command
func NewHistoryStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated run statistics",
		Long: `Display aggregated statistics over recorded generate runs including:
  - Overall run and file counts
  - Clean-run rate (runs without read errors)
  - Per-root activity
  - Language and project-type frequency
  - Average run durations`,
		Args: cobra.NoArgs,
		RunE: runHistoryStats,
	}

	cmd.Flags().String("dir", "", "Only aggregate runs recorded for this scan root")

	return cmd
}

// runHistoryStats executes the history stats command
func runHistoryStats(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	dir, _ := cmd.Flags().GetString("dir")
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
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	// Get statistics
	stats, err := getRunStatistics(store, rootFilter)
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	// Check if we have any data
	if stats.TotalRuns == 0 {
		if rootFilter != "" {
			fmt.Fprintf(output, "No recorded runs for: %s\n", rootFilter)
		} else {
			fmt.Fprintf(output, "No recorded runs yet.\n")
		}
		return nil
	}

	// Print statistics
	printRunStatistics(output, stats, rootFilter)

	return nil
}

// RunStatistics contains aggregated run history statistics
type RunStatistics struct {
	TotalRuns       int
	CleanRuns       int
	RunsWithErrors  int
	CleanRate       float64
	TotalFiles      int
	TotalLines      int
	TotalTruncated  int
	TotalReadErrors int
	RootActivity    map[string]*RootStats
	LanguageRuns    map[string]int
	ProjectTypeRuns map[string]int
	AverageFiles    float64
	AverageDuration time.Duration
	TotalDuration   time.Duration
}

// RootStats tracks run activity for a specific scan root
type RootStats struct {
	RootDir  string
	Runs     int
	Files    int
	AvgFiles float64
	LastRun  time.Time
}

// getRunStatistics loads run records and calculates statistics
func getRunStatistics(store *history.Store, rootDir string) (*RunStatistics, error) {
	stats := &RunStatistics{
		RootActivity:    make(map[string]*RootStats),
		LanguageRuns:    make(map[string]int),
		ProjectTypeRuns: make(map[string]int),
	}

	runs, err := store.ListRuns(context.Background(), rootDir, 0)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	for _, run := range runs {
		// Update overall stats
		stats.TotalRuns++
		stats.TotalFiles += run.FileCount
		stats.TotalLines += run.TotalLines
		stats.TotalTruncated += run.TruncatedCount
		stats.TotalReadErrors += run.ErrorCount
		stats.TotalDuration += run.Duration
		if run.ErrorCount == 0 {
			stats.CleanRuns++
		} else {
			stats.RunsWithErrors++
		}

		// Update per-root activity
		rootStats, exists := stats.RootActivity[run.RootDir]
		if !exists {
			rootStats = &RootStats{RootDir: run.RootDir}
			stats.RootActivity[run.RootDir] = rootStats
		}
		rootStats.Runs++
		rootStats.Files += run.FileCount
		if run.CreatedAt.After(rootStats.LastRun) {
			rootStats.LastRun = run.CreatedAt
		}

		// Update language and project-type frequency
		for _, lang := range run.Languages {
			stats.LanguageRuns[lang]++
		}
		for _, projectType := range run.ProjectTypes {
			stats.ProjectTypeRuns[projectType]++
		}
	}

	// Calculate derived metrics
	if stats.TotalRuns > 0 {
		stats.CleanRate = (float64(stats.CleanRuns) / float64(stats.TotalRuns)) * 100
		stats.AverageFiles = float64(stats.TotalFiles) / float64(stats.TotalRuns)
		stats.AverageDuration = stats.TotalDuration / time.Duration(stats.TotalRuns)
	}

	for _, rootStats := range stats.RootActivity {
		if rootStats.Runs > 0 {
			rootStats.AvgFiles = float64(rootStats.Files) / float64(rootStats.Runs)
		}
	}

	return stats, nil
}

// printRunStatistics formats and prints the statistics
func printRunStatistics(w io.Writer, stats *RunStatistics, rootDir string) {
	// Colors
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	// Header
	if rootDir != "" {
		cyan.Fprintf(w, "\n=== Run Statistics for %s ===\n\n", rootDir)
	} else {
		cyan.Fprintf(w, "\n=== Run Statistics ===\n\n")
	}

	// Overall Statistics
	cyan.Fprintf(w, "Overall Statistics:\n")
	fmt.Fprintf(w, "  Total runs: %d\n", stats.TotalRuns)
	fmt.Fprintf(w, "  Clean runs: ")
	green.Fprintf(w, "%d\n", stats.CleanRuns)
	fmt.Fprintf(w, "  Runs with read errors: ")
	red.Fprintf(w, "%d\n", stats.RunsWithErrors)
	fmt.Fprintf(w, "  Clean rate: ")
	if stats.CleanRate >= 70 {
		green.Fprintf(w, "%.1f%%\n", stats.CleanRate)
	} else if stats.CleanRate >= 40 {
		yellow.Fprintf(w, "%.1f%%\n", stats.CleanRate)
	} else {
		red.Fprintf(w, "%.1f%%\n", stats.CleanRate)
	}
	fmt.Fprintf(w, "  Files summarized: %d (%d lines)\n", stats.TotalFiles, stats.TotalLines)
	if stats.TotalTruncated > 0 {
		fmt.Fprintf(w, "  Truncated files: ")
		yellow.Fprintf(w, "%d\n", stats.TotalTruncated)
	}
	if stats.TotalReadErrors > 0 {
		fmt.Fprintf(w, "  Unreadable files: ")
		red.Fprintf(w, "%d\n", stats.TotalReadErrors)
	}
	fmt.Fprintf(w, "  Average files per run: %.1f\n", stats.AverageFiles)
	fmt.Fprintf(w, "  Average duration: %s\n", stats.AverageDuration.Round(time.Millisecond))

	// Scan Roots (skipped when a single root was requested)
	if rootDir == "" && len(stats.RootActivity) > 0 {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Scan Roots:\n")

		// Sort roots by run count (descending)
		roots := make([]*RootStats, 0, len(stats.RootActivity))
		for _, rootStats := range stats.RootActivity {
			roots = append(roots, rootStats)
		}
		sort.Slice(roots, func(i, j int) bool {
			return roots[i].Runs > roots[j].Runs
		})

		for _, rootStats := range roots {
			fmt.Fprintf(w, "\n  %s:\n", rootStats.RootDir)
			fmt.Fprintf(w, "    Runs: %d\n", rootStats.Runs)
			fmt.Fprintf(w, "    Avg files: %.1f\n", rootStats.AvgFiles)
			fmt.Fprintf(w, "    Last run: %s\n", formatTimestamp(rootStats.LastRun))
		}
	}

	// Languages
	if len(stats.LanguageRuns) > 0 {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Languages:\n")
		printFrequency(w, stats.LanguageRuns)
	}

	// Project Types
	if len(stats.ProjectTypeRuns) > 0 {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Project Types:\n")
		printFrequency(w, stats.ProjectTypeRuns)
	}

	fmt.Fprintf(w, "\n")
}

// printFrequency prints a name-to-run-count map sorted by frequency
func printFrequency(w io.Writer, counts map[string]int) {
	type nameCount struct {
		name  string
		count int
	}
	entries := make([]nameCount, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, nameCount{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	for _, entry := range entries {
		fmt.Fprintf(w, "  - %s: %d runs\n", entry.name, entry.count)
	}
}
