package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/filelock"
	"github.com/wheeler/codesum/internal/history"
	"github.com/wheeler/codesum/internal/models"
)

// newHistoryExportCommand creates the 'codesum history export' command
func newHistoryExportCommand() *cobra.Command {
	var format string
	var output string
	var dir string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded runs to JSON or CSV format",
		Long: `Export recorded runs to JSON or CSV format for external analysis or backup.

Every recorded run is exported by default; --dir restricts the export
to runs recorded for one scan root. If no output file is specified,
data is written to stdout.

Examples:
  # Export everything to a JSON file
  codesum history export --output runs.json

  # Export one project's runs as CSV
  codesum history export --dir ./myproject --format csv --output runs.csv

  # Export to stdout
  codesum history export

Supported formats:
  - json: JSON array of run records
  - csv: CSV with headers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryExport(cmd.OutOrStdout(), dir, format, output, dbPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format (json|csv)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (stdout if not specified)")
	cmd.Flags().StringVar(&dir, "dir", "", "Only export runs recorded for this scan root")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryExport executes the export command
func runHistoryExport(stdout io.Writer, dir, format, output, dbPathOverride string) error {
	// Validate format
	if format != "json" && format != "csv" {
		return fmt.Errorf("invalid format '%s': format must be 'json' or 'csv'", format)
	}

	rootFilter, err := resolveRootFilter(dir)
	if err != nil {
		return err
	}

	// Determine database path: use override if provided (for testing), otherwise use centralized location
	var dbPath string
	if dbPathOverride != "" {
		dbPath = dbPathOverride
	} else {
		dbPath, err = config.GetHistoryDBPath()
		if err != nil {
			return fmt.Errorf("failed to get history database path: %w", err)
		}
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), rootFilter, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Initialize empty slice if nil to ensure JSON output is [] not null
	if runs == nil {
		runs = make([]*models.RunRecord, 0)
	}

	// Render to a buffer so file output can go through the locked write
	var buf bytes.Buffer
	switch format {
	case "json":
		err = exportRunsJSON(&buf, runs)
	case "csv":
		err = exportRunsCSV(&buf, runs)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := filelock.LockAndWrite(output, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func exportRunsJSON(writer io.Writer, runs []*models.RunRecord) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(runs); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func exportRunsCSV(writer io.Writer, runs []*models.RunRecord) error {
	csvWriter := csv.NewWriter(writer)

	// Write header
	header := []string{
		"run_id",
		"root_dir",
		"output_path",
		"file_count",
		"total_lines",
		"truncated_count",
		"error_count",
		"languages",
		"project_types",
		"duration_ms",
		"created_at",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write data rows
	for _, run := range runs {
		row := []string{
			run.RunID,
			run.RootDir,
			run.OutputPath,
			strconv.Itoa(run.FileCount),
			strconv.Itoa(run.TotalLines),
			strconv.Itoa(run.TruncatedCount),
			strconv.Itoa(run.ErrorCount),
			strings.Join(run.Languages, ";"),
			strings.Join(run.ProjectTypes, ";"),
			strconv.FormatInt(run.Duration.Milliseconds(), 10),
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
