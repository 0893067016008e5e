package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wheeler/codesum/internal/history"
	"github.com/wheeler/codesum/internal/models"
)

func TestHistoryExportCommand_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	testDBPath := filepath.Join(tmpDir, "history.db")

	store, err := history.NewStore(testDBPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	run := &models.RunRecord{
		RootDir:    "/work/api",
		OutputPath: "summary.md",
		FileCount:  7,
		TotalLines: 420,
		Languages:  []string{"go"},
		Duration:   250 * time.Millisecond,
	}
	if err := store.RecordRun(context.Background(), run); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
	store.Close()

	cmd := newHistoryExportCommand()
	cmd.SetArgs([]string{"--db-path", testDBPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Export command failed: %v", err)
	}

	output := buf.String()

	if !strings.HasPrefix(strings.TrimSpace(output), "[") {
		t.Errorf("Expected JSON array output, got: %s", output)
	}
	if !strings.Contains(output, `"RootDir": "/work/api"`) {
		t.Errorf("Expected run root in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"FileCount": 7`) {
		t.Errorf("Expected file count in JSON output, got: %s", output)
	}
}

func TestHistoryExportCommand_EmptyDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	testDBPath := filepath.Join(tmpDir, "history.db")

	cmd := newHistoryExportCommand()
	cmd.SetArgs([]string{"--db-path", testDBPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Export command failed: %v", err)
	}

	// Empty export is an empty JSON array, not null
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Expected empty JSON array, got: %s", got)
	}
}

func TestHistoryExportCommand_CSVToFile(t *testing.T) {
	tmpDir := t.TempDir()
	testDBPath := filepath.Join(tmpDir, "history.db")

	store, err := history.NewStore(testDBPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	run := &models.RunRecord{
		RootDir:      "/work/api",
		FileCount:    7,
		TotalLines:   420,
		Languages:    []string{"go", "yaml"},
		ProjectTypes: []string{"Go Module"},
		Duration:     250 * time.Millisecond,
	}
	if err := store.RecordRun(context.Background(), run); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
	store.Close()

	outPath := filepath.Join(tmpDir, "runs.csv")

	cmd := newHistoryExportCommand()
	cmd.SetArgs([]string{"--format", "csv", "--output", outPath, "--db-path", testDBPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Export command failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}

	content := string(data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus one data row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "run_id,root_dir,output_path,file_count") {
		t.Errorf("Expected CSV header, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], "/work/api") {
		t.Errorf("Expected run root in CSV row, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "go;yaml") {
		t.Errorf("Expected joined languages in CSV row, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "250") {
		t.Errorf("Expected duration in milliseconds in CSV row, got: %s", lines[1])
	}

	// Nothing is written to stdout when exporting to a file
	if buf.Len() != 0 {
		t.Errorf("Expected silent stdout for file export, got: %s", buf.String())
	}
}

func TestHistoryExportCommand_DirFilter(t *testing.T) {
	tmpDir := t.TempDir()
	testDBPath := filepath.Join(tmpDir, "history.db")

	store, err := history.NewStore(testDBPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	for _, root := range []string{"/work/api", "/work/scripts"} {
		run := &models.RunRecord{RootDir: root, FileCount: 1}
		if err := store.RecordRun(context.Background(), run); err != nil {
			t.Fatalf("Failed to record run: %v", err)
		}
	}
	store.Close()

	cmd := newHistoryExportCommand()
	cmd.SetArgs([]string{"--dir", "/work/api", "--db-path", testDBPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Export command failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "/work/api") {
		t.Errorf("Expected filtered root in output, got: %s", output)
	}
	if strings.Contains(output, "/work/scripts") {
		t.Errorf("Expected other roots to be excluded, got: %s", output)
	}
}

func TestHistoryExportCommand_InvalidFormat(t *testing.T) {
	cmd := newHistoryExportCommand()
	cmd.SetArgs([]string{"--format", "xml"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Expected invalid format error, got: %v", err)
	}
}
