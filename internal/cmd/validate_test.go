package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validReport is a minimal report that satisfies every structural
// check: title, overview, balanced fences, fenced file section.
const validReport = "# Codebase Summary\n\n" +
	"## Project Overview\n\n" +
	"- Total files: 1\n\n" +
	"### main.py\n\n" +
	"```python\nprint(\"hi\")\n```\n"

// brokenReport is missing the overview section and leaves a fence open.
const brokenReport = "# Codebase Summary\n\n" +
	"### main.py\n\n" +
	"```python\nprint(\"hi\")\n"

func writeReportFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write report file: %v", err)
	}
	return path
}

func TestValidateCommand_ValidReport(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeReportFile(t, tmpDir, "summary.md", validReport)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{path})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "✓ "+path) {
		t.Errorf("Expected checkmark for valid report, got: %s", output)
	}
	if !strings.Contains(output, "✓ Report is valid!") {
		t.Errorf("Expected validity footer, got: %s", output)
	}
}

func TestValidateCommand_MultipleValidReports(t *testing.T) {
	tmpDir := t.TempDir()
	first := writeReportFile(t, tmpDir, "one.md", validReport)
	second := writeReportFile(t, tmpDir, "two.md", validReport)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{first, second})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	if !strings.Contains(buf.String(), "✓ All 2 reports are valid!") {
		t.Errorf("Expected multi-report footer, got: %s", buf.String())
	}
}

func TestValidateCommand_BrokenReport(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeReportFile(t, tmpDir, "broken.md", brokenReport)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{path})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected validation to fail for a broken report")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Expected validation error, got: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "✗ "+path) {
		t.Errorf("Expected cross for broken report, got: %s", output)
	}
	// Unbalanced fence plus missing overview
	if !strings.Contains(output, "Found 2 validation error(s)!") {
		t.Errorf("Expected both problems counted, got: %s", output)
	}
	if !strings.Contains(output, "unbalanced code fences") {
		t.Errorf("Expected fence problem named, got: %s", output)
	}
	if !strings.Contains(output, "missing ## Project Overview section") {
		t.Errorf("Expected missing overview named, got: %s", output)
	}
}

func TestValidateCommand_MixedReports(t *testing.T) {
	tmpDir := t.TempDir()
	good := writeReportFile(t, tmpDir, "good.md", validReport)
	bad := writeReportFile(t, tmpDir, "bad.md", brokenReport)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{good, bad})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected failure when any report is broken")
	}

	output := buf.String()
	if !strings.Contains(output, "✓ "+good) {
		t.Errorf("Expected the valid report to pass, got: %s", output)
	}
	if !strings.Contains(output, "✗ "+bad) {
		t.Errorf("Expected the broken report to fail, got: %s", output)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.md")})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error for missing report file")
	}

	if !strings.Contains(buf.String(), "Failed to read") {
		t.Errorf("Expected read failure in output, got: %s", buf.String())
	}
}

func TestValidateCommand_GeneratedReportIsValid(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "main.py", "print(1)\n")
	writeFixture(t, root, "util.py", "x = 2\n")

	outPath := filepath.Join(t.TempDir(), "summary.md")

	gen := NewGenerateCommand()
	gen.SetArgs([]string{root, "-o", outPath, "--no-history"})

	var genOut bytes.Buffer
	gen.SetOut(&genOut)
	gen.SetErr(&genOut)

	if err := gen.Execute(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// A freshly generated report passes its own validation
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{outPath})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Validation of generated report failed: %v\n%s", err, buf.String())
	}

	if !strings.Contains(buf.String(), "✓ Report is valid!") {
		t.Errorf("Expected generated report to validate, got: %s", buf.String())
	}
}
