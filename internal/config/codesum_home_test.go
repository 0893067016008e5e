package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetCodesumHomeWithEnvVar tests CODESUM_HOME env var takes precedence
func TestGetCodesumHomeWithEnvVar(t *testing.T) {
	customHome := t.TempDir()
	t.Setenv("CODESUM_HOME", customHome)

	home, err := GetCodesumHome()
	if err != nil {
		t.Fatalf("GetCodesumHome() error = %v", err)
	}

	if home != customHome {
		t.Errorf("GetCodesumHome() = %q, want %q", home, customHome)
	}
}

// TestGetCodesumHomeDefault tests the ~/.codesum fallback
func TestGetCodesumHomeDefault(t *testing.T) {
	t.Setenv("CODESUM_HOME", "")
	fakeHome := t.TempDir()
	t.Setenv("HOME", fakeHome)

	home, err := GetCodesumHome()
	if err != nil {
		t.Fatalf("GetCodesumHome() error = %v", err)
	}

	expected := filepath.Join(fakeHome, ".codesum")
	if home != expected {
		t.Errorf("GetCodesumHome() = %q, want %q", home, expected)
	}

	// Verify directory was created
	if _, err := os.Stat(home); os.IsNotExist(err) {
		t.Errorf("Directory not created: %q", home)
	}
}

// TestGetCodesumHomeCreatesEnvDir tests the env var directory is created
func TestGetCodesumHomeCreatesEnvDir(t *testing.T) {
	base := t.TempDir()
	customHome := filepath.Join(base, "nested", "codesum-home")
	t.Setenv("CODESUM_HOME", customHome)

	home, err := GetCodesumHome()
	if err != nil {
		t.Fatalf("GetCodesumHome() error = %v", err)
	}

	if _, err := os.Stat(home); os.IsNotExist(err) {
		t.Errorf("Directory not created: %q", home)
	}
}

// TestGetHistoryDBPath tests the history database path resolution
func TestGetHistoryDBPath(t *testing.T) {
	customHome := t.TempDir()
	t.Setenv("CODESUM_HOME", customHome)

	dbPath, err := GetHistoryDBPath()
	if err != nil {
		t.Fatalf("GetHistoryDBPath() error = %v", err)
	}

	expected := filepath.Join(customHome, "history.db")
	if dbPath != expected {
		t.Errorf("GetHistoryDBPath() = %q, want %q", dbPath, expected)
	}
}
