package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "summary.md.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.path != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.path)
	}
}

func TestLockUnlock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "summary.md.lock")

	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestTryLockContention(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "summary.md.lock")

	first := NewFileLock(lockPath)
	if err := first.Lock(); err != nil {
		t.Fatalf("Failed to acquire first lock: %v", err)
	}
	defer first.Unlock()

	// flock locks are per file description, so contention needs a second
	// Flock value on the same path
	second := NewFileLock(lockPath)
	acquired, err := second.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if acquired {
		t.Error("TryLock() should not acquire a held lock")
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "summary.md")

	content := []byte("# Codebase Summary\n\ntest content\n")
	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("File content = %q, want %q", got, content)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Failed to stat written file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestAtomicWriteCreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, ".codesum", "config.yaml")

	if err := AtomicWrite(target, []byte("log_level: info\n")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Errorf("Target file not created: %v", err)
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "summary.md")

	if err := AtomicWrite(target, []byte("first")); err != nil {
		t.Fatalf("First AtomicWrite() error = %v", err)
	}
	if err := AtomicWrite(target, []byte("second")); err != nil {
		t.Fatalf("Second AtomicWrite() error = %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("File content = %q, want %q", got, "second")
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "summary.md")

	if err := AtomicWrite(target, []byte("content")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
}

func TestLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "summary.md")

	if err := LockAndWrite(target, []byte("locked write")); err != nil {
		t.Fatalf("LockAndWrite() error = %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(got) != "locked write" {
		t.Errorf("File content = %q, want %q", got, "locked write")
	}

	if _, err := os.Stat(target + ".lock"); !os.IsNotExist(err) {
		t.Errorf("Lock file should be removed after write, stat err = %v", err)
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "summary.md")

	const goroutines = 8

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer wg.Done()

			// Each writer produces internally consistent content
			content := strings.Repeat(fmt.Sprintf("writer-%d\n", n), 50)
			if err := LockAndWrite(target, []byte(content)); err != nil {
				t.Errorf("LockAndWrite() error = %v", err)
			}
		}(i)
	}

	wg.Wait()

	// Whichever writer finished last, the file must be one writer's
	// complete output, never interleaved
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read final file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("Expected 50 lines, got %d (torn write detected)", len(lines))
	}
	for _, line := range lines {
		if line != lines[0] {
			t.Errorf("Interleaved content: %q vs %q", line, lines[0])
		}
	}
}
