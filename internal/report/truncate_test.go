package report

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const markerStart = "\n\n# <TRUNCATED>"

func TestTruncateUnderBudget(t *testing.T) {
	content := "short file\n"
	got, truncated := Truncate(content)
	if truncated {
		t.Error("Truncate() truncated = true, want false")
	}
	if got != content {
		t.Errorf("Truncate() = %q, want unchanged", got)
	}
}

func TestTruncateExactBudget(t *testing.T) {
	content := strings.Repeat("b", truncateBudget)
	got, truncated := Truncate(content)
	if truncated {
		t.Error("content at exactly the budget should pass through")
	}
	if got != content {
		t.Error("content at exactly the budget changed")
	}
}

func TestTruncateCutsAtNewline(t *testing.T) {
	content := strings.Repeat(strings.Repeat("x", 99)+"\n", 600)

	got, truncated := Truncate(content)
	if !truncated {
		t.Fatal("Truncate() truncated = false, want true")
	}

	idx := strings.Index(got, markerStart)
	if idx != 49999 {
		t.Errorf("cut at %d, want 49999 (the newline below the budget)", idx)
	}
	if got[:idx] != content[:idx] {
		t.Error("retained prefix differs from original content")
	}
	if !strings.Contains(got, "# Original file: 60,000 characters (~60KB)\n") {
		t.Errorf("original size line wrong:\n%s", got[idx:])
	}
	if !strings.Contains(got, "# Showing first: 49,999 characters (~49KB)\n") {
		t.Errorf("shown size line wrong:\n%s", got[idx:])
	}
	if !strings.HasSuffix(got, "# </TRUNCATED>") {
		t.Error("marker block should end the content without a trailing newline")
	}
}

func TestTruncateHardCutWithoutNewline(t *testing.T) {
	content := strings.Repeat("a", 50001)

	got, truncated := Truncate(content)
	if !truncated {
		t.Fatal("Truncate() truncated = false, want true")
	}

	idx := strings.Index(got, markerStart)
	if idx != truncateBudget {
		t.Errorf("cut at %d, want hard cut at %d", idx, truncateBudget)
	}
	if !strings.Contains(got, "# Original file: 50,001 characters (~50KB)\n") {
		t.Errorf("original size line wrong:\n%s", got[idx:])
	}
	if !strings.Contains(got, "# Showing first: 50,000 characters (~50KB)\n") {
		t.Errorf("shown size line wrong:\n%s", got[idx:])
	}
}

func TestTruncateNewlineWindowBoundary(t *testing.T) {
	// A newline 499 characters below the budget is still honored; one
	// 500 below falls outside the search window and forces a hard cut.
	inside := strings.Repeat("a", 49501) + "\n" + strings.Repeat("b", 10000)
	got, _ := Truncate(inside)
	if idx := strings.Index(got, markerStart); idx != 49501 {
		t.Errorf("newline inside window: cut at %d, want 49501", idx)
	}

	outside := strings.Repeat("a", 49500) + "\n" + strings.Repeat("b", 10000)
	got, _ = Truncate(outside)
	if idx := strings.Index(got, markerStart); idx != truncateBudget {
		t.Errorf("newline outside window: cut at %d, want %d", idx, truncateBudget)
	}
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	content := strings.Repeat("日", 50500)

	got, truncated := Truncate(content)
	if !truncated {
		t.Fatal("Truncate() truncated = false, want true")
	}

	idx := strings.Index(got, markerStart)
	if kept := utf8.RuneCountInString(got[:idx]); kept != truncateBudget {
		t.Errorf("kept %d runes, want %d", kept, truncateBudget)
	}
	if !strings.Contains(got, "# Original file: 50,500 characters (~50KB)\n") {
		t.Errorf("original size should count characters, not bytes:\n%s", got[idx:])
	}
}
