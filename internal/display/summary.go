package display

import (
	"fmt"
	"io"
	"time"
)

// RunSummary is the end-of-run block a generate run prints to stderr.
type RunSummary struct {
	Files       int
	Lines       int
	Truncated   int
	Errors      int
	Duration    time.Duration
	Destination string // report path, empty for stdout
}

// Display writes a green checkmark line, the report destination, and
// yellow counters for anything worth a second look.
func (s RunSummary) Display(out io.Writer) {
	fmt.Fprintf(out, "\x1b[32m✓\x1b[0m Summarized %d %s (%d lines) in %s\n",
		s.Files, plural(s.Files, "file", "files"), s.Lines, formatRunDuration(s.Duration))

	dest := s.Destination
	if dest == "" {
		dest = "stdout"
	}
	fmt.Fprintf(out, "  Report: %s\n", dest)

	if s.Truncated > 0 {
		fmt.Fprintf(out, "  \x1b[33mTruncated: %d %s\x1b[0m\n",
			s.Truncated, plural(s.Truncated, "file", "files"))
	}
	if s.Errors > 0 {
		fmt.Fprintf(out, "  \x1b[33mRead errors: %d %s\x1b[0m\n",
			s.Errors, plural(s.Errors, "file", "files"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatRunDuration trims sub-millisecond noise so the summary line
// stays short.
func formatRunDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
