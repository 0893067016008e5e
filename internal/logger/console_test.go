package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		message      string
		shouldAppear bool
	}{
		// trace level - should see everything
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", message: "trace msg", shouldAppear: true},
		{name: "trace sees debug", logLevel: "trace", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", message: "error msg", shouldAppear: true},

		// debug level - should not see trace
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "debug sees info", logLevel: "debug", messageLevel: "info", message: "info msg", shouldAppear: true},

		// info level - should not see trace/debug
		{name: "info blocks trace", logLevel: "info", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", message: "warn msg", shouldAppear: true},

		// warn level - should only see warn/error
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", message: "info msg", shouldAppear: false},
		{name: "warn sees warn", logLevel: "warn", messageLevel: "warn", message: "warn msg", shouldAppear: true},

		// error level - should only see error
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", message: "warn msg", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", message: "error msg", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			switch tt.messageLevel {
			case "trace":
				logger.LogTrace(tt.message)
			case "debug":
				logger.LogDebug(tt.message)
			case "info":
				logger.LogInfo(tt.message)
			case "warn":
				logger.LogWarn(tt.message)
			case "error":
				logger.LogError(tt.message)
			}

			output := buf.String()
			contains := strings.Contains(output, tt.message)

			if tt.shouldAppear && !contains {
				t.Errorf("Expected message %q to appear in output, but it didn't. Output: %q", tt.message, output)
			}
			if !tt.shouldAppear && contains {
				t.Errorf("Expected message %q NOT to appear in output, but it did. Output: %q", tt.message, output)
			}
		})
	}
}

// TestLogFormat verifies the [HH:MM:SS] [LEVEL] message format
func TestLogFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogInfo("scanning directory")

	output := buf.String()
	if !strings.Contains(output, "[INFO] scanning directory") {
		t.Errorf("Output missing level prefix: %q", output)
	}
	if !strings.HasPrefix(output, "[") {
		t.Errorf("Output missing timestamp prefix: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("Output missing trailing newline: %q", output)
	}
}

// TestLogFormatArgs verifies Printf-style argument formatting
func TestLogFormatArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogInfo("Loaded %d patterns from %s", 7, ".gitignore")

	if !strings.Contains(buf.String(), "[INFO] Loaded 7 patterns from .gitignore") {
		t.Errorf("Arguments not formatted into message: %q", buf.String())
	}
}

// TestLogLiteralPercent verifies a message without args is not re-formatted
func TestLogLiteralPercent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogInfo("coverage at 85% of files")

	if !strings.Contains(buf.String(), "coverage at 85% of files") {
		t.Errorf("Literal percent mangled: %q", buf.String())
	}
}

// TestNormalizeLogLevel verifies level normalization and defaults
func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"trace", "trace"},
		{"DEBUG", "debug"},
		{"  Info  ", "info"},
		{"WARN", "warn"},
		{"error", "error"},
		{"", "info"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestNilWriter verifies that a nil writer discards messages without panicking
func TestNilWriter(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")

	logger.LogTrace("trace")
	logger.LogDebug("debug")
	logger.LogInfo("info")
	logger.LogWarn("warn")
	logger.LogError("error")
}

// TestNoOpLogger verifies NoOpLogger satisfies Logger and stays silent
func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()

	l.LogTrace("trace")
	l.LogDebug("debug")
	l.LogInfo("info")
	l.LogWarn("warn")
	l.LogError("error")
}

// TestConsoleLoggerSatisfiesInterface verifies ConsoleLogger implements Logger
func TestConsoleLoggerSatisfiesInterface(t *testing.T) {
	var _ Logger = NewConsoleLogger(&bytes.Buffer{}, "info")
}

// TestNoColorForBuffer verifies color output is disabled for non-terminal writers
func TestNoColorForBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogWarn("plain text expected")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected no ANSI escapes for buffer writer, got %q", buf.String())
	}
}
