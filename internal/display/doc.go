// Package display provides terminal output formatting for user-facing
// warnings and the end-of-run summary.
//
// Everything here writes through an io.Writer so commands can point it
// at stderr (keeping a stdout report pipeable) and tests can capture
// it. ANSI escape codes are used directly:
//   - Green (\x1b[32m) for the success checkmark
//   - Yellow (\x1b[33m) for warnings and non-fatal counts
//   - Reset (\x1b[0m) after each colored section
//
// Log lines belong to the logger package; display is for the few
// blocks an operator reads at the end of a run.
package display
