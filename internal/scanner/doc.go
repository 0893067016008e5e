// Package scanner provides the file discovery pass that feeds every other
// stage of summary generation.
//
// This package serves as the single source of truth for which files appear
// in a summary, walking the target tree once and applying every exclusion
// rule in a fixed order before any content analysis happens.
//
// # Purpose
//
// The scanner package is designed for:
//   - Recursive, deterministic directory traversal (lexical walk order)
//   - Inclusion by extension allow-list plus a basename allow-list for
//     well-known extensionless files (Makefile, Dockerfile, gradlew, ...)
//   - Exclusion of build artifacts, lock files, and editor state via a
//     built-in auto-ignore table
//   - Exclusion via an optional external ignore file with full gitignore
//     wildcard semantics
//   - Exclusion via a .gitignore discovered at the scan root, using a
//     simplified matcher (no negation, conservative wildcards)
//   - Self-exclusion of the output file when it lives inside the tree
//   - Error-tolerant reading: unreadable or non-UTF-8 files are carried
//     through with their error attached rather than aborting the scan
//
// # Rule Order
//
// For every regular file the rules run cheapest-first:
//
//  1. Extension must be on the allow-list (or basename on the basename
//     allow-list) and not on the runtime deny-list
//  2. External ignore file patterns, when configured
//  3. The output file itself is skipped
//  4. Auto-ignore table (directory segments, exact names, *.suffix)
//  5. Discovered .gitignore patterns
//
// Directories matching an auto-ignore directory pattern are pruned whole,
// so node_modules and friends cost nothing to traverse.
//
// # Content
//
// Each included file is read exactly once. The content is cached on the
// returned FileInfo so the analyzer, prioritizer, and report writer never
// reopen files, which keeps a generate run single-pass over the disk.
package scanner
