package scanner

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// autoIgnorePatterns excludes build artifacts, dependency trees, lock
// files, and editor state without any configuration. Three pattern kinds:
// a trailing slash matches a directory segment anywhere in the path, a
// leading "*." matches a filename suffix, anything else matches the exact
// filename.
var autoIgnorePatterns = []string{
	// IDE and editor state
	".idea/",
	".vscode/",
	".DS_Store",
	"Thumbs.db",

	// Build output and dependency trees
	".gradle/",
	"build/",
	"dist/",
	"out/",
	"META-INF/",
	"buildSrc/",
	"pkg/",
	"venv/",
	".venv/",
	"target/",
	"bin/",
	"obj/",

	// Node.js and TypeScript
	"node_modules/",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	".next/",
	".next-env.d.ts",

	// Python
	"__pycache__/",
	".pytest_cache/",
	"*.pyc",

	// Testing and coverage
	"coverage/",
	".nyc_output/",
	".coverage",
	"htmlcov/",

	// Logs and temporary files
	"*.log",
	"*.tmp",
	"*.temp",
	".env.local",
	".env.development.local",
	".env.production.local",

	// Version control
	".git/",
	".svn/",

	// Other ecosystems
	"vendor/",
	"Cargo.lock",
	"composer.lock",
	".terraform/",
	"terraform.tfstate",
	"terraform.tfstate.backup",
}

// shouldAutoIgnore reports whether a relative file path hits the built-in
// ignore table. Handles nested directories: frontend/node_modules/x.js is
// ignored because node_modules appears as a path segment.
func shouldAutoIgnore(relPath string) bool {
	parts := strings.Split(relPath, "/")
	filename := parts[len(parts)-1]

	for _, pattern := range autoIgnorePatterns {
		switch {
		case strings.HasSuffix(pattern, "/"):
			dirName := strings.TrimSuffix(pattern, "/")
			for _, part := range parts {
				if part == dirName {
					return true
				}
			}
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(relPath, pattern[1:]) {
				return true
			}
		default:
			if filename == pattern {
				return true
			}
		}
	}
	return false
}

// autoIgnoredDir reports whether a relative directory path hits one of the
// directory patterns in the ignore table. Only directory patterns apply;
// exact-name and suffix patterns are file rules.
func autoIgnoredDir(relPath string) bool {
	parts := strings.Split(relPath, "/")
	for _, pattern := range autoIgnorePatterns {
		if !strings.HasSuffix(pattern, "/") {
			continue
		}
		dirName := strings.TrimSuffix(pattern, "/")
		for _, part := range parts {
			if part == dirName {
				return true
			}
		}
	}
	return false
}

// loadGitignorePatterns reads a .gitignore at the scan root, if present.
// Comments, blanks, and negation lines are dropped; negation is not
// supported by the simplified matcher below.
func (s *Scanner) loadGitignorePatterns() []string {
	gitignorePath := filepath.Join(s.opts.RootDir, ".gitignore")

	data, err := os.ReadFile(gitignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.LogWarn("Could not read .gitignore: %v", err)
		}
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			s.log.LogDebug("Skipping unsupported negation pattern %q in .gitignore", line)
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore reports whether the path matches any discovered
// .gitignore pattern.
func matchesGitignore(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesGitignorePattern(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchesGitignorePattern applies simplified gitignore semantics, enough
// for the common patterns real projects carry:
//   - "dir/" matches when the path contains that directory segment or
//     starts with the pattern
//   - patterns with a wildcard glob against the filename when they have no
//     separator, otherwise against the whole relative path
//   - bare literals match the filename exactly; literals containing a
//     separator match as path substrings
func matchesGitignorePattern(relPath, pattern string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.Contains("/"+relPath, "/"+pattern) || strings.HasPrefix(relPath, pattern)
	}

	if strings.Contains(pattern, "*") {
		if !strings.Contains(pattern, "/") {
			matched, _ := path.Match(pattern, path.Base(relPath))
			return matched
		}
		matched, _ := path.Match(pattern, relPath)
		return matched
	}

	if strings.Contains(pattern, "/") {
		return strings.Contains(relPath, pattern)
	}
	return path.Base(relPath) == pattern
}
