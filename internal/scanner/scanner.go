package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// DefaultAllowedExtensions is the built-in extension allow-list. Only files
// carrying one of these extensions (or a name on DefaultAllowedBasenames)
// are considered for the summary.
var DefaultAllowedExtensions = []string{
	".tf", ".tfvars", ".py", ".sh", ".java", ".yaml", ".yml", ".json",
	".md", ".txt", ".kt", ".groovy", ".kts", ".gradle", ".properties",
	".xml", ".sql", ".csv", ".ini", ".conf", ".cfg", ".log", ".gitignore",
	".dockerignore", ".editorconfig", ".yml.example", ".yaml.example",
	".go", ".service", ".toml", ".proto", ".cs", ".ts", ".js", ".dockerfile",
	// Manifest extensions for the Go and .NET analyzers
	".mod", ".csproj", ".fsproj", ".vbproj", ".config",
}

// DefaultAllowedBasenames admits well-known extensionless build and
// manifest files that the extension check would otherwise drop.
// Matched case-insensitively.
var DefaultAllowedBasenames = []string{
	"Makefile", "Dockerfile", "Gemfile", "Podfile",
	"Jenkinsfile", "gradlew", "mvnw",
}

// Options configures a scan.
type Options struct {
	// RootDir is the directory to scan.
	RootDir string
	// OutputPath is where the summary will be written; the file is
	// excluded from its own summary. Empty means stdout (nothing to
	// exclude).
	OutputPath string
	// IgnoreFile is an optional path to an external ignore-pattern file
	// with gitignore semantics.
	IgnoreFile string
	// IgnoreExtensions is the runtime deny-list; entries are normalized
	// to leading-dot lowercase before use.
	IgnoreExtensions []string
	// AllowedExtensions overrides DefaultAllowedExtensions when non-empty.
	AllowedExtensions []string
	// AllowedBasenames overrides DefaultAllowedBasenames when non-empty.
	AllowedBasenames []string
}

// Result contains the outcome of a scan.
type Result struct {
	// Files holds every included file, sorted by relative path, with
	// content already read and cached.
	Files []models.FileInfo
	// Errors contains non-fatal problems encountered during the scan.
	Errors []error
	// GitignorePatternCount is the number of usable patterns loaded from
	// a .gitignore at the scan root.
	GitignorePatternCount int
}

// Scanner walks a directory tree and produces the filtered, content-loaded
// file list that the rest of a generate run works from.
type Scanner struct {
	opts Options
	log  logger.Logger

	allowedExts  map[string]bool
	allowedNames map[string]bool
	ignoreExts   map[string]bool

	ignoreSpec        *gitignore.GitIgnore
	gitignorePatterns []string
	outputAbs         string
}

// New creates a Scanner for the given options. A nil logger is replaced
// with a no-op logger.
func New(opts Options, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Scanner{opts: opts, log: log}

	exts := opts.AllowedExtensions
	if len(exts) == 0 {
		exts = DefaultAllowedExtensions
	}
	s.allowedExts = make(map[string]bool, len(exts))
	for _, ext := range NormalizeExtensions(exts) {
		s.allowedExts[ext] = true
	}

	names := opts.AllowedBasenames
	if len(names) == 0 {
		names = DefaultAllowedBasenames
	}
	s.allowedNames = make(map[string]bool, len(names))
	for _, name := range names {
		s.allowedNames[strings.ToLower(name)] = true
	}

	s.ignoreExts = make(map[string]bool, len(opts.IgnoreExtensions))
	for _, ext := range NormalizeExtensions(opts.IgnoreExtensions) {
		s.ignoreExts[ext] = true
	}

	return s
}

// NormalizeExtensions lower-cases extensions and ensures each starts with
// a dot, so ".LOG", "log", and ".log" all refer to the same extension.
func NormalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// Scan walks the root directory and returns the filtered file list with
// content loaded. Individual unreadable files never fail the scan; they
// are returned with ReadErr set and collected in Result.Errors.
func (s *Scanner) Scan() (*Result, error) {
	info, err := os.Stat(s.opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", s.opts.RootDir)
	}

	result := &Result{
		Files:  make([]models.FileInfo, 0),
		Errors: make([]error, 0),
	}

	if s.opts.OutputPath != "" {
		if abs, err := filepath.Abs(s.opts.OutputPath); err == nil {
			s.outputAbs = abs
		}
	}

	s.loadIgnoreSpec(result)

	s.gitignorePatterns = s.loadGitignorePatterns()
	result.GitignorePatternCount = len(s.gitignorePatterns)
	if len(s.gitignorePatterns) > 0 {
		s.log.LogInfo("Loaded %d patterns from .gitignore", len(s.gitignorePatterns))
	}

	err = filepath.WalkDir(s.opts.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			s.log.LogWarn("Error accessing %s: %v", path, err)
			return nil
		}

		if path == s.opts.RootDir {
			return nil
		}

		rel, relErr := filepath.Rel(s.opts.RootDir, path)
		if relErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if autoIgnoredDir(rel) {
				s.log.LogTrace("Pruning directory %s", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !s.include(rel, path) {
			return nil
		}

		result.Files = append(result.Files, s.readFile(path, rel, result))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Lexical walk order is already deterministic; sorting by relative
	// path makes the contract explicit and independent of the walker.
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	return result, nil
}

// loadIgnoreSpec compiles the external ignore file, if configured.
// A missing or unparseable file downgrades to a warning.
func (s *Scanner) loadIgnoreSpec(result *Result) {
	if s.opts.IgnoreFile == "" {
		return
	}

	if _, err := os.Stat(s.opts.IgnoreFile); os.IsNotExist(err) {
		s.log.LogWarn("Ignore file '%s' not found. Proceeding without ignoring.", s.opts.IgnoreFile)
		result.Errors = append(result.Errors, fmt.Errorf("ignore file not found: %s", s.opts.IgnoreFile))
		return
	}

	spec, err := gitignore.CompileIgnoreFile(s.opts.IgnoreFile)
	if err != nil {
		s.log.LogWarn("Error parsing ignore file: %v. Proceeding without ignoring.", err)
		result.Errors = append(result.Errors, fmt.Errorf("failed to parse ignore file %s: %w", s.opts.IgnoreFile, err))
		return
	}
	s.ignoreSpec = spec
}

// include applies every per-file exclusion rule, cheapest first.
func (s *Scanner) include(rel, fullPath string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	ext := strings.ToLower(filepath.Ext(base))

	if !s.allowedExts[ext] && !s.allowedNames[strings.ToLower(base)] {
		return false
	}
	if s.ignoreExts[ext] {
		return false
	}

	if s.ignoreSpec != nil && s.ignoreSpec.MatchesPath(rel) {
		return false
	}

	if s.outputAbs != "" {
		if abs, err := filepath.Abs(fullPath); err == nil && abs == s.outputAbs {
			s.log.LogDebug("Skipping output file %s", rel)
			return false
		}
	}

	if shouldAutoIgnore(rel) {
		return false
	}

	if matchesGitignore(rel, s.gitignorePatterns) {
		return false
	}

	return true
}

// readFile reads and caches a file's content. Read failures and invalid
// UTF-8 are recorded on the FileInfo instead of aborting the scan.
func (s *Scanner) readFile(fullPath, rel string, result *Result) models.FileInfo {
	fi := models.FileInfo{
		Path: rel,
		Ext:  strings.ToLower(filepath.Ext(rel)),
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		fi.ReadErr = err
		result.Errors = append(result.Errors, fmt.Errorf("failed to read %s: %w", rel, err))
		s.log.LogWarn("Failed to read %s: %v", rel, err)
		return fi
	}

	fi.Size = int64(len(data))

	if !utf8.Valid(data) {
		fi.ReadErr = fmt.Errorf("file is not valid UTF-8 text")
		result.Errors = append(result.Errors, fmt.Errorf("%s is not valid UTF-8 text", rel))
		s.log.LogWarn("Skipping content of %s: not valid UTF-8 text", rel)
		return fi
	}

	fi.Content = string(data)
	fi.Lines = CountLines(fi.Content)
	return fi
}

// CountLines counts lines the way a line iterator would: a trailing
// newline does not start a new line, and empty content has zero lines.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
