package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/wheeler/codesum/internal/analyzer"
	"github.com/wheeler/codesum/internal/classifier"
	"github.com/wheeler/codesum/internal/config"
	"github.com/wheeler/codesum/internal/display"
	"github.com/wheeler/codesum/internal/filelock"
	"github.com/wheeler/codesum/internal/history"
	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
	"github.com/wheeler/codesum/internal/priority"
	"github.com/wheeler/codesum/internal/report"
	"github.com/wheeler/codesum/internal/scanner"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [directory]",
		Short: "Generate a Markdown summary of a codebase",
		Long: `Generate a single prioritized Markdown summary of a directory tree.

The run walks the target directory (default: current directory), keeps
files on the summarizable allow-list, analyzes manifest files for the
tech stack, classifies entry points, orders the survivors by
architectural importance, and renders the report.

The report goes to stdout unless -o is given; diagnostics always go to
stderr, so a stdout report stays clean for piping.

Configuration is loaded from .codesum/config.yaml under the target
directory if present. CLI flags override configuration file settings.

Examples:
  # Summarize the current directory to stdout
  codesum generate

  # Summarize a project into a file, with a table of contents
  codesum generate ./api -o api-summary.md --toc

  # Exclude extra extensions and honor a custom ignore file
  codesum generate --ignore-ext .csv,.log --ignore-file .sumignore

  # Verbose diagnostics
  codesum generate --log-level debug

  # Skip the run-history record
  codesum generate --no-history`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	// Add flags
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolP("toc", "t", false, "Include a table-of-contents section")
	cmd.Flags().String("ignore-file", "", "Ignore-pattern file (gitignore syntax)")
	cmd.Flags().StringSlice("ignore-ext", nil, "Extensions to exclude (e.g. .log,.csv)")
	cmd.Flags().String("log-level", "", "Log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runGenerate implements the generate command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	// Load configuration from .codesum/config.yaml under the target directory
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Build flag pointers for merge (only explicitly set values)
	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevelFlag, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevelFlag
	}

	var tocPtr *bool
	if cmd.Flags().Changed("toc") {
		tocFlag, _ := cmd.Flags().GetBool("toc")
		tocPtr = &tocFlag
	}

	var ignoreFilePtr *string
	if cmd.Flags().Changed("ignore-file") {
		ignoreFileFlag, _ := cmd.Flags().GetString("ignore-file")
		ignoreFilePtr = &ignoreFileFlag
	}

	var ignoreExtsPtr *[]string
	if cmd.Flags().Changed("ignore-ext") {
		ignoreExtsFlag, _ := cmd.Flags().GetStringSlice("ignore-ext")
		ignoreExtsPtr = &ignoreExtsFlag
	}

	var historyPtr *bool
	if cmd.Flags().Changed("no-history") {
		noHistory, _ := cmd.Flags().GetBool("no-history")
		historyEnabled := !noHistory
		historyPtr = &historyEnabled
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(logLevelPtr, tocPtr, ignoreFilePtr, ignoreExtsPtr, historyPtr)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")

	stderr := cmd.ErrOrStderr()
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	// Scan the tree
	s := scanner.New(scanner.Options{
		RootDir:           rootDir,
		OutputPath:        outputPath,
		IgnoreFile:        cfg.IgnoreFile,
		IgnoreExtensions:  cfg.IgnoreExtensions,
		AllowedExtensions: cfg.AllowedExtensions,
		AllowedBasenames:  cfg.AllowedBasenames,
	}, log)

	result, err := s.Scan()
	if err != nil {
		// An unusable root still yields a valid, empty report. The only
		// fatal condition in a generate run is an unwritable destination.
		log.LogWarn("Scan failed: %v. Rendering an empty report.", err)
		result = &scanner.Result{}
	}

	// Analyze and order
	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	entryPoints := classifier.DetectEntryPoints(paths)
	stack := analyzer.New(log).Analyze(result.Files)
	ordered := priority.Order(paths, entryPoints)

	doc := report.Document{
		Files:       result.Files,
		Ordered:     ordered,
		EntryPoints: entryPoints,
		Stack:       stack,
		TOC:         cfg.TOC,
	}

	// Render
	if outputPath == "" {
		if err := report.Write(cmd.OutOrStdout(), doc); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else {
		var buf bytes.Buffer
		if err := report.Write(&buf, doc); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if err := filelock.LockAndWrite(outputPath, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", outputPath, err)
		}
		log.LogDebug("Report written to %s", outputPath)
	}

	truncated, unreadable := runCounts(result.Files)

	if len(unreadable) > 0 {
		display.WarnUnreadableFiles(unreadable).Display(stderr)
	}

	// Record the run (best-effort; a store failure never fails the run)
	if cfg.History {
		rec := &models.RunRecord{
			RootDir:        absPath(rootDir),
			OutputPath:     outputPath,
			FileCount:      len(result.Files),
			TotalLines:     totalLines(result.Files),
			TruncatedCount: truncated,
			ErrorCount:     len(unreadable),
			Languages:      runLanguages(result.Files),
			ProjectTypes:   stack.SortedProjectTypes(),
			Duration:       time.Since(start),
		}
		if err := recordRun(rec); err != nil {
			display.WarnHistory(err).Display(stderr)
		}
	}

	summary := display.RunSummary{
		Files:       len(result.Files),
		Lines:       totalLines(result.Files),
		Truncated:   truncated,
		Errors:      len(unreadable),
		Duration:    time.Since(start),
		Destination: outputPath,
	}
	summary.Display(stderr)

	return nil
}

// recordRun appends one run record to the history database.
func recordRun(rec *models.RunRecord) error {
	dbPath, err := config.GetHistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolve history database path: %w", err)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), rec); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// runCounts tallies the files the summary calls out: those cut at the
// truncation budget and those rendered as error entries.
func runCounts(files []models.FileInfo) (truncated int, unreadable []string) {
	for _, f := range files {
		if f.ReadErr != nil {
			unreadable = append(unreadable, f.Path)
			continue
		}
		if _, cut := report.Truncate(f.Content); cut {
			truncated++
		}
	}
	return truncated, unreadable
}

// totalLines sums line counts of readable files, matching the report's
// overview figure.
func totalLines(files []models.FileInfo) int {
	total := 0
	for _, f := range files {
		if f.ReadErr == nil {
			total += f.Lines
		}
	}
	return total
}

// runLanguages returns the distinct sorted language names of the
// included files, the same list the report's overview shows.
func runLanguages(files []models.FileInfo) []string {
	set := make(map[string]bool)
	for _, f := range files {
		lang := classifier.Language(f.Path)
		if lang == "" {
			lang = "unknown"
		}
		set[lang] = true
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// absPath resolves a path for the history record; the original spelling
// is kept when resolution fails.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
