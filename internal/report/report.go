// Package report renders the final summary document: preamble, project
// overview, entry-point and configuration sections, tech-stack
// analysis, optional table of contents, and one fenced section per
// file in priority order. Rendering is deterministic: every set joins
// sorted, and two runs over an unchanged tree emit identical bytes.
package report

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wheeler/codesum/internal/classifier"
	"github.com/wheeler/codesum/internal/models"
	"github.com/wheeler/codesum/internal/priority"
)

const preamble = "# Codebase Summary\n\n" +
	"The following is a complete codebase summary optimized for structural analysis. " +
	"Files are prioritized by importance - entry points and configuration first, " +
	"followed by core application logic. This ordering helps establish program flow " +
	"and architecture context upfront.\n\n"

const codeFilesHeader = "## Code Files (Priority Order)\n\n" +
	"*Files are ordered by importance for analysis: " +
	"entry points → configuration → core logic → supporting files*\n\n"

// manifestNames are the basenames listed on the overview's dependency
// line. Compared case-sensitively.
var manifestNames = map[string]bool{
	"package.json":     true,
	"pom.xml":          true,
	"requirements.txt": true,
	"build.gradle":     true,
	"pyproject.toml":   true,
	"go.mod":           true,
	"cargo.toml":       true,
	"pubspec.yaml":     true,
}

// Document carries everything one rendered report needs.
type Document struct {
	// Files in discovery order, content included.
	Files []models.FileInfo
	// Ordered is the priority permutation of the file paths.
	Ordered []string
	// EntryPoints groups files by role.
	EntryPoints *models.EntryPoints
	// Stack is the finalized tech-stack analysis.
	Stack *models.StackAnalysis
	// TOC enables the table-of-contents section.
	TOC bool
}

// Write renders doc to w. The only failure mode is the writer itself.
func Write(w io.Writer, doc Document) error {
	if doc.EntryPoints == nil {
		doc.EntryPoints = &models.EntryPoints{}
	}
	if doc.Stack == nil {
		doc.Stack = models.NewStackAnalysis()
	}

	byPath := make(map[string]models.FileInfo, len(doc.Files))
	paths := make([]string, 0, len(doc.Files))
	for _, f := range doc.Files {
		byPath[f.Path] = f
		paths = append(paths, f.Path)
	}

	pw := &sectionWriter{w: w}
	pw.writeString(preamble)
	pw.overview(doc.Files, doc.EntryPoints, paths)
	pw.configSection(paths)
	pw.dependencySection(doc.Stack)
	if doc.TOC {
		pw.writeString("## Table of Contents (Prioritized Order)\n\n")
		pw.writeString(Tree(doc.Ordered))
		pw.writeString("\n\n")
	}
	pw.writeString(codeFilesHeader)
	for _, p := range doc.Ordered {
		pw.fileSection(byPath[p], doc.EntryPoints)
	}
	return pw.err
}

// sectionWriter remembers the first write error so section code stays
// free of error plumbing.
type sectionWriter struct {
	w   io.Writer
	err error
}

func (pw *sectionWriter) writeString(s string) {
	if pw.err != nil {
		return
	}
	_, pw.err = io.WriteString(pw.w, s)
}

func (pw *sectionWriter) printf(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

func (pw *sectionWriter) overview(files []models.FileInfo, ep *models.EntryPoints, paths []string) {
	langCounts := make(map[string]int)
	totalLines := 0
	var depFiles []string
	for _, f := range files {
		lang := classifier.Language(f.Path)
		if lang == "" {
			lang = "unknown"
		}
		langCounts[lang]++
		if f.ReadErr == nil {
			totalLines += f.Lines
		}
		if manifestNames[path.Base(f.Path)] {
			depFiles = append(depFiles, f.Path)
		}
	}
	langs := make([]string, 0, len(langCounts))
	for lang := range langCounts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	depSummary := "- Dependency files: None detected\n"
	if len(depFiles) > 0 {
		depSummary = fmt.Sprintf("- Dependency files: %s\n", strings.Join(depFiles, ", "))
	}

	pw.printf("## Project Overview\n\n- Total files: %d\n- Languages used: %s\n- Approximate total lines: %d\n%s\n",
		len(files), strings.Join(langs, ", "), totalLines, depSummary)

	pw.writeString("## Entry Points & Architecture\n\n")
	if len(ep.Main) > 0 {
		pw.printf("**Main Entry Points**: %s\n", strings.Join(ep.Main, ", "))
	}
	if len(ep.Config) > 0 {
		pw.printf("**Configuration**: %s\n", strings.Join(ep.Config, ", "))
	}
	if len(ep.Startup) > 0 {
		pw.printf("**Startup Scripts**: %s\n", strings.Join(ep.Startup, ", "))
	}
	if len(ep.APIRoutes) > 0 {
		pw.printf("**API/Routes**: %s\n", strings.Join(ep.APIRoutes, ", "))
	}
	pw.writeString("\n")
}

func (pw *sectionWriter) configSection(paths []string) {
	configs := priority.ConfigFiles(paths)
	if len(configs) == 0 {
		return
	}

	pw.writeString("## Configuration Files\n\n")
	shown := configs
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, p := range shown {
		desc, ok := priority.Describe(p)
		if !ok {
			desc = "Configuration file"
		}
		pw.printf("**%s**: %s\n", p, desc)
	}
	if len(configs) > 8 {
		pw.printf("*...and %d more configuration files*\n", len(configs)-8)
	}
	pw.writeString("\n")
}

func (pw *sectionWriter) dependencySection(stack *models.StackAnalysis) {
	if stack.Empty() {
		return
	}

	pw.writeString("## Dependency Analysis & Tech Stack\n\n")
	if len(stack.ProjectTypes) > 0 {
		pw.printf("**Project Type(s)**: %s\n", strings.Join(stack.SortedProjectTypes(), ", "))
	}
	if len(stack.Languages) > 0 {
		pw.printf("**Languages**: %s\n", strings.Join(stack.SortedLanguages(), ", "))
	}
	if len(stack.Frameworks) > 0 {
		pw.printf("**Frameworks/Libraries**: %s\n", strings.Join(stack.SortedFrameworks(), ", "))
	}
	if len(stack.PackageManagers) > 0 {
		pw.printf("**Package Managers**: %s\n", strings.Join(stack.SortedPackageManagers(), ", "))
	}
	if len(stack.BuildTools) > 0 {
		pw.printf("**Build Tools**: %s\n", strings.Join(stack.SortedBuildTools(), ", "))
	}
	if len(stack.Dependencies) > 0 {
		pw.writeString("**Key Dependencies**:\n")
		for _, manager := range stack.DependencyManagers() {
			names := stack.SortedDependencyNames(manager)
			if len(names) == 0 {
				continue
			}
			shown := names
			if len(shown) > 5 {
				shown = shown[:5]
			}
			pw.printf("- %s: %s", titleCase(manager), strings.Join(shown, ", "))
			if len(names) > 5 {
				pw.printf(" (+%d more)", len(names)-5)
			}
			pw.writeString("\n")
		}
	}
	pw.writeString("\n")
}

func (pw *sectionWriter) fileSection(f models.FileInfo, ep *models.EntryPoints) {
	lang := classifier.Language(f.Path)
	pw.printf("\n### %s\n\n", f.Path)

	if f.ReadErr != nil {
		pw.printf("**Metadata**: Error reading file\n\n# Error reading file: %v\n\n```%s\n```\n\n", f.ReadErr, lang)
		return
	}

	content, truncated := Truncate(f.Content)

	parts := []string{fmt.Sprintf("%d lines, %d bytes", f.Lines, f.Size)}
	if marker := ep.RoleOf(f.Path).Marker(); marker != "" {
		parts = append(parts, marker)
	}
	if truncated {
		shown := commaGroup(int64(utf8.RuneCountInString(content)))
		parts = append(parts, fmt.Sprintf("**TRUNCATED** (showing ~%s chars)", shown))
	}
	if desc, ok := priority.Describe(f.Path); ok {
		parts = append(parts, "Config: "+desc)
	}
	pw.printf("**Metadata**: %s\n\n", strings.Join(parts, " | "))

	if patterns := classifier.ContentPatterns(f.Path, f.Content); len(patterns) > 0 {
		pw.printf("**Detected patterns**: %s\n\n", strings.Join(patterns, ", "))
	}

	if truncated {
		pw.writeString("📄 **LARGE FILE NOTICE**: This file was truncated for readability.\n")
		pw.printf("**Original size**: %s lines (%s bytes)\n", commaGroup(int64(f.Lines)), commaGroup(f.Size))
		pw.printf("**To see complete file**: Ask me to \"show the full contents of %s\"\n\n", f.Path)
	}

	pw.printf("```%s\n%s\n```\n\n", lang, strings.TrimRightFunc(content, unicode.IsSpace))
}

// titleCase mirrors str.title from the wider scripting world: the
// first letter of every alphabetic run is upper-cased, the rest
// lowered, so "npm/yarn" becomes "Npm/Yarn".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
		} else {
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}

// commaGroup renders n with comma thousands separators.
func commaGroup(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

