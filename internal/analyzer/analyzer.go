// Package analyzer infers a project's tech stack from its manifest and
// marker files: languages, frameworks, package managers, build tools,
// project types, and per-manager dependency maps.
//
// Each manifest family is handled by one ManifestParser. The Analyzer
// consults an ordered chain and the first parser claiming a file wins,
// so marker rows late in the chain never shadow real manifest parsing.
// Parsers work from content the scanner already cached; the analyzer
// never touches the filesystem.
package analyzer

import (
	"errors"
	"path"
	"strings"

	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// errMalformedXML marks manifest content the XML token walk consumed
// without finding a single element.
var errMalformedXML = errors.New("no XML elements found")

// ManifestParser recognizes one family of manifest or marker files and
// folds what it learns into the running stack analysis.
type ManifestParser interface {
	// Matches reports whether this parser claims the file.
	Matches(path string) bool
	// Analyze extracts stack facts from the file. A broken manifest is
	// skipped, never fatal.
	Analyze(f models.FileInfo, rec *models.StackAnalysis)
}

// Analyzer dispatches scanned files through the parser chain.
type Analyzer struct {
	parsers []ManifestParser
	log     logger.Logger
}

// New creates an Analyzer with the full parser chain. A nil logger is
// replaced with a no-op logger.
func New(log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Analyzer{
		log: log,
		parsers: []ManifestParser{
			npmParser{log},
			mavenParser{log},
			gradleParser{},
			pipParser{},
			pyprojectParser{log},
			cargoParser{log},
			gomodParser{},
			dotnetParser{log},
			nugetParser{log},
			gemfileParser{},
			pubspecParser{log},
			iosParser{},
			cmakeParser{},
			makefileParser{},
			frameworkMarkerParser{},
		},
	}
}

// Analyze runs every file through the parser chain, then finishes with
// the extension-based project-type pass.
func (a *Analyzer) Analyze(files []models.FileInfo) *models.StackAnalysis {
	rec := models.NewStackAnalysis()

	for _, f := range files {
		for _, p := range a.parsers {
			if p.Matches(f.Path) {
				a.log.LogTrace("Analyzing manifest %s", f.Path)
				p.Analyze(f, rec)
				break
			}
		}
	}

	detectProjectPatterns(files, rec)
	return rec
}

// projectTypePatterns maps file extensions to the project type their
// presence implies.
var projectTypePatterns = []struct {
	projectType string
	extensions  []string
}{
	{"Mobile App", []string{".swift", ".m", ".kt", ".java", ".dart"}},
	{"Frontend", []string{".jsx", ".tsx", ".vue", ".svelte"}},
	{"Backend API", []string{".py", ".java", ".go", ".rs", ".cs"}},
	{"Shell/DevOps", []string{".sh", ".bash", ".zsh", ".fish"}},
	{"Infrastructure", []string{".tf", ".yml", ".yaml"}},
	{"Documentation", []string{".md", ".rst", ".txt"}},
}

func detectProjectPatterns(files []models.FileInfo, rec *models.StackAnalysis) {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Ext] = true
	}

	for _, row := range projectTypePatterns {
		for _, ext := range row.extensions {
			if present[ext] {
				rec.ProjectTypes[row.projectType] = true
				break
			}
		}
	}
}

func baseLower(filePath string) string {
	return strings.ToLower(path.Base(filePath))
}

// anyDepContains reports whether any dependency name contains substr,
// case-sensitively.
func anyDepContains(deps map[string]string, substr string) bool {
	for name := range deps {
		if strings.Contains(name, substr) {
			return true
		}
	}
	return false
}

// anyDepContainsFold is the case-insensitive variant; substr must be
// lower case.
func anyDepContainsFold(deps map[string]string, substr string) bool {
	for name := range deps {
		if strings.Contains(strings.ToLower(name), substr) {
			return true
		}
	}
	return false
}

// hasAnyKey reports whether any of the exact keys is present.
func hasAnyKey(deps map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := deps[k]; ok {
			return true
		}
	}
	return false
}

// stringifyVersions flattens manifest dependency values: plain strings
// pass through, structured constraints (tables, lists) collapse to "".
// Only dependency names are ever rendered, so nothing is lost.
func stringifyVersions(raw map[string]interface{}) map[string]string {
	deps := make(map[string]string, len(raw))
	for name, value := range raw {
		if s, ok := value.(string); ok {
			deps[name] = s
		} else {
			deps[name] = ""
		}
	}
	return deps
}
