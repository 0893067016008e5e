// Package classifier maps files to languages, entry-point roles, and
// content-derived hints. Everything here is table-driven and path-based;
// only ContentPatterns looks inside a file.
package classifier

import (
	"path"
	"strings"

	"github.com/wheeler/codesum/internal/models"
)

// extToLang maps lower-cased extensions to fenced-code-block language ids.
var extToLang = map[string]string{
	".py":           "python",
	".java":         "java",
	".cs":           "csharp",
	".ts":           "typescript",
	".js":           "javascript",
	".yaml":         "yaml",
	".yml":          "yaml",
	".json":         "json",
	".md":           "text",
	".txt":          "text",
	".sh":           "bash",
	".sql":          "sql",
	".csv":          "csv",
	".xml":          "xml",
	".toml":         "toml",
	".proto":        "protobuf",
	".go":           "go",
	".kt":           "kotlin",
	".groovy":       "groovy",
	".gradle":       "gradle",
	".properties":   "properties",
	".ini":          "ini",
	".conf":         "ini",
	".cfg":          "ini",
	".log":          "log",
	".gitignore":    "gitignore",
	".dockerignore": "dockerignore",
	".editorconfig": "editorconfig",
	".dockerfile":   "dockerfile",
	".mod":          "go",
	".csproj":       "xml",
	".fsproj":       "xml",
	".vbproj":       "xml",
	".config":       "xml",
	".tf":           "hcl",
	".tfvars":       "hcl",
	".kts":          "kotlin",
}

// basenameToLang covers well-known extensionless files admitted by the
// scanner's basename allow-list.
var basenameToLang = map[string]string{
	"makefile":    "makefile",
	"dockerfile":  "dockerfile",
	"gemfile":     "ruby",
	"podfile":     "ruby",
	"jenkinsfile": "groovy",
	"gradlew":     "bash",
	"mvnw":        "bash",
}

// Language returns the fenced-code-block language id for a path, or the
// empty string when no mapping exists. Callers that need a non-empty
// label for aggregation should treat "" as "unknown".
func Language(filePath string) string {
	base := strings.ToLower(path.Base(filePath))
	if lang, ok := basenameToLang[base]; ok {
		return lang
	}
	ext := strings.ToLower(path.Ext(base))
	return extToLang[ext]
}

// Entry point filename tables. Matching is case-insensitive on the
// basename.
var (
	mainFiles = []string{
		"main.py", "app.py", "server.py", "run.py", "__main__.py",
		"index.js", "app.js", "server.js", "main.js",
		"Main.java", "Application.java", "App.java",
		"main.go",
		"Program.cs", "Main.cs",
		"main.kt", "Application.kt",
	}
	configFiles = []string{
		"docker-compose.yml", "docker-compose.yaml", "dockerfile",
		"package.json", "pom.xml", "build.gradle", "requirements.txt",
		"pyproject.toml", "setup.py", "go.mod", "cargo.toml",
		".env.example", "config.yaml", "config.yml", "settings.py",
	}
	startupScripts = []string{
		"start.sh", "run.sh", "startup.sh", "deploy.sh",
		"manage.py", "gradlew", "mvnw",
	}
)

// routeSegments flag API surface files by path substring.
var routeSegments = []string{"route", "controller", "handler", "endpoint"}

// buildSegments flag build and deploy files by filename substring.
var buildSegments = []string{"makefile", "jenkinsfile", "dockerfile"}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

var (
	mainSet    = lowerSet(mainFiles)
	configSet  = lowerSet(configFiles)
	startupSet = lowerSet(startupScripts)
)

// Classify assigns the entry-point role for a path. The first matching
// rule wins: main file, config file, startup script, route-like path,
// then build/deploy filename. Pure function of the path string; content
// never affects the role.
func Classify(p string) models.Role {
	base := strings.ToLower(path.Base(p))
	lowerPath := strings.ToLower(p)

	switch {
	case mainSet[base]:
		return models.RoleMain
	case configSet[base]:
		return models.RoleConfig
	case startupSet[base]:
		return models.RoleStartup
	case containsAny(lowerPath, routeSegments):
		return models.RoleAPIRoute
	case containsAny(base, buildSegments):
		return models.RoleOther
	default:
		return models.RoleNone
	}
}

// DetectEntryPoints buckets each path into at most one category.
// Bucket order preserves input order; RoleNone paths land in no bucket.
func DetectEntryPoints(paths []string) *models.EntryPoints {
	ep := &models.EntryPoints{}

	for _, p := range paths {
		switch Classify(p) {
		case models.RoleMain:
			ep.Main = append(ep.Main, p)
		case models.RoleConfig:
			ep.Config = append(ep.Config, p)
		case models.RoleStartup:
			ep.Startup = append(ep.Startup, p)
		case models.RoleAPIRoute:
			ep.APIRoutes = append(ep.APIRoutes, p)
		case models.RoleOther:
			ep.OtherImportant = append(ep.OtherImportant, p)
		}
	}

	return ep
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ContentPatterns inspects file content for entry-point signals worth
// surfacing next to the file in a summary. Returns human-readable hints
// in detection order.
func ContentPatterns(filePath, content string) []string {
	var patterns []string
	lowerContent := strings.ToLower(content)
	lowerPath := strings.ToLower(filePath)

	switch {
	case strings.HasSuffix(filePath, ".py"):
		if strings.Contains(content, `if __name__ == "__main__"`) {
			patterns = append(patterns, "Python main entry")
		}
		if containsAny(lowerContent, []string{"flask", "django", "fastapi"}) {
			patterns = append(patterns, "Web framework entry")
		}
		if strings.Contains(content, "uvicorn.run") || strings.Contains(content, "app.run") {
			patterns = append(patterns, "Server startup")
		}

	case strings.HasSuffix(filePath, ".js"), strings.HasSuffix(filePath, ".ts"):
		if strings.Contains(content, "express()") || strings.Contains(lowerContent, "createserver") {
			patterns = append(patterns, "Web server entry")
		}
		if strings.Contains(content, "process.argv") {
			patterns = append(patterns, "CLI entry")
		}

	case strings.HasSuffix(filePath, ".java"):
		if strings.Contains(content, "public static void main") {
			patterns = append(patterns, "Java main method")
		}
		if strings.Contains(lowerContent, "@springbootapplication") {
			patterns = append(patterns, "Spring Boot entry")
		}

	case strings.HasSuffix(filePath, ".go"):
		if strings.Contains(content, "func main()") {
			patterns = append(patterns, "Go main function")
		}

	case strings.Contains(lowerPath, "dockerfile"):
		if strings.Contains(lowerContent, "entrypoint") || strings.Contains(lowerContent, "cmd") {
			patterns = append(patterns, "Docker entry")
		}
	}

	return patterns
}
