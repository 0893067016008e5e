package analyzer

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// requirementRe splits a requirements.txt line into a package name and
// an optional version constraint. Names are stored lower case, the way
// pip normalizes them.
var requirementRe = regexp.MustCompile(`^([a-zA-Z0-9\-_\.]+)([><=!]+.*)?`)

var pipFrameworks = []struct {
	fragment  string
	framework string
}{
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"tornado", "Tornado"},
	{"pyramid", "Pyramid"},
	{"celery", "Celery"},
	{"pandas", "Pandas"},
	{"numpy", "NumPy"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"scikit-learn", "Scikit-learn"},
	{"requests", "Requests"},
	{"sqlalchemy", "SQLAlchemy"},
}

type pipParser struct{}

func (p pipParser) Matches(filePath string) bool {
	return baseLower(filePath) == "requirements.txt"
}

func (p pipParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	rec.PackageManagers["pip"] = true
	rec.Languages["Python"] = true
	rec.AddKeyFile("requirements.txt")

	deps := make(map[string]string)
	for _, line := range strings.Split(f.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := requirementRe.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		deps[strings.ToLower(m[1])] = m[2]
	}
	rec.AddDependencies("pip", deps)

	for _, fw := range pipFrameworks {
		if anyDepContains(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}

	switch {
	case rec.Frameworks["Django"] || rec.Frameworks["Flask"] || rec.Frameworks["FastAPI"]:
		rec.ProjectTypes["Backend API"] = true
	case rec.Frameworks["TensorFlow"] || rec.Frameworks["PyTorch"] || rec.Frameworks["Scikit-learn"]:
		rec.ProjectTypes["Machine Learning"] = true
	}
}

type pyprojectParser struct {
	log logger.Logger
}

func (p pyprojectParser) Matches(filePath string) bool {
	return baseLower(filePath) == "pyproject.toml"
}

func (p pyprojectParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	var data map[string]interface{}
	if err := toml.Unmarshal([]byte(f.Content), &data); err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["pip/poetry"] = true
	rec.Languages["Python"] = true
	rec.AddKeyFile("pyproject.toml")

	tool, ok := data["tool"].(map[string]interface{})
	if !ok {
		return
	}
	poetry, ok := tool["poetry"].(map[string]interface{})
	if !ok {
		return
	}
	rec.PackageManagers["Poetry"] = true
	if rawDeps, ok := poetry["dependencies"].(map[string]interface{}); ok {
		rec.AddDependencies("poetry", stringifyVersions(rawDeps))
	}
}
