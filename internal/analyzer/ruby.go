package analyzer

import (
	"regexp"
	"strings"

	"github.com/wheeler/codesum/internal/models"
)

// gemRe captures the gem name and, when present, the first version
// argument of a `gem "name", "constraint"` line.
var gemRe = regexp.MustCompile(`gem\s+["']([^"']+)["'](?:\s*,\s*["']([^"']+)["'])?`)

var rubyFrameworks = []struct {
	fragment  string
	framework string
}{
	{"rails", "Ruby on Rails"},
	{"sinatra", "Sinatra"},
	{"rack", "Rack"},
	{"rspec", "RSpec"},
	{"minitest", "MiniTest"},
	{"devise", "Devise"},
	{"activerecord", "ActiveRecord"},
}

type gemfileParser struct{}

func (p gemfileParser) Matches(filePath string) bool {
	return baseLower(filePath) == "gemfile"
}

func (p gemfileParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	rec.PackageManagers["Bundler"] = true
	rec.Languages["Ruby"] = true
	rec.AddKeyFile("Gemfile")
	rec.ProjectTypes["Ruby Application"] = true

	deps := make(map[string]string)
	for _, line := range strings.Split(f.Content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		m := gemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		version := m[2]
		if version == "" {
			version = "latest"
		}
		deps[m[1]] = version
	}
	rec.AddDependencies("bundler", deps)

	for _, fw := range rubyFrameworks {
		if anyDepContainsFold(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}

	if rec.Frameworks["Ruby on Rails"] {
		rec.ProjectTypes["Web Application"] = true
	}
}
