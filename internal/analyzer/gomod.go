package analyzer

import (
	"strings"

	"github.com/wheeler/codesum/internal/models"
)

var goFrameworks = []struct {
	fragment  string
	framework string
}{
	{"gin-gonic/gin", "Gin"},
	{"gorilla/mux", "Gorilla Mux"},
	{"echo", "Echo"},
	{"fiber", "Fiber"},
	{"kubernetes", "Kubernetes"},
	{"grpc", "gRPC"},
}

type gomodParser struct{}

func (p gomodParser) Matches(filePath string) bool {
	return baseLower(filePath) == "go.mod"
}

func (p gomodParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	rec.PackageManagers["Go Modules"] = true
	rec.Languages["Go"] = true
	rec.AddKeyFile("go.mod")
	rec.ProjectTypes["Go Application"] = true

	deps := make(map[string]string)
	inRequire := false
	for _, line := range strings.Split(f.Content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "require ("):
			inRequire = true
		case inRequire && line == ")":
			inRequire = false
		case inRequire:
			if strings.HasPrefix(line, "//") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				deps[fields[0]] = fields[1]
			}
		case strings.HasPrefix(line, "require "):
			fields := strings.Fields(strings.TrimPrefix(line, "require "))
			if len(fields) >= 2 {
				deps[fields[0]] = fields[1]
			}
		}
	}
	rec.AddDependencies("go", deps)

	for _, fw := range goFrameworks {
		if anyDepContains(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}
}
