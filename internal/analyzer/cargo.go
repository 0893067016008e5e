package analyzer

import (
	"github.com/BurntSushi/toml"
	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

var cargoFrameworks = []struct {
	fragment  string
	framework string
}{
	{"actix-web", "Actix Web"},
	{"warp", "Warp"},
	{"rocket", "Rocket"},
	{"axum", "Axum"},
	{"tokio", "Tokio"},
	{"serde", "Serde"},
	{"diesel", "Diesel"},
}

type cargoParser struct {
	log logger.Logger
}

func (p cargoParser) Matches(filePath string) bool {
	return baseLower(filePath) == "cargo.toml"
}

func (p cargoParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	var manifest struct {
		Dependencies map[string]interface{} `toml:"dependencies"`
	}
	if err := toml.Unmarshal([]byte(f.Content), &manifest); err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["Cargo"] = true
	rec.Languages["Rust"] = true
	rec.AddKeyFile("Cargo.toml")
	rec.ProjectTypes["Rust Application"] = true

	deps := stringifyVersions(manifest.Dependencies)
	rec.AddDependencies("cargo", deps)

	for _, fw := range cargoFrameworks {
		if anyDepContains(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}
}
