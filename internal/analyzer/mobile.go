package analyzer

import (
	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
	"gopkg.in/yaml.v3"
)

type pubspecParser struct {
	log logger.Logger
}

func (p pubspecParser) Matches(filePath string) bool {
	return baseLower(filePath) == "pubspec.yaml"
}

func (p pubspecParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	var manifest struct {
		Dependencies map[string]interface{} `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal([]byte(f.Content), &manifest); err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.Frameworks["Flutter"] = true
	rec.Languages["Dart"] = true
	rec.ProjectTypes["Mobile App"] = true
	rec.AddKeyFile("pubspec.yaml")
	rec.AddDependencies("flutter", stringifyVersions(manifest.Dependencies))
}

// iosParser keys off the file's presence alone; Podfiles are Ruby DSL
// and not worth parsing for a stack summary.
type iosParser struct{}

func (p iosParser) Matches(filePath string) bool {
	base := baseLower(filePath)
	return base == "podfile" || base == "package.swift"
}

func (p iosParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	rec.ProjectTypes["Mobile App"] = true
	rec.Languages["Swift/Objective-C"] = true
	if baseLower(f.Path) == "podfile" {
		rec.PackageManagers["CocoaPods"] = true
	} else {
		rec.PackageManagers["Swift Package Manager"] = true
	}
}
