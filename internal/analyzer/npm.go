package analyzer

import (
	"encoding/json"

	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// npmFrameworks maps dependency-name fragments to framework labels.
// Matching is substring over lower-cased names, so scoped packages like
// @angular/core still register.
var npmFrameworks = []struct {
	fragment  string
	framework string
}{
	{"react", "React"},
	{"next", "Next.js"},
	{"vue", "Vue.js"},
	{"nuxt", "Nuxt.js"},
	{"angular", "Angular"},
	{"svelte", "Svelte"},
	{"express", "Express.js"},
	{"fastify", "Fastify"},
	{"nest", "NestJS"},
	{"gatsby", "Gatsby"},
	{"remix", "Remix"},
	{"electron", "Electron"},
	{"react-native", "React Native"},
	{"expo", "Expo"},
	{"ionic", "Ionic"},
	{"typescript", "TypeScript"},
}

type npmParser struct {
	log logger.Logger
}

func (p npmParser) Matches(filePath string) bool {
	return baseLower(filePath) == "package.json"
}

func (p npmParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(f.Content), &manifest); err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["npm/yarn"] = true
	rec.Languages["JavaScript"] = true
	rec.AddKeyFile("package.json")

	allDeps := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, version := range manifest.Dependencies {
		allDeps[name] = version
	}
	for name, version := range manifest.DevDependencies {
		allDeps[name] = version
	}
	rec.AddDependencies("npm", allDeps)

	for _, fw := range npmFrameworks {
		if anyDepContainsFold(allDeps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}

	// Project type from the most specific dependency present. Exact
	// keys here, not fragments: "preact" must not make this a Frontend
	// row on its own.
	switch {
	case hasAnyKey(allDeps, "react-native", "expo"):
		rec.ProjectTypes["Mobile App"] = true
	case hasAnyKey(allDeps, "react", "vue", "angular", "svelte"):
		rec.ProjectTypes["Frontend"] = true
	case hasAnyKey(allDeps, "express", "fastify", "nest"):
		rec.ProjectTypes["Backend API"] = true
	}
}
