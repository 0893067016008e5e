// Package priority computes the rendering order of scanned files:
// main entry points first, then configuration in ranked order, then
// startup scripts and interface files, closing with everything else
// alphabetically. The ranked tables live in patterns.go as plain data;
// the ordering logic here never special-cases a filename.
package priority

import (
	"path"
	"sort"
	"strings"

	"github.com/wheeler/codesum/internal/models"
)

// Order arranges files most-significant-first. The result is a
// permutation of the input: every file appears exactly once, claimed
// by the first group that wants it, and later groups never see a
// claimed file again.
func Order(files []string, ep *models.EntryPoints) []string {
	if ep == nil {
		ep = &models.EntryPoints{}
	}

	claimed := make(map[string]bool, len(files))
	ordered := make([]string, 0, len(files))

	take := func(paths []string) {
		for _, p := range paths {
			if claimed[p] {
				continue
			}
			claimed[p] = true
			ordered = append(ordered, p)
		}
	}

	take(ep.Main)
	take(criticalConfigs(files))
	take(otherConfigs(files, claimed))
	take(ep.Startup)
	take(ep.APIRoutes)
	take(ep.OtherImportant)

	remaining := make([]string, 0, len(files)-len(ordered))
	for _, p := range files {
		if !claimed[p] {
			remaining = append(remaining, p)
		}
	}
	sort.Strings(remaining)
	take(remaining)

	return ordered
}

// ConfigFiles lists the files the report's Configuration Files section
// covers: ranked critical configs first, then every other match of the
// config-pattern table in discovery order.
func ConfigFiles(files []string) []string {
	critical := criticalConfigs(files)
	claimed := make(map[string]bool, len(critical))
	for _, p := range critical {
		claimed[p] = true
	}
	return append(critical, otherConfigs(files, claimed)...)
}

// Describe returns the description for a configuration file and
// whether the path matched any pattern at all.
func Describe(filePath string) (string, bool) {
	relPath := strings.ToLower(filePath)
	base := strings.ToLower(path.Base(filePath))
	for _, row := range configPatterns {
		if matchPattern(relPath, base, row.pattern) {
			return row.description, true
		}
	}
	return "", false
}

// criticalConfigs picks at most one file per ranked pattern, keeping
// pattern rank as the output order.
func criticalConfigs(files []string) []string {
	var picked []string
	for _, pattern := range criticalPatterns {
		for _, p := range files {
			if strings.ToLower(path.Base(p)) == pattern {
				picked = append(picked, p)
				break
			}
		}
	}
	return picked
}

func otherConfigs(files []string, claimed map[string]bool) []string {
	var picked []string
	for _, p := range files {
		if claimed[p] {
			continue
		}
		if _, ok := Describe(p); ok {
			picked = append(picked, p)
		}
	}
	return picked
}

// matchPattern expects relPath and base already lower-cased.
func matchPattern(relPath, base, pattern string) bool {
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		if len(parts) != 2 {
			return false
		}
		return strings.HasPrefix(relPath, parts[0]) && strings.HasSuffix(relPath, parts[1])
	}
	if strings.HasSuffix(pattern, "/") {
		return strings.Contains(relPath, strings.TrimSuffix(pattern, "/"))
	}
	return base == pattern
}
