package models

import "sort"

// StackAnalysis is the accumulated tech-stack summary for one run.
// It is created empty, threaded through every manifest parser call,
// and read once by the report renderer. Fields are sets (or per-manager
// maps), so merges never need conflict resolution.
type StackAnalysis struct {
	ProjectTypes    map[string]bool
	Frameworks      map[string]bool
	Languages       map[string]bool
	Dependencies    map[string]map[string]string // package manager -> dependency name -> version
	PackageManagers map[string]bool
	BuildTools      map[string]bool
	KeyFiles        []string
}

// NewStackAnalysis returns an empty record ready for accumulation.
func NewStackAnalysis() *StackAnalysis {
	return &StackAnalysis{
		ProjectTypes:    make(map[string]bool),
		Frameworks:      make(map[string]bool),
		Languages:       make(map[string]bool),
		Dependencies:    make(map[string]map[string]string),
		PackageManagers: make(map[string]bool),
		BuildTools:      make(map[string]bool),
	}
}

// AddDependencies merges deps into the named package manager's map.
func (s *StackAnalysis) AddDependencies(manager string, deps map[string]string) {
	if len(deps) == 0 {
		return
	}
	existing := s.Dependencies[manager]
	if existing == nil {
		existing = make(map[string]string, len(deps))
		s.Dependencies[manager] = existing
	}
	for name, version := range deps {
		existing[name] = version
	}
}

// AddKeyFile records a manifest path that contributed to the analysis.
func (s *StackAnalysis) AddKeyFile(path string) {
	s.KeyFiles = append(s.KeyFiles, path)
}

// Empty reports whether the record has nothing worth rendering.
func (s *StackAnalysis) Empty() bool {
	return len(s.Frameworks) == 0 && len(s.Dependencies) == 0 && len(s.ProjectTypes) == 0
}

// SortedProjectTypes returns the project types in lexical order.
func (s *StackAnalysis) SortedProjectTypes() []string { return sortedKeys(s.ProjectTypes) }

// SortedFrameworks returns the frameworks in lexical order.
func (s *StackAnalysis) SortedFrameworks() []string { return sortedKeys(s.Frameworks) }

// SortedLanguages returns the languages in lexical order.
func (s *StackAnalysis) SortedLanguages() []string { return sortedKeys(s.Languages) }

// SortedPackageManagers returns the package managers in lexical order.
func (s *StackAnalysis) SortedPackageManagers() []string { return sortedKeys(s.PackageManagers) }

// SortedBuildTools returns the build tools in lexical order.
func (s *StackAnalysis) SortedBuildTools() []string { return sortedKeys(s.BuildTools) }

// DependencyManagers returns the package-manager keys of the
// Dependencies map in lexical order.
func (s *StackAnalysis) DependencyManagers() []string {
	managers := make([]string, 0, len(s.Dependencies))
	for m := range s.Dependencies {
		managers = append(managers, m)
	}
	sort.Strings(managers)
	return managers
}

// SortedDependencyNames returns the dependency names recorded for one
// package manager in lexical order.
func (s *StackAnalysis) SortedDependencyNames(manager string) []string {
	deps := s.Dependencies[manager]
	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
