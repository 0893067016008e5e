package analyzer

import (
	"github.com/wheeler/codesum/internal/models"
)

type cmakeParser struct{}

func (p cmakeParser) Matches(filePath string) bool {
	return baseLower(filePath) == "cmakelists.txt"
}

func (p cmakeParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	rec.BuildTools["CMake"] = true
	rec.Languages["C/C++"] = true
	rec.ProjectTypes["C/C++ Application"] = true
}

type makefileParser struct{}

func (p makefileParser) Matches(filePath string) bool {
	return baseLower(filePath) == "makefile"
}

func (p makefileParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	rec.BuildTools["Make"] = true
}
