package analyzer

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// Fragments for .NET are matched case-sensitively: NuGet package IDs
// keep their canonical capitalization.
var dotnetFrameworks = []struct {
	fragment  string
	framework string
}{
	{"Microsoft.AspNetCore", "ASP.NET Core"},
	{"Microsoft.EntityFrameworkCore", "Entity Framework Core"},
	{"Xamarin", "Xamarin"},
	{"Microsoft.Maui", "MAUI"},
	{"Blazor", "Blazor"},
}

var nugetFrameworks = []struct {
	fragment  string
	framework string
}{
	{"Microsoft.AspNetCore", "ASP.NET Core"},
	{"Microsoft.EntityFrameworkCore", "Entity Framework Core"},
	{"Newtonsoft.Json", "JSON.NET"},
	{"NUnit", "NUnit"},
	{"xunit", "xUnit"},
}

type dotnetParser struct {
	log logger.Logger
}

func (p dotnetParser) Matches(filePath string) bool {
	base := baseLower(filePath)
	return strings.HasSuffix(base, ".csproj") ||
		strings.HasSuffix(base, ".fsproj") ||
		strings.HasSuffix(base, ".vbproj")
}

func (p dotnetParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	deps, err := parseXMLPackages(f.Content, "PackageReference", "Include", "Version")
	if err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["NuGet"] = true
	rec.Languages["C#/.NET"] = true
	rec.ProjectTypes[".NET Application"] = true
	rec.AddDependencies("nuget", deps)

	for _, fw := range dotnetFrameworks {
		if anyDepContains(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}
}

type nugetParser struct {
	log logger.Logger
}

func (p nugetParser) Matches(filePath string) bool {
	return baseLower(filePath) == "packages.config"
}

func (p nugetParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	deps, err := parseXMLPackages(f.Content, "package", "id", "version")
	if err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["NuGet"] = true
	rec.Languages["C#/.NET"] = true
	rec.AddKeyFile("packages.config")
	rec.AddDependencies("nuget", deps)

	for _, fw := range nugetFrameworks {
		if anyDepContains(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}
}

// parseXMLPackages collects id/version attribute pairs from every
// element with the given local name, at any depth. Versions default to
// "unknown" when the attribute is absent.
func parseXMLPackages(content, element, idAttr, versionAttr string) (map[string]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	deps := make(map[string]string)
	sawElement := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Local != element {
			continue
		}

		var id, version string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case idAttr:
				id = attr.Value
			case versionAttr:
				version = attr.Value
			}
		}
		if id == "" {
			continue
		}
		if version == "" {
			version = "unknown"
		}
		deps[id] = version
	}

	if !sawElement {
		return nil, errMalformedXML
	}
	return deps, nil
}
