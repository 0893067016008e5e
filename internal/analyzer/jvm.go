package analyzer

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/wheeler/codesum/internal/logger"
	"github.com/wheeler/codesum/internal/models"
)

// mavenFrameworks matches fragments against lower-cased
// "groupId:artifactId" keys.
var mavenFrameworks = []struct {
	fragment  string
	framework string
}{
	{"spring", "Spring Framework"},
	{"spring-boot", "Spring Boot"},
	{"quarkus", "Quarkus"},
	{"micronaut", "Micronaut"},
	{"junit", "JUnit"},
	{"hibernate", "Hibernate"},
	{"jackson", "Jackson"},
	{"apache-kafka", "Apache Kafka"},
	{"vertx", "Vert.x"},
}

type mavenParser struct {
	log logger.Logger
}

func (p mavenParser) Matches(filePath string) bool {
	return baseLower(filePath) == "pom.xml"
}

func (p mavenParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	deps, err := parsePOMDependencies(f.Content)
	if err != nil {
		p.log.LogDebug("Skipping unparseable %s: %v", f.Path, err)
		return
	}

	rec.PackageManagers["Maven"] = true
	rec.Languages["Java"] = true
	rec.AddKeyFile("pom.xml")
	rec.AddDependencies("maven", deps)

	for _, fw := range mavenFrameworks {
		if anyDepContainsFold(deps, fw.fragment) {
			rec.Frameworks[fw.framework] = true
		}
	}

	rec.ProjectTypes["Java Application"] = true
}

// parsePOMDependencies walks the POM token stream and collects every
// <dependency> block, regardless of nesting (dependencyManagement
// blocks included). Only direct children of a dependency element are
// read, so <exclusions> entries never leak into the result. Versions
// default to "unknown"; property placeholders are kept as written.
func parsePOMDependencies(content string) (map[string]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	deps := make(map[string]string)

	depth := 0
	depDepth := -1
	sawElement := false
	var field string
	var groupID, artifactID, version string

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			depth++
			switch {
			case t.Name.Local == "dependency" && depDepth == -1:
				depDepth = depth
				groupID, artifactID, version = "", "", ""
				field = ""
			case depDepth != -1 && depth == depDepth+1:
				field = t.Name.Local
			default:
				field = ""
			}
		case xml.CharData:
			if depDepth == -1 || depth != depDepth+1 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			switch field {
			case "groupId":
				groupID = text
			case "artifactId":
				artifactID = text
			case "version":
				version = text
			}
		case xml.EndElement:
			if depth == depDepth && t.Name.Local == "dependency" {
				if groupID != "" && artifactID != "" {
					v := version
					if v == "" {
						v = "unknown"
					}
					deps[groupID+":"+artifactID] = v
				}
				depDepth = -1
			}
			depth--
			field = ""
		}
	}

	// The token stream accepts tag-free text; a POM with no root
	// element is not XML.
	if !sawElement {
		return nil, errMalformedXML
	}
	return deps, nil
}

type gradleParser struct{}

func (p gradleParser) Matches(filePath string) bool {
	base := baseLower(filePath)
	return base == "build.gradle" || base == "build.gradle.kts"
}

func (p gradleParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	if f.ReadErr != nil {
		return
	}

	rec.PackageManagers["Gradle"] = true
	rec.BuildTools["Gradle"] = true
	if strings.HasSuffix(baseLower(f.Path), ".kts") {
		rec.Languages["Kotlin"] = true
	} else {
		rec.Languages["Groovy"] = true
	}

	if strings.Contains(f.Content, "com.android.application") || strings.Contains(f.Content, "com.android.library") {
		rec.Frameworks["Android"] = true
		rec.ProjectTypes["Mobile App"] = true
		rec.Languages["Java/Kotlin"] = true
	}
	if strings.Contains(f.Content, "org.springframework.boot") {
		rec.Frameworks["Spring Boot"] = true
		rec.ProjectTypes["Java Application"] = true
	}
}
