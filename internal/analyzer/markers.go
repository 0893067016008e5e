package analyzer

import (
	"strings"

	"github.com/wheeler/codesum/internal/models"
)

// frameworkMarkerParser recognizes framework and infrastructure config
// files whose presence alone identifies the stack. It sits last in the
// chain, so real manifests always take precedence.
type frameworkMarkerParser struct{}

func (p frameworkMarkerParser) Matches(filePath string) bool {
	return p.apply(filePath, nil)
}

func (p frameworkMarkerParser) Analyze(f models.FileInfo, rec *models.StackAnalysis) {
	p.apply(f.Path, rec)
}

// apply reports whether the path matches a marker row and, when rec is
// non-nil, folds the row's facts in. Keeping match and effect in one
// switch guarantees Matches and Analyze never disagree.
func (p frameworkMarkerParser) apply(filePath string, rec *models.StackAnalysis) bool {
	base := baseLower(filePath)

	switch {
	case base == "next.config.js" || base == "next.config.mjs" || base == "next.config.ts":
		if rec != nil {
			rec.Frameworks["Next.js"] = true
			rec.ProjectTypes["Frontend"] = true
			rec.AddKeyFile(filePath)
		}
	case base == "nuxt.config.js" || base == "nuxt.config.ts":
		if rec != nil {
			rec.Frameworks["Nuxt.js"] = true
			rec.ProjectTypes["Frontend"] = true
		}
	case base == "angular.json":
		if rec != nil {
			rec.Frameworks["Angular"] = true
			rec.ProjectTypes["Frontend"] = true
		}
	case base == "vue.config.js" || base == "vite.config.js" || base == "vite.config.ts":
		if rec != nil {
			rec.Frameworks["Vue.js"] = true
			rec.ProjectTypes["Frontend"] = true
		}
	case base == "svelte.config.js" || base == "svelte.config.mjs":
		if rec != nil {
			rec.Frameworks["Svelte"] = true
			rec.ProjectTypes["Frontend"] = true
		}
	case base == "webpack.config.js":
		if rec != nil {
			rec.BuildTools["Webpack"] = true
		}
	case base == "docker-compose.yml" || base == "docker-compose.yaml" || base == "dockerfile":
		if rec != nil {
			rec.Frameworks["Docker"] = true
			rec.AddKeyFile(filePath)
		}
	case base == "terraform.tf" || base == "main.tf" || strings.HasSuffix(filePath, ".tf"):
		if rec != nil {
			rec.Frameworks["Terraform"] = true
			rec.ProjectTypes["Infrastructure"] = true
		}
	case base == "ansible.yml" || base == "playbook.yml" || strings.Contains(filePath, "ansible"):
		if rec != nil {
			rec.Frameworks["Ansible"] = true
			rec.ProjectTypes["Infrastructure"] = true
		}
	case base == "serverless.yml":
		if rec != nil {
			rec.Frameworks["Serverless Framework"] = true
			rec.ProjectTypes["Cloud/Serverless"] = true
		}
	default:
		return false
	}
	return true
}
