package priority

// criticalPatterns ranks the configuration files that surface before
// everything except main entry points. At most one file per pattern
// makes the cut. Patterns are lower case; matching is case-insensitive
// on the basename.
var criticalPatterns = []string{
	// Package and dependency management
	"package.json", "pom.xml", "build.gradle", "build.gradle.kts",
	"cargo.toml", "go.mod", "pyproject.toml", "requirements.txt",

	// Docker and infrastructure
	"docker-compose.yml", "docker-compose.yaml", "dockerfile",

	// Main framework config
	"next.config.js", "vite.config.js", "vite.config.ts", "angular.json",
	"tailwind.config.js", "tailwind.config.ts",

	// Core language config
	"tsconfig.json", "jsconfig.json",

	// Environment and app settings
	".env.example", "config.json", "config.yaml", "config.yml",
	"appsettings.json", "settings.json",
}

// configPattern pairs a filename pattern with its report description.
type configPattern struct {
	pattern     string
	description string
}

// configPatterns drives both config-file detection and the description
// lines of the report. Three pattern kinds: plain basenames,
// single-wildcard path patterns (prefix*suffix against the relative
// path), and directory patterns ending in "/" (path containment).
// First match wins, so a generic basename row low in the table never
// shadows a specific row above it. Patterns are lower case.
var configPatterns = []configPattern{
	// Build/package management
	{"package.json", "npm/Node.js configuration"},
	{"pom.xml", "Maven configuration"},
	{"build.gradle", "Gradle build configuration"},
	{"build.gradle.kts", "Gradle Kotlin build configuration"},
	{"cargo.toml", "Rust package configuration"},
	{"go.mod", "Go module configuration"},
	{"pyproject.toml", "Python project configuration"},
	{"requirements.txt", "Python dependencies"},
	{"gemfile", "Ruby dependencies"},
	{"pubspec.yaml", "Flutter configuration"},
	{"composer.json", "PHP dependencies"},

	// Web frameworks
	{"next.config.js", "Next.js configuration"},
	{"next.config.mjs", "Next.js configuration"},
	{"next.config.ts", "Next.js TypeScript configuration"},
	{"nuxt.config.js", "Nuxt.js configuration"},
	{"nuxt.config.ts", "Nuxt.js TypeScript configuration"},
	{"angular.json", "Angular workspace configuration"},
	{"vue.config.js", "Vue.js configuration"},
	{"vite.config.js", "Vite configuration"},
	{"vite.config.ts", "Vite TypeScript configuration"},
	{"svelte.config.js", "Svelte configuration"},
	{"webpack.config.js", "Webpack configuration"},
	{"rollup.config.js", "Rollup configuration"},
	{"snowpack.config.js", "Snowpack configuration"},

	// Language tooling
	{"tsconfig.json", "TypeScript configuration"},
	{"tsconfig.node.json", "TypeScript Node configuration"},
	{"jsconfig.json", "JavaScript configuration"},
	{".babelrc", "Babel configuration"},
	{"babel.config.js", "Babel configuration"},
	{"eslint.config.js", ".eslintrc configuration"},
	{".eslintrc.json", "ESLint configuration"},
	{".eslintrc.js", "ESLint configuration"},
	{"prettier.config.js", "Prettier configuration"},
	{".prettierrc", "Prettier configuration"},

	// Styling
	{"tailwind.config.js", "Tailwind CSS configuration"},
	{"tailwind.config.ts", "Tailwind CSS TypeScript configuration"},
	{"postcss.config.js", "PostCSS configuration"},
	{"sass.config.js", "Sass configuration"},

	// Testing
	{"jest.config.js", "Jest testing configuration"},
	{"vitest.config.js", "Vitest configuration"},
	{"cypress.config.js", "Cypress testing configuration"},
	{"playwright.config.js", "Playwright testing configuration"},

	// Infrastructure/DevOps
	{"docker-compose.yml", "Docker Compose configuration"},
	{"docker-compose.yaml", "Docker Compose configuration"},
	{"dockerfile", "Docker container configuration"},
	{".dockerignore", "Docker ignore configuration"},
	{"terraform.tf", "Terraform infrastructure"},
	{"main.tf", "Terraform main configuration"},
	{"variables.tf", "Terraform variables"},
	{"outputs.tf", "Terraform outputs"},
	{"kubernetes.yaml", "Kubernetes configuration"},
	{"k8s.yaml", "Kubernetes configuration"},
	{"helm-chart.yaml", "Helm chart configuration"},
	{"serverless.yml", "Serverless framework configuration"},
	{"serverless.yaml", "Serverless framework configuration"},

	// CI/CD
	{".github/workflows/*.yml", "GitHub Actions workflow"},
	{".github/workflows/*.yaml", "GitHub Actions workflow"},
	{".gitlab-ci.yml", "GitLab CI configuration"},
	{"azure-pipelines.yml", "Azure DevOps pipeline"},
	{"jenkinsfile", "Jenkins pipeline configuration"},
	{"buildspec.yml", "AWS CodeBuild configuration"},
	{"appspec.yml", "AWS CodeDeploy configuration"},
	{"cloudbuild.yaml", "Google Cloud Build configuration"},

	// Environment and settings
	{".env.example", "Environment variables template"},
	{".env.local", "Local environment variables"},
	{".env.development", "Development environment variables"},
	{".env.production", "Production environment variables"},
	{"config.json", "Application configuration"},
	{"config.yaml", "Application configuration"},
	{"config.yml", "Application configuration"},
	{"settings.json", "Application settings"},
	{"settings.yaml", "Application settings"},
	{"appsettings.json", ".NET application settings"},
	{"web.config", "IIS/ASP.NET configuration"},

	// Database
	{"migrations/*.sql", "Database migration"},
	{"schema.sql", "Database schema"},
	{"database.yml", "Database configuration"},
	{"prisma.schema", "Prisma database schema"},
	{"sequelize.config.js", "Sequelize configuration"},

	// Mobile
	{"react-native.config.js", "React Native configuration"},
	{"metro.config.js", "Metro bundler configuration"},
	{"expo.json", "Expo configuration"},
	{"app.json", "React Native/Expo app configuration"},

	// Editor/IDE
	{".idea/", "IntelliJ IDEA configuration"},
	{"workspace.xml", "IDE workspace configuration"},

	// Everything else
	{"makefile", "Build automation"},
	{"cmakelists.txt", "CMake build configuration"},
	{"configure.ac", "Autotools configuration"},
	{"setup.py", "Python package setup"},
	{"setup.cfg", "Python package configuration"},
	{"tox.ini", "Python testing configuration"},
	{"pytest.ini", "Pytest configuration"},
	{"coverage.ini", "Code coverage configuration"},
	{".gitignore", "Git ignore configuration"},
	{".gitattributes", "Git attributes configuration"},
	{"readme.md", "Project documentation"},
	{"readme.rst", "Project documentation"},
	{"changelog.md", "Project changelog"},
	{"license", "License file"},
	{"license.md", "License file"},
}
