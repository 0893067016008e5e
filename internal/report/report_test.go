package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wheeler/codesum/internal/analyzer"
	"github.com/wheeler/codesum/internal/classifier"
	"github.com/wheeler/codesum/internal/models"
	"github.com/wheeler/codesum/internal/priority"
)

func file(path, content string) models.FileInfo {
	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n")
		if !strings.HasSuffix(content, "\n") {
			lines++
		}
	}
	return models.FileInfo{
		Path:    path,
		Ext:     strings.ToLower(filepath.Ext(path)),
		Size:    int64(len(content)),
		Lines:   lines,
		Content: content,
	}
}

func makeDoc(files []models.FileInfo, toc bool) Document {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	ep := classifier.DetectEntryPoints(paths)
	return Document{
		Files:       files,
		Ordered:     priority.Order(paths, ep),
		EntryPoints: ep,
		Stack:       analyzer.New(nil).Analyze(files),
		TOC:         toc,
	}
}

func render(t *testing.T, doc Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func TestWriteGolden(t *testing.T) {
	files := []models.FileInfo{
		file("main.py", "print('hello')\n"),
		file("README.md", "# Demo\n"),
	}

	got := render(t, makeDoc(files, false))

	want := "# Codebase Summary\n\n" +
		"The following is a complete codebase summary optimized for structural analysis. " +
		"Files are prioritized by importance - entry points and configuration first, " +
		"followed by core application logic. This ordering helps establish program flow " +
		"and architecture context upfront.\n\n" +
		"## Project Overview\n\n" +
		"- Total files: 2\n" +
		"- Languages used: python, text\n" +
		"- Approximate total lines: 2\n" +
		"- Dependency files: None detected\n" +
		"\n" +
		"## Entry Points & Architecture\n\n" +
		"**Main Entry Points**: main.py\n" +
		"\n" +
		"## Configuration Files\n\n" +
		"**README.md**: Project documentation\n" +
		"\n" +
		"## Dependency Analysis & Tech Stack\n\n" +
		"**Project Type(s)**: Backend API, Documentation\n" +
		"\n" +
		"## Code Files (Priority Order)\n\n" +
		"*Files are ordered by importance for analysis: " +
		"entry points → configuration → core logic → supporting files*\n\n" +
		"\n### main.py\n\n" +
		"**Metadata**: 1 lines, 15 bytes | **MAIN ENTRY POINT**\n\n" +
		"```python\nprint('hello')\n```\n\n" +
		"\n### README.md\n\n" +
		"**Metadata**: 1 lines, 7 bytes | Config: Project documentation\n\n" +
		"```text\n# Demo\n```\n\n"

	if got != want {
		t.Errorf("rendered report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteDependencyFilesLine(t *testing.T) {
	files := []models.FileInfo{
		file("package.json", `{"dependencies": {}}`),
		file("api/requirements.txt", "flask\n"),
	}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "- Dependency files: package.json, api/requirements.txt\n") {
		t.Errorf("dependency files line missing or wrong:\n%s", got)
	}
}

func TestWriteUnknownLanguage(t *testing.T) {
	files := []models.FileInfo{file("data.xyz", "payload\n")}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "- Languages used: unknown\n") {
		t.Errorf("unknown language not counted in overview:\n%s", got)
	}
	if !strings.Contains(got, "```\npayload\n```\n") {
		t.Errorf("fence language should be empty for unmapped extensions:\n%s", got)
	}
}

func TestWriteConfigSectionCap(t *testing.T) {
	files := []models.FileInfo{
		file("package.json", "{}"),
		file("go.mod", "module demo\n"),
		file("tsconfig.json", "{}"),
		file(".env.example", "KEY=\n"),
		file("config.json", "{}"),
		file("settings.json", "{}"),
		file("a/.babelrc", "{}"),
		file("b/.prettierrc", "{}"),
		file("c/jest.config.js", ""),
		file("d/setup.py", ""),
	}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "*...and 2 more configuration files*\n") {
		t.Errorf("overflow line missing:\n%s", got)
	}
	if strings.Contains(got, "**c/jest.config.js**:") {
		t.Errorf("ninth config file should not be listed:\n%s", got)
	}
	if !strings.Contains(got, "**b/.prettierrc**: Prettier configuration\n") {
		t.Errorf("eighth config file missing:\n%s", got)
	}
}

func TestWriteKeyDependenciesCap(t *testing.T) {
	stack := models.NewStackAnalysis()
	stack.AddDependencies("npm", map[string]string{
		"alpha": "1", "bravo": "1", "charlie": "1", "delta": "1",
		"echo": "1", "foxtrot": "1", "golf": "1",
	})

	got := render(t, Document{Stack: stack})

	if !strings.Contains(got, "**Key Dependencies**:\n- Npm: alpha, bravo, charlie, delta, echo (+2 more)\n") {
		t.Errorf("key dependencies line wrong:\n%s", got)
	}
}

func TestWriteErrorEntry(t *testing.T) {
	f := models.FileInfo{Path: "broken.py", Ext: ".py", ReadErr: errors.New("permission denied")}
	doc := Document{
		Files:   []models.FileInfo{f},
		Ordered: []string{"broken.py"},
	}

	got := render(t, doc)

	want := "\n### broken.py\n\n" +
		"**Metadata**: Error reading file\n\n" +
		"# Error reading file: permission denied\n\n" +
		"```python\n```\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("error entry missing:\n%s", got)
	}
}

func TestWriteTruncatedFileSection(t *testing.T) {
	content := strings.Repeat(strings.Repeat("x", 99)+"\n", 600)
	files := []models.FileInfo{file("big.log", content)}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "**TRUNCATED** (showing ~") {
		t.Errorf("truncated metadata missing:\n%s", got[:400])
	}
	if !strings.Contains(got, "📄 **LARGE FILE NOTICE**: This file was truncated for readability.\n") {
		t.Error("large file notice missing")
	}
	if !strings.Contains(got, "**Original size**: 600 lines (60,000 bytes)\n") {
		t.Error("original size line missing or ungrouped")
	}
	if !strings.Contains(got, "# Original file: 60,000 characters (~60KB)\n") {
		t.Error("truncation marker missing")
	}
	if !strings.Contains(got, "\"show the full contents of big.log\"") {
		t.Error("full contents hint missing")
	}
}

func TestWriteDetectedPatterns(t *testing.T) {
	content := "from flask import Flask\napp = Flask(__name__)\n\nif __name__ == \"__main__\":\n    app.run()\n"
	files := []models.FileInfo{file("src/serve.py", content)}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "**Detected patterns**: Python main entry, Web framework entry, Server startup\n") {
		t.Errorf("detected patterns line wrong:\n%s", got)
	}
}

func TestWriteTrimsTrailingWhitespace(t *testing.T) {
	files := []models.FileInfo{file("notes.txt", "line one\n\n\n   \n")}

	got := render(t, makeDoc(files, false))

	if !strings.Contains(got, "```text\nline one\n```\n") {
		t.Errorf("content not right-trimmed:\n%s", got)
	}
}

func TestWriteTOC(t *testing.T) {
	files := []models.FileInfo{
		file("cmd/main.go", "package main\n"),
		file("README.md", "# x\n"),
	}

	withTOC := render(t, makeDoc(files, true))
	withoutTOC := render(t, makeDoc(files, false))

	if !strings.Contains(withTOC, "## Table of Contents (Prioritized Order)\n\n") {
		t.Error("TOC header missing when enabled")
	}
	if !strings.Contains(withTOC, "└── ") {
		t.Error("TOC tree missing when enabled")
	}
	if strings.Contains(withoutTOC, "## Table of Contents") {
		t.Error("TOC present when disabled")
	}
}

func TestWriteDeterministic(t *testing.T) {
	files := []models.FileInfo{
		file("main.go", "package main\n"),
		file("go.mod", "module demo\n\nrequire (\n\tgithub.com/gin-gonic/gin v1.9.1\n)\n"),
		file("web/package.json", `{"dependencies": {"react": "18.0.0", "vue": "3.0.0"}}`),
		file("docs/a.md", "# a\n"),
		file("docs/b.md", "# b\n"),
	}

	first := render(t, makeDoc(files, true))
	second := render(t, makeDoc(files, true))

	if first != second {
		t.Error("two renders of the same tree differ")
	}
}

func TestWriteEmptyTree(t *testing.T) {
	got := render(t, makeDoc(nil, false))

	if !strings.Contains(got, "- Total files: 0\n") {
		t.Errorf("empty tree overview wrong:\n%s", got)
	}
	if !strings.Contains(got, "## Entry Points & Architecture\n\n\n") {
		t.Errorf("entry section should render header only:\n%s", got)
	}
	if strings.Contains(got, "## Configuration Files") {
		t.Error("config section should be absent for empty tree")
	}
	if strings.Contains(got, "## Dependency Analysis") {
		t.Error("dependency section should be absent for empty tree")
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"npm", "Npm"},
		{"npm/yarn", "Npm/Yarn"},
		{"pip/poetry", "Pip/Poetry"},
		{"go", "Go"},
		{"bundler", "Bundler"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommaGroup(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{50000, "50,000"},
		{123456789, "123,456,789"},
	}
	for _, tt := range tests {
		if got := commaGroup(tt.in); got != tt.want {
			t.Errorf("commaGroup(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
