package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Verifier checks that a rendered report still has the structure
// downstream consumers rely on: the title heading, the overview
// section, balanced fences, and a code fence under every file section.
type Verifier struct {
	markdown goldmark.Markdown
}

func NewVerifier() *Verifier {
	return &Verifier{markdown: goldmark.New()}
}

// Verify parses source as markdown and returns one error per
// structural problem. A nil result means the report is well-formed.
func (v *Verifier) Verify(source []byte) []error {
	var problems []error

	if count := bytes.Count(source, []byte("```")); count%2 != 0 {
		problems = append(problems, fmt.Errorf("unbalanced code fences (%d markers)", count))
	}

	doc := v.markdown.Parser().Parse(text.NewReader(source))

	var (
		hasTitle      bool
		hasOverview   bool
		section       string
		sectionFenced bool
		missingFences []string
	)

	// A file section spans from its ### heading to the next one; the
	// error-entry annotation renders a level-1 line mid-section, so
	// only another ### closes the span.
	closeSection := func() {
		if section != "" && !sectionFenced {
			missingFences = append(missingFences, section)
		}
		section = ""
		sectionFenced = false
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := headingText(node, source)
			switch node.Level {
			case 1:
				if title == "Codebase Summary" {
					hasTitle = true
				}
			case 2:
				if title == "Project Overview" {
					hasOverview = true
				}
			case 3:
				closeSection()
				section = title
			}
		case *ast.FencedCodeBlock:
			if section != "" {
				sectionFenced = true
			}
		}
		return ast.WalkContinue, nil
	})
	closeSection()

	if !hasTitle {
		problems = append(problems, fmt.Errorf("missing # Codebase Summary heading"))
	}
	if !hasOverview {
		problems = append(problems, fmt.Errorf("missing ## Project Overview section"))
	}
	for _, name := range missingFences {
		problems = append(problems, fmt.Errorf("file section %q has no code fence", name))
	}
	return problems
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}
