package report

import (
	"fmt"
	"strings"
)

// truncateBudget is the per-file content cap in characters. Most
// source files sit well under it.
const truncateBudget = 50000

// Truncate caps content at the character budget. The cut lands on the
// nearest newline within the 500 characters before the budget (falling
// back to a hard cut when none is found), and a marker block naming
// the original and shown sizes is appended. Budgets count characters,
// not bytes, so multi-byte text truncates where a reader would expect.
func Truncate(content string) (string, bool) {
	runes := []rune(content)
	if len(runes) <= truncateBudget {
		return content, false
	}

	cut := truncateBudget
	for i := truncateBudget; i > truncateBudget-500; i-- {
		if runes[i] == '\n' {
			cut = i
			break
		}
	}

	var b strings.Builder
	b.WriteString(string(runes[:cut]))
	b.WriteString("\n\n# <TRUNCATED>\n")
	fmt.Fprintf(&b, "# Original file: %s characters (~%dKB)\n", commaGroup(int64(len(runes))), len(runes)/1000)
	fmt.Fprintf(&b, "# Showing first: %s characters (~%dKB)\n", commaGroup(int64(cut)), cut/1000)
	b.WriteString("# Ask for the complete file if you need to see the rest\n")
	b.WriteString("# </TRUNCATED>")
	return b.String(), true
}
