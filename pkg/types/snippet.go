package types

import "strings"

// MaxSnippetWidth is the display cap for snippets, ellipsis included.
const MaxSnippetWidth = 120

const snippetEllipsis = "..."

// FormatSnippet trims the source line and caps it at MaxSnippetWidth
// characters, replacing the tail with an ellipsis when it overflows.
func FormatSnippet(line string) string {
	s := strings.TrimSpace(line)
	runes := []rune(s)
	if len(runes) <= MaxSnippetWidth {
		return s
	}
	return string(runes[:MaxSnippetWidth-len(snippetEllipsis)]) + snippetEllipsis
}
