package types

import (
	"sort"
	"strings"
)

// LineIndex maps match offsets in file content to 1-based line numbers
// without rescanning the content for every match. Offsets are counted in
// runes, the unit the regex engine reports match positions in. The content
// is split on line feeds exactly once and reused for all rules on a file.
type LineIndex struct {
	starts []int    // rune offset of the first character of each line
	lines  []string // raw line text, without trailing line feeds
}

// NewLineIndex builds the offset index for content.
func NewLineIndex(content string) *LineIndex {
	ix := &LineIndex{starts: []int{0}}
	pos := 0
	for _, r := range content {
		pos++
		if r == '\n' {
			ix.starts = append(ix.starts, pos)
		}
	}
	ix.lines = strings.Split(content, "\n")
	return ix
}

// LineAt returns the 1-based line number containing the rune offset.
// Offsets past the end of content resolve to the last line.
func (ix *LineIndex) LineAt(offset int) int {
	line := sort.SearchInts(ix.starts, offset+1)
	if line > len(ix.lines) {
		line = len(ix.lines)
	}
	return line
}

// TextAt returns the raw text of the given 1-based line, or "" when the
// line number is out of range.
func (ix *LineIndex) TextAt(line int) string {
	if line < 1 || line > len(ix.lines) {
		return ""
	}
	return ix.lines[line-1]
}

// LineCount returns the number of lines in the indexed content.
func (ix *LineIndex) LineCount() int {
	return len(ix.lines)
}
