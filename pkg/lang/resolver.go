// Package lang maps file paths to canonical language tags.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// extTags maps known file extensions to canonical language tags.
var extTags = map[string]types.Language{
	"js":  types.LangJS,
	"mjs": types.LangJS,
	"cjs": types.LangJS,
	"jsx": types.LangJS,
	"ts":  types.LangTS,
	"tsx": types.LangTS,
	"py":  types.LangPy,
	"go":  types.LangGo,
	"sql": types.LangSQL,
}

// Resolve maps a file path to its language tag. Extensions are matched
// case-insensitively; unknown extensions pass through unchanged as the tag
// so no rule will ever select them. Every input produces a tag.
func Resolve(path string) types.Language {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if tag, ok := extTags[ext]; ok {
		return tag
	}
	return types.Language(ext)
}

// Supported reports whether the file's extension belongs to a scannable
// language. Used by discovery to keep the candidate set small.
func Supported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := extTags[ext]
	return ok
}
