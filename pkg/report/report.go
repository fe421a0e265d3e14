// Package report renders findings as text, JSON, or Markdown.
package report

import (
	"fmt"
	"io"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// DefaultTopFiles is how many files the "top files" list shows.
const DefaultTopFiles = 5

// Options configures rendering.
type Options struct {
	Format   string // text, json, markdown
	Color    string // auto, always, never (text format only)
	TopFiles int    // 0 means DefaultTopFiles
}

// Render writes findings to w in the requested format.
func Render(w io.Writer, findings []*types.Finding, opts Options) error {
	if opts.TopFiles <= 0 {
		opts.TopFiles = DefaultTopFiles
	}
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, findings)
	case FormatMarkdown:
		return renderMarkdown(w, findings, opts)
	case FormatText, "":
		return renderText(w, findings, opts)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}
