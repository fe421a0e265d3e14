package report

import (
	"fmt"
	"io"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// renderMarkdown writes a severity-count summary table, a top-files list,
// and per-severity sections with one block per finding.
func renderMarkdown(w io.Writer, findings []*types.Finding, opts Options) error {
	fmt.Fprintf(w, "# perf-x-ray report\n\n")

	if len(findings) == 0 {
		fmt.Fprintf(w, "No issues found.\n")
		return nil
	}

	counts := severityCounts(findings)
	fmt.Fprintf(w, "%d finding(s) across %d file(s).\n\n", len(findings), distinctFiles(findings))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Severity | Count |\n")
	fmt.Fprintf(w, "| --- | ---: |\n")
	for _, sev := range descendingSeverities() {
		fmt.Fprintf(w, "| %s | %d |\n", sev, counts[sev])
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "## Top files\n\n")
	for i, fc := range topFiles(findings, opts.TopFiles) {
		fmt.Fprintf(w, "%d. `%s` - %d finding(s)\n", i+1, fc.file, fc.count)
	}
	fmt.Fprintf(w, "\n")

	groups := bySeverity(findings)
	for _, sev := range descendingSeverities() {
		group := groups[sev]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "## %s\n\n", sev)
		for _, f := range group {
			writeMarkdownFinding(w, f)
		}
	}
	return nil
}

func writeMarkdownFinding(w io.Writer, f *types.Finding) {
	fmt.Fprintf(w, "### %s (`%s`) - `%s:%d`\n\n", f.RuleName, f.RuleID, f.File, f.Line)
	if f.Snippet != "" {
		fmt.Fprintf(w, "```\n%s\n```\n\n", f.Snippet)
	}
	fmt.Fprintf(w, "%s\n\n", f.Message)
	fmt.Fprintf(w, "*Suggestion:* %s\n\n", f.Suggestion)
}
