package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// styles holds color formatters for the text report.
type styles struct {
	heading  *color.Color
	critical *color.Color
	high     *color.Color
	medium   *color.Color
	low      *color.Color
	metadata *color.Color
	snippet  *color.Color
	good     *color.Color
}

// newStyles creates color formatters. enabled=false disables all colors.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold, color.FgHiWhite),
		critical: color.New(color.Bold, color.FgHiRed),
		high:     color.New(color.FgRed),
		medium:   color.New(color.FgYellow),
		low:      color.New(color.FgCyan),
		metadata: color.New(color.FgHiBlue),
		snippet:  color.New(color.FgYellow),
		good:     color.New(color.FgGreen),
	}
	// Set the per-Color override explicitly so the package-level TTY
	// detection in fatih/color cannot second-guess the resolved mode.
	for _, c := range []*color.Color{
		s.heading, s.critical, s.high, s.medium,
		s.low, s.metadata, s.snippet, s.good,
	} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// forSeverity picks the formatter for a severity tier.
func (s *styles) forSeverity(sev types.Severity) *color.Color {
	switch sev {
	case types.SeverityCritical:
		return s.critical
	case types.SeverityHigh:
		return s.high
	case types.SeverityMedium:
		return s.medium
	default:
		return s.low
	}
}

// colorEnabled resolves the color mode against the destination writer.
// "auto" enables color only when writing to a terminal; NO_COLOR always wins.
func colorEnabled(mode string, w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// renderText mirrors the Markdown structure with ANSI styling. It is meant
// for humans, not machines.
func renderText(w io.Writer, findings []*types.Finding, opts Options) error {
	st := newStyles(colorEnabled(opts.Color, w))

	if len(findings) == 0 {
		st.good.Fprintln(w, "No issues found.")
		return nil
	}

	st.heading.Fprintf(w, "perf-x-ray report\n")
	fmt.Fprintf(w, "%d finding(s) across %d file(s)\n\n", len(findings), distinctFiles(findings))

	counts := severityCounts(findings)
	st.heading.Fprintln(w, "Summary")
	for _, sev := range descendingSeverities() {
		// Pad before colorizing: escape bytes inside the field would
		// count toward the width and shift the counts column.
		label := st.forSeverity(sev).Sprint(fmt.Sprintf("%-10s", sev))
		fmt.Fprintf(w, "  %s %d\n", label, counts[sev])
	}
	fmt.Fprintln(w)

	st.heading.Fprintln(w, "Top files")
	for i, fc := range topFiles(findings, opts.TopFiles) {
		fmt.Fprintf(w, "  %d. %s - %d finding(s)\n", i+1, st.metadata.Sprint(fc.file), fc.count)
	}
	fmt.Fprintln(w)

	groups := bySeverity(findings)
	for _, sev := range descendingSeverities() {
		group := groups[sev]
		if len(group) == 0 {
			continue
		}
		st.forSeverity(sev).Fprintf(w, "%s (%d)\n", sev, len(group))
		for _, f := range group {
			fmt.Fprintf(w, "  %s %s\n", st.heading.Sprint(f.RuleName), st.metadata.Sprintf("%s:%d", f.File, f.Line))
			if f.Snippet != "" {
				fmt.Fprintf(w, "    %s\n", st.snippet.Sprint(f.Snippet))
			}
			fmt.Fprintf(w, "    %s\n", f.Message)
			fmt.Fprintf(w, "    fix: %s\n", f.Suggestion)
		}
		fmt.Fprintln(w)
	}
	return nil
}
