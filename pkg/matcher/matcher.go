// Package matcher runs compiled rule patterns against file content and
// turns matches into findings.
package matcher

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/NickCirv/perf-x-ray/pkg/lang"
	"github.com/NickCirv/perf-x-ray/pkg/prefilter"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// MaxFindingsPerRule caps findings per (rule, file) pair. Generated and
// minified files would otherwise produce pathological match counts; the
// undercount beyond the cap is documented behavior.
const MaxFindingsPerRule = 5

type compiledRule struct {
	rule types.Rule
	re   *regexp2.Regexp
}

// Engine matches a fixed rule set against file content. Construction
// compiles every pattern up front so a malformed pattern fails fast,
// before any file is scanned.
type Engine struct {
	rules []compiledRule // catalog order
	pre   *prefilter.Prefilter
}

// New compiles all rule patterns and builds the keyword prefilter.
func New(rules []types.Rule) (*Engine, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules provided")
	}

	e := &Engine{
		rules: make([]compiledRule, 0, len(rules)),
		pre:   prefilter.New(rules),
	}
	for _, r := range rules {
		re, err := Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q for rule %s: %w", r.Pattern, r.ID, err)
		}
		e.rules = append(e.rules, compiledRule{rule: r, re: re})
	}
	return e, nil
}

// RuleCount returns the number of compiled rules.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Rules returns the compiled rule set in catalog order.
func (e *Engine) Rules() []types.Rule {
	out := make([]types.Rule, 0, len(e.rules))
	for _, cr := range e.rules {
		out = append(out, cr.rule)
	}
	return out
}

// Scan matches all applicable rules against content and returns findings in
// catalog order, then match order. Matching never fails for well-formed
// input; a rule whose execution times out is abandoned for this file only.
func (e *Engine) Scan(path string, content []byte) []*types.Finding {
	language := lang.Resolve(path)
	text := string(content)

	// Split the content into lines once, reused for snippet lookup across
	// all rules on this file.
	var ix *types.LineIndex

	candidates := e.pre.Candidates(content)

	var findings []*types.Finding
	for i := range e.rules {
		cr := &e.rules[i]
		if !cr.rule.AppliesTo(language) {
			continue
		}
		if !candidates[cr.rule.ID] {
			continue
		}
		if ix == nil {
			ix = types.NewLineIndex(text)
		}
		findings = append(findings, e.scanRule(cr, path, text, ix)...)
	}
	return findings
}

// scanRule executes one rule's pattern globally over the file content.
func (e *Engine) scanRule(cr *compiledRule, path, text string, ix *types.LineIndex) []*types.Finding {
	var findings []*types.Finding

	m, err := cr.re.FindStringMatch(text)
	for err == nil && m != nil {
		line := ix.LineAt(m.Index)
		findings = append(findings, &types.Finding{
			RuleID:     cr.rule.ID,
			RuleName:   cr.rule.Name,
			Severity:   cr.rule.Severity,
			File:       path,
			Line:       line,
			Snippet:    types.FormatSnippet(ix.TextAt(line)),
			Message:    cr.rule.Message,
			Suggestion: cr.rule.Suggestion,
		})
		if len(findings) >= MaxFindingsPerRule {
			break
		}

		prev := m
		m, err = cr.re.FindNextMatch(prev)
		// A zero-width match that fails to advance the cursor would loop
		// forever; stop the rule instead.
		if m != nil && m.Length == 0 && m.Index == prev.Index {
			break
		}
	}
	return findings
}
