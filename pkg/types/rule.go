package types

// Rule is a performance anti-pattern detection rule with pattern and metadata.
// Rules are immutable value structs defined at process start; there is no
// runtime registration.
type Rule struct {
	ID         string     // e.g., "sync-io", unique across the catalog
	Name       string     // human-readable title
	Severity   Severity   // cost classification of the anti-pattern
	Languages  []Language // language tags this rule applies to (never empty)
	Pattern    string     // regex pattern over raw file content
	Message    string     // static description of the problem
	Suggestion string     // static remediation text
	Keywords   []string   // literal fragments for Aho-Corasick prefiltering

	Examples         []string // snippets the pattern must match
	NegativeExamples []string // snippets the pattern must not match
}

// AppliesTo reports whether the rule is active for the given language tag.
func (r *Rule) AppliesTo(lang Language) bool {
	for _, l := range r.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
