package types

// Finding is one concrete match of a rule at a specific file and line.
// Rule metadata is copied at creation time, so later catalog changes can
// never retroactively alter an emitted finding. Findings are read-only
// after creation; any decorated view must be a copy.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	RuleName   string   `json:"rule_name"`
	Severity   Severity `json:"severity"`
	File       string   `json:"file"`
	Line       int      `json:"line"` // 1-based line of the match start
	Snippet    string   `json:"snippet"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}
