package rule

import (
	"fmt"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Validate checks catalog integrity: unique IDs, non-empty language sets,
// and patterns that compile. A failure here is a catalog bug, so callers
// must treat it as fatal before any scanning begins.
func Validate(rules []types.Rule) error {
	seen := make(map[string]bool, len(rules))
	for i := range rules {
		r := &rules[i]

		if r.ID == "" {
			return fmt.Errorf("rule %d: ID is required", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("rule %s: duplicate ID", r.ID)
		}
		seen[r.ID] = true

		if r.Name == "" {
			return fmt.Errorf("rule %s: name is required", r.ID)
		}
		if r.Pattern == "" {
			return fmt.Errorf("rule %s: pattern is required", r.ID)
		}
		if len(r.Languages) == 0 {
			return fmt.Errorf("rule %s: languages must not be empty", r.ID)
		}
		switch r.Severity {
		case types.SeverityLow, types.SeverityMedium, types.SeverityHigh, types.SeverityCritical:
		default:
			return fmt.Errorf("rule %s: unknown severity %q", r.ID, r.Severity)
		}

		// Compile with the same engine and mode the matcher uses, so that
		// "validates" and "scannable" never drift apart.
		if _, err := matcher.Compile(r.Pattern); err != nil {
			return fmt.Errorf("rule %s: invalid pattern: %w", r.ID, err)
		}
	}
	return nil
}
