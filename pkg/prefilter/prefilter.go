// Package prefilter short-circuits rules whose literal keywords are absent
// from the content being scanned.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Prefilter uses Aho-Corasick keyword matching to decide which rules are
// worth running against a given file. Rules without keywords are always
// candidates.
type Prefilter struct {
	matcher      *ahocorasick.Matcher
	keywords     []string            // keyword at each index
	keywordRules map[string][]string // keyword -> rule IDs needing it
	alwaysRun    []string            // rule IDs without keywords
}

// New builds a prefilter over the rule set.
func New(rules []types.Rule) *Prefilter {
	pf := &Prefilter{
		keywordRules: make(map[string][]string),
	}

	keywordSet := make(map[string]bool)
	for _, r := range rules {
		if len(r.Keywords) == 0 {
			pf.alwaysRun = append(pf.alwaysRun, r.ID)
			continue
		}
		for _, kw := range r.Keywords {
			if !keywordSet[kw] {
				keywordSet[kw] = true
				pf.keywords = append(pf.keywords, kw)
			}
			pf.keywordRules[kw] = append(pf.keywordRules[kw], r.ID)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// Candidates returns the set of rule IDs that might match content: rules
// with a keyword hit plus rules without keywords. Returning a set rather
// than a slice leaves rule ordering to the caller, which iterates the
// catalog in declaration order.
//
// Candidates is safe for concurrent use: one prefilter is shared by all
// of the aggregator's scan workers. Matcher.Match dedupes hits through
// unsynchronized per-node counters, so only MatchThreadSafe may be used
// here.
func (pf *Prefilter) Candidates(content []byte) map[string]bool {
	result := make(map[string]bool, len(pf.alwaysRun))
	for _, id := range pf.alwaysRun {
		result[id] = true
	}
	if pf.matcher == nil {
		return result
	}

	for _, hit := range pf.matcher.MatchThreadSafe(content) {
		for _, id := range pf.keywordRules[pf.keywords[hit]] {
			result[id] = true
		}
	}
	return result
}
