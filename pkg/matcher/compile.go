package matcher

import (
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern execution. Several catalog rules
// exist to catch catastrophic-backtracking regexes; the engine running them
// must not be vulnerable to the same failure mode.
const matchTimeout = 5 * time.Second

// Compile compiles a rule pattern. RE2 mode is tried first (linear-time,
// no backtracking); patterns that need Perl features such as lookahead or
// backreferences fall back to the default mode with a match timeout.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2|regexp2.Multiline)
	if err != nil {
		re, err = regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, err
		}
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}
