package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

func validRule(id string) types.Rule {
	return types.Rule{
		ID:        id,
		Name:      "Test Rule",
		Severity:  types.SeverityLow,
		Languages: []types.Language{types.LangJS},
		Pattern:   `test`,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Rule)
		wantErr string
	}{
		{"valid", func(r *types.Rule) {}, ""},
		{"missing id", func(r *types.Rule) { r.ID = "" }, "ID is required"},
		{"missing name", func(r *types.Rule) { r.Name = "" }, "name is required"},
		{"missing pattern", func(r *types.Rule) { r.Pattern = "" }, "pattern is required"},
		{"empty languages", func(r *types.Rule) { r.Languages = nil }, "languages must not be empty"},
		{"unknown severity", func(r *types.Rule) { r.Severity = "urgent" }, "unknown severity"},
		{"invalid pattern", func(r *types.Rule) { r.Pattern = `[unclosed` }, "invalid pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule("test-rule")
			tt.mutate(&r)
			err := Validate([]types.Rule{r})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	err := Validate([]types.Rule{validRule("dup"), validRule("dup")})
	assert.ErrorContains(t, err, "duplicate ID")
}

func TestValidate_LookaheadPatternCompiles(t *testing.T) {
	// Lookahead is outside RE2; validation must accept it through the
	// Perl fallback, the same way the engine does.
	r := validRule("lookahead")
	r.Pattern = `SELECT(?![^;]*LIMIT)`
	assert.NoError(t, Validate([]types.Rule{r}))
}
