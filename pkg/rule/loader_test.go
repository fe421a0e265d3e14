package rule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

const sampleRulesYAML = `rules:
  - id: custom.busy-wait
    name: Busy wait
    severity: medium
    languages: [js, ts]
    pattern: 'while\s*\(\s*true\s*\)'
    message: Spinning on a condition burns CPU
    suggestion: Use an event or timer instead
    keywords: [while]
    examples:
      - "while (true) {}"
`

func TestLoad(t *testing.T) {
	rules, err := Load([]byte(sampleRulesYAML))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	r := rules[0]
	assert.Equal(t, "custom.busy-wait", r.ID)
	assert.Equal(t, "Busy wait", r.Name)
	assert.Equal(t, types.SeverityMedium, r.Severity)
	assert.Equal(t, []types.Language{types.LangJS, types.LangTS}, r.Languages)
	assert.Equal(t, []string{"while"}, r.Keywords)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("rules: ["))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestLoad_EmptyRules(t *testing.T) {
	_, err := Load([]byte("rules: []"))
	assert.ErrorContains(t, err, "no rules found")
}

func TestLoad_InvalidPattern(t *testing.T) {
	yaml := `rules:
  - id: bad
    name: Bad
    severity: low
    languages: [js]
    pattern: '[unclosed'
`
	_, err := Load([]byte(yaml))
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRulesYAML), 0644))

	rules, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/rules.yml")
	assert.ErrorContains(t, err, "failed to read file")
}

func TestMerge(t *testing.T) {
	extra, err := Load([]byte(sampleRulesYAML))
	require.NoError(t, err)

	merged, err := Merge(Builtin(), extra)
	require.NoError(t, err)
	assert.Len(t, merged, len(Builtin())+1)
	// Extras land after the builtins so catalog tie-break order is stable.
	assert.Equal(t, "custom.busy-wait", merged[len(merged)-1].ID)
}

func TestMerge_IDCollision(t *testing.T) {
	_, err := Merge(Builtin(), []types.Rule{validRule("sync-io")})
	assert.ErrorContains(t, err, "collides")
}
