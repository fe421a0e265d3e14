package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Load parses rules from YAML bytes. The rules are validated as a group;
// any problem is a construction-time error, reported before scanning.
func Load(data []byte) ([]types.Rule, error) {
	var yamlFile yamlRulesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(yamlFile.Rules) == 0 {
		return nil, fmt.Errorf("no rules found in YAML")
	}

	rules := make([]types.Rule, 0, len(yamlFile.Rules))
	for _, yr := range yamlFile.Rules {
		rules = append(rules, convertYAMLRule(yr))
	}
	if err := Validate(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadFile parses rules from a YAML file path.
func LoadFile(path string) ([]types.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Load(data)
}

// Merge appends extra rules after the base set, rejecting ID collisions.
// Base order is preserved so builtin tie-break order never changes.
func Merge(base, extra []types.Rule) ([]types.Rule, error) {
	ids := make(map[string]bool, len(base))
	for _, r := range base {
		ids[r.ID] = true
	}
	out := make([]types.Rule, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, r := range extra {
		if ids[r.ID] {
			return nil, fmt.Errorf("rule %s: ID collides with an existing rule", r.ID)
		}
		ids[r.ID] = true
		out = append(out, r)
	}
	return out, nil
}
