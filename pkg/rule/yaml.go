package rule

import "github.com/NickCirv/perf-x-ray/pkg/types"

// yamlRule is the intermediate struct for parsing user rule files.
type yamlRule struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Severity   string   `yaml:"severity"`
	Languages  []string `yaml:"languages"`
	Pattern    string   `yaml:"pattern"`
	Message    string   `yaml:"message,omitempty"`
	Suggestion string   `yaml:"suggestion,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty"`

	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlRulesFile is the top-level structure of a rules YAML file: a "rules"
// array at the top level.
type yamlRulesFile struct {
	Rules []yamlRule `yaml:"rules"`
}

func convertYAMLRule(yr yamlRule) types.Rule {
	langs := make([]types.Language, 0, len(yr.Languages))
	for _, l := range yr.Languages {
		langs = append(langs, types.Language(l))
	}
	return types.Rule{
		ID:               yr.ID,
		Name:             yr.Name,
		Severity:         types.Severity(yr.Severity),
		Languages:        langs,
		Pattern:          yr.Pattern,
		Message:          yr.Message,
		Suggestion:       yr.Suggestion,
		Keywords:         yr.Keywords,
		Examples:         yr.Examples,
		NegativeExamples: yr.NegativeExamples,
	}
}
