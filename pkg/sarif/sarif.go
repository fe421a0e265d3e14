// Package sarif renders findings as a SARIF 2.1.0 report for code-scanning
// integrations.
package sarif

import (
	"encoding/json"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// SARIF 2.1.0 constants.
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "perf-x-ray"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure.
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule carries rule metadata into the report.
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text.
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message.
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies the file location.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line range.
type Region struct {
	StartLine int      `json:"startLine"`
	Snippet   *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the matched line text.
type Snippet struct {
	Text string `json:"text"`
}

// New creates a report pre-populated with the rule catalog.
func New(rules []types.Rule) *Report {
	driver := Driver{
		Name:    ToolName,
		Version: ToolVersion,
		Rules:   make([]Rule, 0, len(rules)),
	}
	for _, r := range rules {
		driver.Rules = append(driver.Rules, Rule{
			ID:               r.ID,
			Name:             r.Name,
			ShortDescription: ShortDescription{Text: r.Message},
		})
	}
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool:    Tool{Driver: driver},
				Results: []Result{},
			},
		},
	}
}

// Add appends a finding to the report.
func (r *Report) Add(f *types.Finding) {
	var snippet *Snippet
	if f.Snippet != "" {
		snippet = &Snippet{Text: f.Snippet}
	}
	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:  f.RuleID,
		Level:   severityLevel(f.Severity),
		Message: Message{Text: f.Message},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: f.File},
					Region: Region{
						StartLine: f.Line,
						Snippet:   snippet,
					},
				},
			},
		},
	})
}

// ToJSON serializes the report.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// severityLevel maps the severity order onto SARIF levels.
func severityLevel(s types.Severity) string {
	switch s {
	case types.SeverityCritical, types.SeverityHigh:
		return "error"
	case types.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
