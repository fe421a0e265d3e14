package report

import (
	"encoding/json"
	"io"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// renderJSON writes a direct structured dump of all finding fields.
func renderJSON(w io.Writer, findings []*types.Finding) error {
	if findings == nil {
		findings = []*types.Finding{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(findings)
}
