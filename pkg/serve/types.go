package serve

import (
	"encoding/json"

	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// Request is an incoming NDJSON request.
type Request struct {
	Type    string          `json:"type"` // "scan" | "scan_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// ScanPayload is the payload for "scan" requests. Source is the file path
// the content pretends to live at; it selects the applicable rules.
type ScanPayload struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// ContentItem is one entry of a "scan_batch" request.
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// ScanBatchPayload is the payload for "scan_batch" requests.
type ScanBatchPayload struct {
	Items []ContentItem `json:"items"`
}

// ScanResult holds the findings for a single source.
type ScanResult struct {
	Source   string           `json:"source"`
	Findings []*types.Finding `json:"findings"`
}

// BatchScanResult holds per-item results in request order.
type BatchScanResult struct {
	Results []ScanResult `json:"results"`
	Total   int          `json:"total"` // total findings across all items
}

// Response is an outgoing NDJSON response.
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "scan" | "scan_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses.
type ReadyData struct {
	Version string `json:"version"`
}
