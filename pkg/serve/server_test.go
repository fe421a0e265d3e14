package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

func testEngine(t *testing.T) *matcher.Engine {
	t.Helper()
	engine, err := matcher.New([]types.Rule{
		{
			ID:        "sync-read",
			Name:      "Synchronous read",
			Severity:  types.SeverityHigh,
			Languages: []types.Language{types.LangJS},
			Pattern:   `\breadFileSync\s*\(`,
			Message:   "Synchronous I/O blocks the event loop.",
		},
	})
	require.NoError(t, err)
	return engine
}

// runServer feeds input through a server and returns the decoded responses.
func runServer(t *testing.T, input string) []Response {
	t.Helper()
	var out bytes.Buffer
	srv := NewServer(testEngine(t), strings.NewReader(input), &out)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Run(ctx))

	var responses []Response
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp Response
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_Ready(t *testing.T) {
	responses := runServer(t, "")
	require.Len(t, responses, 1)
	assert.True(t, responses[0].Success)
	assert.Equal(t, "ready", responses[0].Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(responses[0].Data, &ready))
	assert.Equal(t, Version, ready.Version)
}

func TestServer_Scan(t *testing.T) {
	input := `{"type":"scan","payload":{"source":"app.js","content":"const a = readFileSync(p);\nconst b = readFileSync(p);"}}` + "\n"
	responses := runServer(t, input)
	require.Len(t, responses, 2)

	resp := responses[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "scan", resp.Type)

	var result ScanResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "app.js", result.Source)
	require.Len(t, result.Findings, 2)
	assert.Equal(t, "sync-read", result.Findings[0].RuleID)
	assert.Equal(t, 1, result.Findings[0].Line)
	assert.Equal(t, 2, result.Findings[1].Line)
}

func TestServer_ScanNoMatch(t *testing.T) {
	input := `{"type":"scan","payload":{"source":"app.js","content":"const a = 1;"}}` + "\n"
	responses := runServer(t, input)
	require.Len(t, responses, 2)

	var result ScanResult
	require.NoError(t, json.Unmarshal(responses[1].Data, &result))
	assert.Empty(t, result.Findings)
}

func TestServer_ScanBatch(t *testing.T) {
	input := `{"type":"scan_batch","payload":{"items":[` +
		`{"source":"a.js","content":"readFileSync(p)"},` +
		`{"source":"b.py","content":"readFileSync(p)"},` +
		`{"source":"c.js","content":"readFileSync(p)"}]}}` + "\n"
	responses := runServer(t, input)
	require.Len(t, responses, 2)

	var result BatchScanResult
	require.NoError(t, json.Unmarshal(responses[1].Data, &result))
	require.Len(t, result.Results, 3)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "a.js", result.Results[0].Source)
	assert.Len(t, result.Results[0].Findings, 1)
	// The rule only applies to JS sources.
	assert.Empty(t, result.Results[1].Findings)
	assert.Len(t, result.Results[2].Findings, 1)
}

func TestServer_Close(t *testing.T) {
	input := `{"type":"close"}` + "\n" +
		`{"type":"scan","payload":{"source":"a.js","content":"readFileSync(p)"}}` + "\n"
	responses := runServer(t, input)
	// Requests after close are not processed.
	require.Len(t, responses, 1)
	assert.Equal(t, "ready", responses[0].Type)
}

func TestServer_UnknownType(t *testing.T) {
	responses := runServer(t, `{"type":"bogus"}`+"\n")
	require.Len(t, responses, 2)
	assert.False(t, responses[1].Success)
	assert.Contains(t, responses[1].Error, "unknown request type")
}

func TestServer_MalformedInput(t *testing.T) {
	responses := runServer(t, "this is not json\n")
	require.Len(t, responses, 2)
	assert.False(t, responses[1].Success)
	assert.Equal(t, "decode", responses[1].Type)
}

func TestServer_InvalidPayload(t *testing.T) {
	responses := runServer(t, `{"type":"scan","payload":"not an object"}`+"\n")
	require.Len(t, responses, 2)
	assert.False(t, responses[1].Success)
	assert.Equal(t, "scan", responses[1].Type)
}
