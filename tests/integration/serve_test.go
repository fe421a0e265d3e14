//go:build integration

package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getProjectRoot returns the path to the project root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// tests/integration/serve_test.go -> project root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// startServe builds the binary and launches `perfxray serve`, returning
// its stdin and a line scanner over its stdout.
func startServe(t *testing.T) (io.WriteCloser, *bufio.Scanner) {
	t.Helper()
	projectRoot := getProjectRoot()

	buildCmd := exec.Command("go", "build", "-o", "dist/perfxray", "./cmd/perfxray")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))

	cmd := exec.Command(filepath.Join(projectRoot, "dist", "perfxray"), "serve")
	cmd.Dir = projectRoot

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)

	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		stdin.Close()
		cmd.Process.Kill()
		cmd.Wait()
	})

	return stdin, bufio.NewScanner(stdout)
}

// readResponse reads one NDJSON response line with a timeout.
func readResponse(t *testing.T, scanner *bufio.Scanner) map[string]interface{} {
	t.Helper()
	lineChan := make(chan string, 1)
	go func() {
		if scanner.Scan() {
			lineChan <- scanner.Text()
		}
	}()

	select {
	case line := <-lineChan:
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		return resp
	case <-time.After(60 * time.Second):
		t.Fatal("timeout waiting for response")
		return nil
	}
}

func TestServeIntegration_ReadySignal(t *testing.T) {
	_, scanner := startServe(t)

	ready := readResponse(t, scanner)
	assert.True(t, ready["success"].(bool))
	assert.Equal(t, "ready", ready["type"])
}

func TestServeIntegration_ScanSyncIO(t *testing.T) {
	stdin, scanner := startServe(t)
	readResponse(t, scanner) // ready

	req := map[string]interface{}{
		"type": "scan",
		"payload": map[string]string{
			"source":  "app.js",
			"content": "const data = fs.readFileSync(path);\n",
		},
	}
	reqBytes, err := json.Marshal(req)
	require.NoError(t, err)
	_, err = stdin.Write(append(reqBytes, '\n'))
	require.NoError(t, err)

	resp := readResponse(t, scanner)
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "scan", resp["type"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "app.js", data["source"])
	findings := data["findings"].([]interface{})
	require.Len(t, findings, 1)
	finding := findings[0].(map[string]interface{})
	assert.Equal(t, "sync-io", finding["rule_id"])
	assert.Equal(t, float64(1), finding["line"])
}

func TestServeIntegration_Close(t *testing.T) {
	stdin, scanner := startServe(t)
	readResponse(t, scanner) // ready

	_, err := stdin.Write([]byte(`{"type":"close"}` + "\n"))
	require.NoError(t, err)

	// The server exits without another response; the stream just ends.
	done := make(chan bool, 1)
	go func() {
		done <- scanner.Scan()
	}()
	select {
	case more := <-done:
		assert.False(t, more, "no output expected after close")
	case <-time.After(30 * time.Second):
		t.Fatal("server did not shut down after close")
	}
}
