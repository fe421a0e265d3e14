package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck_Findings(t *testing.T) {
	resetScanFlags()
	path := filepath.Join(t.TempDir(), "model.py")
	content := "for user in users:\n    profile = db.execute(q, user.id)\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	var buf bytes.Buffer
	err := runCheck(newTestCmd(&buf), []string{path})
	require.ErrorIs(t, err, errFindings)
	assert.Contains(t, buf.String(), "py-n-plus-one")
}

func TestRunCheck_Clean(t *testing.T) {
	resetScanFlags()
	path := filepath.Join(t.TempDir(), "ok.go")
	require.NoError(t, os.WriteFile(path, []byte("package ok\n"), 0644))

	var buf bytes.Buffer
	err := runCheck(newTestCmd(&buf), []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No issues found.")
}

func TestRunCheck_UnreadableFileIsError(t *testing.T) {
	resetScanFlags()
	err := runCheck(newTestCmd(&bytes.Buffer{}), []string{"/nonexistent/file.js"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFindings)
}

func TestRunCheck_UnknownExtensionIsClean(t *testing.T) {
	resetScanFlags()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("fs.readFileSync(p);\n"), 0644))

	err := runCheck(newTestCmd(&bytes.Buffer{}), []string{path})
	require.NoError(t, err)
}
