package mcp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticLogger_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	dl := newDiagnosticLogger(true, dir)

	path := dl.GetLogPath()
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	dl.Printf("matched %d rows", 3)
	dl.Errorf("bad %s", "query")
	require.NoError(t, dl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[MCP] ")
	assert.Contains(t, content, "matched 3 rows")
	assert.Contains(t, content, "ERROR: bad query")
	assert.Contains(t, content, "diagnostics_test.go", "call site of the caller is recorded")
}

func TestDiagnosticLogger_WriteAfterClose(t *testing.T) {
	dl := newDiagnosticLogger(true, t.TempDir())
	require.NoError(t, dl.Close())

	dl.Printf("dropped")
	assert.NoError(t, dl.Close())
}

func TestDiagnosticLogger_CLIMode(t *testing.T) {
	dl := NewDiagnosticLogger(false)
	assert.Empty(t, dl.GetLogPath())
	assert.NoError(t, dl.Close())
}

func TestDiagnosticLogger_Nil(t *testing.T) {
	var dl *DiagnosticLogger
	dl.Printf("ignored")
	dl.Errorf("ignored")
	assert.Empty(t, dl.GetLogPath())
	assert.NoError(t, dl.Close())
}

func TestNoOpLogger(t *testing.T) {
	NoOpLogger.Printf("nothing %s", strings.Repeat("x", 3))
	assert.Empty(t, NoOpLogger.GetLogPath())
}
