package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalMode := MCPMode
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		EnableDebug = originalDebug
		MCPMode = originalMode
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestSetMCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	SetMCPMode(true)
	assert.True(t, MCPMode)

	SetMCPMode(false)
	assert.False(t, MCPMode)
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	EnableDebug = "false"
	MCPMode = false
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	assert.True(t, IsDebugEnabled())

	// MCP mode always wins
	MCPMode = true
	assert.False(t, IsDebugEnabled())

	MCPMode = false
	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())

	t.Setenv("DEBUG", "1")
	assert.True(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = false

	LogMatch("ranked %d rows\n", 3)
	LogSource("read %d lines\n", 10)
	Printf("plain %s\n", "message")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG:MATCH] ranked 3 rows")
	assert.Contains(t, out, "[DEBUG:SOURCE] read 10 lines")
	assert.Contains(t, out, "[DEBUG] plain message")
}

func TestLog_SilentWithoutWriter(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	SetDebugOutput(nil)

	// Must not panic
	LogMCP("nothing to see\n")
}

func TestLog_SilentInMCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = true

	LogMCP("should not appear\n")
	assert.Empty(t, buf.String())
}

func TestFatal(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	MCPMode = false

	err := Fatal("bad %s", "state")
	require.Error(t, err)
	assert.Equal(t, "fatal error: bad state", err.Error())
	assert.True(t, strings.HasPrefix(buf.String(), "[FATAL]"))
}

func TestInitDebugLogFile(t *testing.T) {
	defer saveAndRestoreState()()

	path, err := InitDebugLogFile()
	require.NoError(t, err)
	defer os.Remove(path)

	EnableDebug = "true"
	MCPMode = false
	LogMatch("to file\n")

	require.NoError(t, CloseDebugLog())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")

	// Closing twice is harmless
	assert.NoError(t, CloseDebugLog())
}
