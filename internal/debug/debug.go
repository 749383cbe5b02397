// Package debug is fzmatch's trace output: one-line messages tagged with
// the stage that wrote them (MATCH for scoring and truncation, SOURCE for
// reading, walking and watching input, MCP for the tool server).
//
// Tracing is off unless the binary was built with EnableDebug=true or the
// process runs with DEBUG=1, and a writer is attached (SetDebugOutput or
// InitDebugLogFile). MCP mode silences everything, since stdio then carries
// the protocol.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug turns tracing on for a build:
// go build -ldflags "-X github.com/standardbeagle/fzmatch/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode is set by the mcp command before the server starts
var MCPMode = false

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer // nil drops every message
	debugFile   *os.File  // set when debugOutput is a log file we own
)

// SetMCPMode switches MCP mode on or off
func SetMCPMode(enabled bool) {
	MCPMode = enabled
}

// SetDebugOutput attaches w as the trace destination; nil detaches it
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	debugOutput = w
	debugMutex.Unlock()
}

// InitDebugLogFile sends traces to a new file under the temp directory and
// returns its path. CloseDebugLog releases it.
func InitDebugLogFile() (string, error) {
	dir := filepath.Join(os.TempDir(), "fzmatch-debug-logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	name := fmt.Sprintf("trace-%s-%d.log", time.Now().Format("20060102-150405"), os.Getpid())
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugMutex.Lock()
	debugFile = file
	debugOutput = file
	debugMutex.Unlock()
	return path, nil
}

// CloseDebugLog closes the file opened by InitDebugLogFile, if any
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	debugOutput = nil
	return err
}

// IsDebugEnabled reports whether traces are wanted at all
func IsDebugEnabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	switch os.Getenv("DEBUG") {
	case "1", "true":
		return true
	}
	return false
}

// sink returns the writer for a trace, or nil when it should be dropped
func sink() io.Writer {
	if !IsDebugEnabled() {
		return nil
	}
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf writes an untagged trace
func Printf(format string, args ...interface{}) {
	if w := sink(); w != nil {
		fmt.Fprintf(w, "[DEBUG] "+format, args...)
	}
}

// Log writes a trace tagged with component
func Log(component, format string, args ...interface{}) {
	if w := sink(); w != nil {
		fmt.Fprintf(w, "[DEBUG:%s] %s", component, fmt.Sprintf(format, args...))
	}
}

// LogMatch traces matcher selection, ranking and truncation
func LogMatch(format string, args ...interface{}) {
	Log("MATCH", format, args...)
}

// LogSource traces candidate reading, walking and watching
func LogSource(format string, args ...interface{}) {
	Log("SOURCE", format, args...)
}

// LogMCP traces the tool server
func LogMCP(format string, args ...interface{}) {
	Log("MCP", format, args...)
}

// Fatal records msg in the trace (even with tracing off, as long as a
// writer is attached and MCP mode is off) and returns it as an error for
// the caller to surface.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if !MCPMode {
		debugMutex.Lock()
		w := debugOutput
		debugMutex.Unlock()
		if w != nil {
			fmt.Fprintf(w, "[FATAL] %s", msg)
		}
	}
	return fmt.Errorf("fatal error: %s", msg)
}
