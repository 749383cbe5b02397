// Package source produces candidate lines: from a reader, from a directory
// walk, or again whenever a watched input file changes.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/fzmatch/internal/debug"
	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/security"
)

// maxLineSize bounds a single candidate line
const maxLineSize = 1024 * 1024

// ReadLines reads one candidate per line. Trailing carriage returns are
// removed and empty lines are skipped. With dedup set only the first
// occurrence of a line is kept.
func ReadLines(r io.Reader, dedup bool) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var seen *Deduper
	if dedup {
		seen = NewDeduper()
	}

	lines := make([]string, 0, 256)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if seen != nil && !seen.Add(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	debug.LogSource("read %d lines (dedup=%v)\n", len(lines), dedup)
	return lines, nil
}

// ReadFile reads candidates from the file at path. Binary or oversized files
// are rejected before reading.
func ReadFile(path string, dedup bool) ([]string, error) {
	if err := security.NewInputValidator().Validate(path); err != nil {
		return nil, fzerrors.NewFileError("validate", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fzerrors.NewFileError("open", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f, dedup)
	if err != nil {
		return nil, fzerrors.NewFileError("read", path, err)
	}
	return lines, nil
}

// Deduper remembers lines by their xxhash digest. Lines that share a digest
// are compared in full, so a hash collision never drops a distinct line.
type Deduper struct {
	seen map[uint64][]string
}

// NewDeduper returns an empty Deduper
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[uint64][]string)}
}

// Add records line and reports whether it was not seen before
func (d *Deduper) Add(line string) bool {
	h := xxhash.Sum64String(line)
	for _, prev := range d.seen[h] {
		if prev == line {
			return false
		}
	}
	d.seen[h] = append(d.seen[h], line)
	return true
}

// Len returns the number of distinct lines recorded
func (d *Deduper) Len() int {
	n := 0
	for _, bucket := range d.seen {
		n += len(bucket)
	}
	return n
}
