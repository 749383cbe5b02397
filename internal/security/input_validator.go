// Package security checks candidate input files before they are read into
// memory line by line.
package security

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxInputSize bounds the size of a candidate file
const DefaultMaxInputSize = 512 * 1024 * 1024

// ErrBinaryInput is returned for files that do not look like text
var ErrBinaryInput = errors.New("input appears to be binary")

// InputValidator rejects candidate files that cannot be line-oriented text
type InputValidator struct {
	MaxSize    int64 // 0 disables the size check
	HeaderSize int64 // bytes inspected for binary content
}

// NewInputValidator returns a validator with the default limits
func NewInputValidator() *InputValidator {
	return &InputValidator{
		MaxSize:    DefaultMaxInputSize,
		HeaderSize: 64 * 1024,
	}
}

// binarySignatures are file headers that never start a text file
var binarySignatures = map[string][]byte{
	"png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"jpeg": {0xFF, 0xD8, 0xFF},
	"gif":  {0x47, 0x49, 0x46, 0x38},
	"pdf":  {0x25, 0x50, 0x44, 0x46, 0x2D},
	"zip":  {0x50, 0x4B, 0x03, 0x04},
	"gzip": {0x1F, 0x8B},
	"elf":  {0x7F, 0x45, 0x4C, 0x46},
	"pe":   {0x4D, 0x5A, 0x90, 0x00},
}

// Validate checks that path is a regular file within MaxSize whose header
// looks like text
func (v *InputValidator) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	if v.MaxSize > 0 && info.Size() > v.MaxSize {
		return fmt.Errorf("input is %d bytes, limit is %d", info.Size(), v.MaxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, v.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read header: %w", err)
	}
	return v.ValidateHeader(header[:n])
}

// ValidateHeader applies the content checks to the first bytes of an input
func (v *InputValidator) ValidateHeader(header []byte) error {
	for kind, magic := range binarySignatures {
		if bytes.HasPrefix(header, magic) {
			return fmt.Errorf("%w (%s signature)", ErrBinaryInput, kind)
		}
	}
	if isBinaryData(header) {
		return ErrBinaryInput
	}
	return nil
}

// isBinaryData reports NUL bytes or more than 30% control characters
func isBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range data {
		// Control characters other than tab, LF, VT, FF and CR, plus DEL
		if b < 9 || (b > 13 && b < 32) || b == 127 {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}
