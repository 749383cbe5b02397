// Package bridge converts a ranking into the shape exchanged with callers
// outside the process: JSON with a truncation map keyed by display text.
package bridge

import (
	"encoding/json"

	"github.com/standardbeagle/fzmatch/internal/pipeline"
)

// Result is the wire form of a ranking. Indices and Lines are aligned by
// rank; TruncatedMap maps a shortened display line to the candidate it came
// from and has no entry for lines shown in full.
type Result struct {
	Indices      [][]int           `json:"indices"`
	Lines        []string          `json:"lines"`
	TruncatedMap map[string]string `json:"truncated_map"`
}

// Encode re-keys the truncation table by display text. When two shortened
// rows render to the same text, the higher-ranked row keeps the entry.
func Encode(p *pipeline.Presented) Result {
	result := Result{
		Indices:      make([][]int, p.Len()),
		Lines:        make([]string, p.Len()),
		TruncatedMap: make(map[string]string, len(p.Truncation)),
	}

	for i := 0; i < p.Len(); i++ {
		result.Lines[i] = p.Lines[i]
		if p.Positions[i] == nil {
			result.Indices[i] = []int{}
		} else {
			result.Indices[i] = p.Positions[i]
		}

		original, ok := p.Truncation[i]
		if !ok {
			continue
		}
		if _, taken := result.TruncatedMap[p.Lines[i]]; !taken {
			result.TruncatedMap[p.Lines[i]] = original
		}
	}
	return result
}

// Original resolves a display line back to its candidate text. Lines that
// were not shortened are returned as they are.
func (r Result) Original(display string) string {
	if original, ok := r.TruncatedMap[display]; ok {
		return original
	}
	return display
}

// Marshal encodes p as JSON
func Marshal(p *pipeline.Presented) ([]byte, error) {
	return json.Marshal(Encode(p))
}

// Decode parses a JSON result
func Decode(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, err
	}
	if r.TruncatedMap == nil {
		r.TruncatedMap = map[string]string{}
	}
	return r, nil
}
