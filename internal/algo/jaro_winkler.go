package algo

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// JaroWinklerScorer requires the query to appear in the line as a
// case-insensitive subsequence, then ranks by Jaro-Winkler similarity
// between query and line. Positions are the leftmost subsequence match.
type JaroWinklerScorer struct {
	threshold float64
}

// NewJaroWinklerScorer creates a scorer that rejects lines whose similarity
// is below threshold. Out-of-range thresholds fall back to 0.
func NewJaroWinklerScorer(threshold float64) *JaroWinklerScorer {
	if threshold < 0 || threshold > 1 {
		threshold = 0
	}
	return &JaroWinklerScorer{threshold: threshold}
}

// GetThreshold returns the configured similarity threshold
func (s *JaroWinklerScorer) GetThreshold() float64 {
	return s.threshold
}

// SetThreshold updates the similarity threshold
func (s *JaroWinklerScorer) SetThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("invalid threshold: %.2f (must be 0-1)", threshold)
	}
	s.threshold = threshold
	return nil
}

// Score implements Scorer
func (s *JaroWinklerScorer) Score(line, query string) (types.MatchResult, bool) {
	if query == "" {
		return types.MatchResult{}, true
	}

	positions, ok := subsequencePositions(line, query)
	if !ok {
		return types.MatchResult{}, false
	}

	similarity := s.similarity(strings.ToLower(query), strings.ToLower(line))
	if similarity < s.threshold {
		return types.MatchResult{}, false
	}

	return types.MatchResult{
		Score:     similarity * 100,
		Positions: positions,
	}, true
}

// similarity returns the Jaro-Winkler similarity (0.0-1.0) using go-edlib
func (s *JaroWinklerScorer) similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// subsequencePositions finds each query rune in order, case-insensitively,
// and returns the byte offsets of the matched runes in line.
func subsequencePositions(line, query string) ([]int, bool) {
	positions := make([]int, 0, utf8.RuneCountInString(query))
	cursor := 0
	for _, qr := range query {
		want := unicode.ToLower(qr)
		found := false
		for cursor < len(line) {
			r, size := utf8.DecodeRuneInString(line[cursor:])
			at := cursor
			cursor += size
			if unicode.ToLower(r) == want {
				positions = append(positions, at)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return positions, true
}
