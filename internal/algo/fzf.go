package algo

import (
	"strings"
	"sync"

	fzfalgo "github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/standardbeagle/fzmatch/internal/types"
)

var fzfInitOnce sync.Once

// FzfScorer runs fzf's FuzzyMatchV2 (Smith-Waterman style, bonuses for word
// boundaries and camelCase) with case-insensitive matching.
type FzfScorer struct{}

// NewFzfScorer initializes fzf's bonus tables once and returns the scorer
func NewFzfScorer() *FzfScorer {
	fzfInitOnce.Do(func() {
		fzfalgo.Init("default")
	})
	return &FzfScorer{}
}

// Score implements Scorer. Both sides are lower-cased before matching and
// matched with caseSensitive=true, since fzf's own case folding only covers
// its ASCII fast path. Lower-casing keeps the rune count, so fzf's rune
// positions map back onto the original line.
func (s *FzfScorer) Score(line, query string) (types.MatchResult, bool) {
	if query == "" {
		return types.MatchResult{}, true
	}

	pattern := []rune(strings.ToLower(query))
	chars := util.ToChars([]byte(strings.ToLower(line)))

	// A nil slab makes fzf allocate per call, which keeps the scorer safe to
	// share between ranking workers.
	result, positions := fzfalgo.FuzzyMatchV2(true, false, true, &chars, pattern, true, nil)
	if result.Start < 0 || result.Score <= 0 {
		return types.MatchResult{}, false
	}

	var runeIdx []int
	if positions != nil {
		runeIdx = *positions
	}

	return types.MatchResult{
		Score:     float64(result.Score),
		Positions: runesToBytes(line, runeIdx),
	}, true
}
