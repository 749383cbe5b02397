package algo

import (
	"github.com/sahilm/fuzzy"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// SahilmScorer uses github.com/sahilm/fuzzy, a Sublime Text style scorer
// that favours first-character, camelCase and separator matches.
// Its matched indexes are already byte offsets.
type SahilmScorer struct{}

// Score implements Scorer
func (SahilmScorer) Score(line, query string) (types.MatchResult, bool) {
	if query == "" {
		return types.MatchResult{}, true
	}

	matches := fuzzy.Find(query, []string{line})
	if len(matches) == 0 {
		return types.MatchResult{}, false
	}

	match := matches[0]
	positions := make([]int, len(match.MatchedIndexes))
	copy(positions, match.MatchedIndexes)

	return types.MatchResult{
		Score:     float64(match.Score),
		Positions: sortUnique(positions),
	}, true
}
