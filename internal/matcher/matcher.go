// Package matcher chooses how a query is scored and applies that choice to
// candidate lines.
//
// A query containing a space is treated as a list of phrase fragments and
// scored by the multi-term substring scorer against the whole line. Any other
// query is handed to a single-term fuzzy scorer (see package algo), after the
// icon block and the line splitter have narrowed the line. Positions are
// always returned as byte offsets into the original candidate.
package matcher

import (
	"strings"

	"github.com/standardbeagle/fzmatch/internal/algo"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// Kind identifies the scoring strategy chosen for a query
type Kind int

const (
	KindSubstring Kind = iota
	KindSingleTerm
)

func (k Kind) String() string {
	switch k {
	case KindSubstring:
		return "substring"
	case KindSingleTerm:
		return "single-term"
	default:
		return "unknown"
	}
}

// Matcher is resolved once per query and then applied to every candidate.
// It holds no mutable state, so one Matcher may be shared by ranking workers
// as long as its scorer is safe for concurrent use.
type Matcher struct {
	kind  Kind
	query string

	// KindSubstring
	terms []string

	// KindSingleTerm
	scorer     algo.Scorer
	enableIcon bool
	splitter   types.LineSplitter
}

// New selects the strategy for query. A nil scorer selects fzf.
func New(query string, scorer algo.Scorer, enableIcon bool, splitter types.LineSplitter) Matcher {
	if strings.Contains(query, " ") {
		return Matcher{
			kind:  KindSubstring,
			query: query,
			terms: splitTerms(query),
		}
	}
	if scorer == nil {
		scorer = algo.NewFzfScorer()
	}
	return Matcher{
		kind:       KindSingleTerm,
		query:      query,
		scorer:     scorer,
		enableIcon: enableIcon,
		splitter:   splitter,
	}
}

// Kind reports the chosen strategy
func (m Matcher) Kind() Kind {
	return m.kind
}

// Query returns the query the matcher was built for
func (m Matcher) Query() string {
	return m.query
}

// Match scores one candidate line
func (m Matcher) Match(line string) (types.MatchResult, bool) {
	if m.kind == KindSubstring {
		return scoreTerms(m.terms, line)
	}
	return m.matchSingleTerm(line)
}

func (m Matcher) matchSingleTerm(line string) (types.MatchResult, bool) {
	if m.query == "" {
		return types.MatchResult{Score: 0, Positions: []int{}}, true
	}

	text := line
	shift := 0
	if m.enableIcon {
		// Lines too short to carry an icon are scored as empty text.
		if len(text) >= types.IconWidth {
			text = text[types.IconWidth:]
		} else {
			text = ""
		}
		shift = types.IconWidth
	}

	part, partOffset := splitLine(text, m.splitter)
	shift += partOffset

	res, ok := m.scorer.Score(part, m.query)
	if !ok {
		return types.MatchResult{}, false
	}

	if shift > 0 && len(res.Positions) > 0 {
		shifted := make([]int, len(res.Positions))
		for i, p := range res.Positions {
			shifted[i] = p + shift
		}
		res.Positions = shifted
	}
	return res, true
}
