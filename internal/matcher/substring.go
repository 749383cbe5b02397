package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// SubstringScore scores a whitespace-separated query against line.
//
// Terms are searched case-insensitively, strictly left to right: each term
// must start at or after the end of the previous term's match, and an earlier
// term is never moved to make a later one fit. A query with no terms matches
// with score 0 and no positions.
//
// score = 2/(first+1) + 1/(last+1) - span, where first and last are the
// outermost matched byte offsets and span = last-first+1. Scores are only
// comparable between lines evaluated for the same query.
func SubstringScore(query, line string) (types.MatchResult, bool) {
	return scoreTerms(splitTerms(query), line)
}

// splitTerms splits a query on whitespace and case-folds each term
func splitTerms(query string) []string {
	fields := strings.Fields(query)
	terms := make([]string, len(fields))
	for i, field := range fields {
		terms[i] = foldCase(field).text
	}
	return terms
}

func scoreTerms(terms []string, line string) (types.MatchResult, bool) {
	if len(terms) == 0 {
		return types.MatchResult{Score: 0, Positions: []int{}}, true
	}

	folded := foldCase(line)
	positions := make([]int, 0, len(line))
	cursor := 0
	for _, term := range terms {
		idx := strings.Index(folded.text[cursor:], term)
		if idx < 0 {
			return types.MatchResult{}, false
		}
		start := cursor + idx
		end := start + len(term)
		for p := folded.origin(start); p < folded.origin(end); p++ {
			positions = append(positions, p)
		}
		cursor = end
	}

	if len(positions) == 0 {
		// a term that covers only part of a folded rune maps to no original bytes
		return types.MatchResult{Score: 0, Positions: positions}, true
	}

	first := positions[0]
	last := positions[len(positions)-1]
	span := float64(last - first + 1)
	score := 2/float64(first+1) + 1/float64(last+1) - span

	return types.MatchResult{Score: score, Positions: positions}, true
}

// foldedText is a lower-cased copy of a string that remembers, for each of
// its bytes, which byte of the original rune produced it. Positions found in
// the folded text are translated back so they always index the original,
// even when lower-casing changes a rune's encoded length (e.g. 'Ⱥ' -> 'ⱥ').
type foldedText struct {
	text    string
	offsets []int // nil when text and original share offsets
	srcLen  int
}

func foldCase(s string) foldedText {
	if isASCII(s) {
		return foldedText{text: strings.ToLower(s), srcLen: len(s)}
	}

	var sb strings.Builder
	sb.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// keep invalid bytes as they are
			sb.WriteByte(s[i])
			offsets = append(offsets, i)
			i++
			continue
		}
		before := sb.Len()
		sb.WriteRune(unicode.ToLower(r))
		for k := before; k < sb.Len(); k++ {
			offsets = append(offsets, i)
		}
		i += size
	}
	offsets = append(offsets, len(s))

	return foldedText{text: sb.String(), offsets: offsets, srcLen: len(s)}
}

// origin maps a byte offset in the folded text to the original string.
// Offsets on a rune boundary map to that rune's first original byte; the
// end offset maps to the original length.
func (f foldedText) origin(i int) int {
	if f.offsets == nil {
		return i
	}
	if i >= len(f.offsets) {
		return f.srcLen
	}
	return f.offsets[i]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
