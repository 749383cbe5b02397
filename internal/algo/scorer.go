// Package algo provides the single-term fuzzy scorers the matcher delegates
// to when a query has no spaces. Each scorer is selected by algorithm name
// and returns byte offsets into the line it was given.
package algo

import (
	"sort"
	"unicode/utf8"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// Scorer scores one line against a single-term query.
// The bool result is false when the line does not match.
type Scorer interface {
	Score(line, query string) (types.MatchResult, bool)
}

// New returns the scorer for an algorithm. Names are normalized first, so
// "FZF" and " sahilm" select the same scorers as their canonical forms.
func New(algo types.Algo) (Scorer, error) {
	canonical, err := types.ParseAlgo(string(algo))
	if err != nil {
		return nil, err
	}
	switch canonical {
	case types.AlgoSahilm:
		return SahilmScorer{}, nil
	case types.AlgoJaroWinkler:
		return NewJaroWinklerScorer(0), nil
	default:
		return NewFzfScorer(), nil
	}
}

// Lookup resolves a scorer by its user-facing name
func Lookup(name string) (Scorer, error) {
	algo, err := types.ParseAlgo(name)
	if err != nil {
		return nil, err
	}
	return New(algo)
}

// runeOffsets returns the byte offset of every rune in s. Invalid bytes
// count as one rune each, matching how utf8 decoding walks the string.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s))
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return offsets
}

// runesToBytes converts rune indices into sorted, de-duplicated byte offsets.
// Indices outside the string are dropped.
func runesToBytes(s string, runeIdx []int) []int {
	if len(runeIdx) == 0 {
		return nil
	}
	offsets := runeOffsets(s)
	out := make([]int, 0, len(runeIdx))
	for _, idx := range runeIdx {
		if idx >= 0 && idx < len(offsets) {
			out = append(out, offsets[idx])
		}
	}
	return sortUnique(out)
}

func sortUnique(positions []int) []int {
	sort.Ints(positions)
	out := positions[:0]
	for i, p := range positions {
		if i > 0 && p == positions[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
