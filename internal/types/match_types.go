package types

import (
	"errors"
	"runtime"
	"strings"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
)

const (
	// IconWidth is the byte length of the icon block prepended to a
	// candidate: a 3-byte private-use glyph followed by one space.
	IconWidth = 4

	// IconDisplayWidth is the number of display columns an icon block occupies.
	IconDisplayWidth = 2
)

// MatchResult is the outcome of scoring one candidate.
// Positions are ascending byte offsets into the candidate, without duplicates.
// Score is only meaningful relative to other candidates for the same query
// and must never be NaN.
type MatchResult struct {
	Score     float64 `json:"score"`
	Positions []int   `json:"positions"`
}

// RankedRow is a candidate that produced a MatchResult.
type RankedRow struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Positions []int   `json:"positions"`
}

// DisplayRow is the text shown for a ranked row, possibly shortened, with
// positions re-expressed against that text.
type DisplayRow struct {
	Text      string `json:"text"`
	Positions []int  `json:"positions"`
	Truncated bool   `json:"truncated,omitempty"`
}

// TruncationTable maps a row index to the original text of a row that was
// shortened for display. Rows shown unmodified have no entry.
type TruncationTable map[int]string

// LineSplitter selects the part of a candidate the single-term matcher sees.
type LineSplitter int

const (
	// SplitFull matches against the whole line
	SplitFull LineSplitter = iota
	// SplitTagNameOnly matches the tag name of a `name:lnum [kind] path` line
	SplitTagNameOnly
	// SplitFileNameOnly matches the last path component
	SplitFileNameOnly
	// SplitGrepExcludeFilePath matches the content of a `path:lnum:col:content` line
	SplitGrepExcludeFilePath
)

var lineSplitterNames = map[LineSplitter]string{
	SplitFull:                "Full",
	SplitTagNameOnly:         "TagNameOnly",
	SplitFileNameOnly:        "FileNameOnly",
	SplitGrepExcludeFilePath: "GrepExcludeFilePath",
}

// String returns the canonical name of the splitter
func (s LineSplitter) String() string {
	if name, ok := lineSplitterNames[s]; ok {
		return name
	}
	return "Full"
}

// ParseLineSplitter accepts the canonical names case-insensitively, with or
// without underscores. An empty string selects SplitFull.
func ParseLineSplitter(name string) (LineSplitter, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	if normalized == "" {
		return SplitFull, nil
	}
	for splitter, canonical := range lineSplitterNames {
		if strings.ToLower(canonical) == normalized {
			return splitter, nil
		}
	}
	return SplitFull, fzerrors.NewInputError("line_splitter", name,
		errors.New("must be one of Full, TagNameOnly, FileNameOnly, GrepExcludeFilePath"))
}

// Algo names a single-term fuzzy scoring algorithm.
type Algo string

const (
	AlgoFzf         Algo = "fzf"
	AlgoSahilm      Algo = "sahilm"
	AlgoJaroWinkler Algo = "jaro-winkler"
)

// Algos lists every supported algorithm in display order.
var Algos = []Algo{AlgoFzf, AlgoSahilm, AlgoJaroWinkler}

// ParseAlgo resolves an algorithm name. An empty string selects AlgoFzf.
func ParseAlgo(name string) (Algo, error) {
	normalized := Algo(strings.ToLower(strings.TrimSpace(name)))
	if normalized == "" {
		return AlgoFzf, nil
	}
	for _, algo := range Algos {
		if algo == normalized {
			return algo, nil
		}
	}
	return AlgoFzf, fzerrors.NewInputError("algo", name,
		errors.New("must be one of fzf, sahilm, jaro-winkler"))
}

// Options carries everything a single query evaluation needs. It is passed
// explicitly so the pipeline never reads process-wide state.
type Options struct {
	Width      int
	EnableIcon bool
	Splitter   LineSplitter
	Algo       Algo

	// Workers bounds parallel scoring; 0 means runtime.NumCPU().
	Workers int
	// ParallelThreshold is the candidate count from which scoring runs in
	// parallel. 0 disables parallel scoring.
	ParallelThreshold int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Width:             80,
		EnableIcon:        false,
		Splitter:          SplitFull,
		Algo:              AlgoFzf,
		Workers:           runtime.NumCPU(),
		ParallelThreshold: 4096,
	}
}
