package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/fzmatch/internal/algo"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// recordingScorer returns a fixed result and remembers the text it was asked
// to score, so tests can see what the matcher handed to the fuzzy algorithm.
type recordingScorer struct {
	seen   []string
	result types.MatchResult
	ok     bool
}

func (s *recordingScorer) Score(line, query string) (types.MatchResult, bool) {
	s.seen = append(s.seen, line)
	return s.result, s.ok
}

const (
	gearIcon   = "\uf013 "
	configIcon = "\ue615 "
)

func TestNew_SelectsStrategyByQueryShape(t *testing.T) {
	scorer := algo.NewFzfScorer()

	assert.Equal(t, KindSubstring, New("su ou", scorer, false, types.SplitFull).Kind())
	assert.Equal(t, KindSubstring, New(" ", scorer, false, types.SplitFull).Kind())
	assert.Equal(t, KindSingleTerm, New("con", scorer, false, types.SplitFull).Kind())
	assert.Equal(t, KindSingleTerm, New("", scorer, false, types.SplitFull).Kind())
	// only the space character selects the substring scorer
	assert.Equal(t, KindSingleTerm, New("a\tb", scorer, false, types.SplitFull).Kind())

	assert.Equal(t, "substring", KindSubstring.String())
	assert.Equal(t, "single-term", KindSingleTerm.String())
}

func TestMatch_SubstringUsesFullLineEvenWithIcon(t *testing.T) {
	scorer := &recordingScorer{ok: true}
	m := New("su ou", scorer, true, types.SplitFileNameOnly)

	res, ok := m.Match("substr_scorer_should_work")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 16, 17}, res.Positions)
	assert.Empty(t, scorer.seen, "fuzzy scorer must not be consulted for multi-term queries")
}

func TestMatch_SingleTermContainedTermAlwaysMatches(t *testing.T) {
	lines := []string{"substr_scorer_should_work", "unrelated line", "config.yml"}
	queries := []string{"sub", "line", "yml", "o"}

	for _, a := range types.Algos {
		scorer, err := algo.New(a)
		require.NoError(t, err)
		for _, line := range lines {
			for _, q := range queries {
				m := New(q, scorer, false, types.SplitFull)
				res, ok := m.Match(line)
				if !containsFold(line, q) {
					continue
				}
				require.True(t, ok, "%s: %q should match %q", a, q, line)
				assert.NotEmpty(t, res.Positions)
			}
		}
	}
}

func TestMatch_IconOffsetShiftsPositions(t *testing.T) {
	scorer := algo.NewFzfScorer()
	lines := []string{gearIcon + ".dependabot/config.yml", configIcon + ".editorconfig"}

	withIcon := New("con", scorer, true, types.SplitFull)
	withoutIcon := New("con", scorer, false, types.SplitFull)

	for _, line := range lines {
		require.Len(t, line[:types.IconWidth], 4)

		got, ok := withIcon.Match(line)
		require.True(t, ok, "line %q", line)

		stripped, ok := withoutIcon.Match(line[types.IconWidth:])
		require.True(t, ok)

		require.Len(t, got.Positions, len(stripped.Positions))
		for i := range got.Positions {
			assert.Equal(t, stripped.Positions[i]+types.IconWidth, got.Positions[i])
			assert.GreaterOrEqual(t, got.Positions[i], types.IconWidth)
		}
		assert.Equal(t, stripped.Score, got.Score)
	}
}

func TestMatch_IconStrippedBeforeScoring(t *testing.T) {
	scorer := &recordingScorer{ok: true, result: types.MatchResult{Score: 1, Positions: []int{0, 2}}}
	m := New("x", scorer, true, types.SplitFull)

	res, ok := m.Match(gearIcon + "abc")
	require.True(t, ok)
	assert.Equal(t, []string{"abc"}, scorer.seen)
	assert.Equal(t, []int{4, 6}, res.Positions)

	// shorter than an icon block
	_, _ = m.Match("ab")
	assert.Equal(t, "", scorer.seen[1])
}

func TestMatch_DoesNotMutateScorerPositions(t *testing.T) {
	shared := []int{1, 2}
	scorer := &recordingScorer{ok: true, result: types.MatchResult{Positions: shared}}
	m := New("x", scorer, true, types.SplitFull)

	_, ok := m.Match(gearIcon + "abc")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, shared)
}

func TestMatch_LineSplitterOffsets(t *testing.T) {
	tests := []struct {
		name     string
		splitter types.LineSplitter
		line     string
		query    string
		seen     string
		shift    int
	}{
		{"full", types.SplitFull, "src/main.go", "main", "src/main.go", 0},
		{"file name", types.SplitFileNameOnly, "src/main.go", "main", "main.go", 4},
		{"tag name", types.SplitTagNameOnly, "FuzzyMatch:42 [function] internal/pipeline.go", "fm", "FuzzyMatch", 0},
		{"grep content", types.SplitGrepExcludeFilePath, "cmd/main.go:12:5:func main() {", "func", "func main() {", 17},
		{"grep fallback", types.SplitGrepExcludeFilePath, "not a grep line", "grep", "not a grep line", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := &recordingScorer{ok: true, result: types.MatchResult{Positions: []int{0}}}
			res, ok := New(tt.query, scorer, false, tt.splitter).Match(tt.line)
			require.True(t, ok)
			assert.Equal(t, []string{tt.seen}, scorer.seen)
			assert.Equal(t, []int{tt.shift}, res.Positions)
		})
	}
}

func TestMatch_SplitterWithIcon(t *testing.T) {
	scorer := algo.NewFzfScorer()
	line := gearIcon + "internal/matcher/matcher.go"
	res, ok := New("mat", scorer, true, types.SplitFileNameOnly).Match(line)
	require.True(t, ok)

	fileStart := types.IconWidth + len("internal/matcher/")
	for _, p := range res.Positions {
		assert.GreaterOrEqual(t, p, fileStart)
	}
	assert.Equal(t, "mat", line[res.Positions[0]:res.Positions[0]+3])
}

func TestMatch_EmptyQuery(t *testing.T) {
	m := New("", &recordingScorer{}, true, types.SplitFull)
	res, ok := m.Match("anything")
	require.True(t, ok)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Positions)
}

func TestMatch_NilScorerUsesFzf(t *testing.T) {
	res, ok := New("abc", nil, false, types.SplitFull).Match("xabc")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, res.Positions)
}

func TestGrepContentStart(t *testing.T) {
	start, ok := grepContentStart("C:/repo/a.go:3:1:x := 1")
	require.True(t, ok)
	assert.Equal(t, "x := 1", "C:/repo/a.go:3:1:x := 1"[start:])

	_, ok = grepContentStart("a.go:3:x")
	assert.False(t, ok)

	start, ok = grepContentStart("a.go:10:20:")
	require.True(t, ok)
	assert.Equal(t, len("a.go:10:20:"), start)
}

func containsFold(line, q string) bool {
	res, ok := SubstringScore(q+" ", line)
	return ok && len(res.Positions) > 0
}
