package algo

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// matchedText joins the bytes at positions, which is what a highlighter shows.
func matchedText(line string, positions []int) string {
	var sb strings.Builder
	for _, p := range positions {
		sb.WriteByte(line[p])
	}
	return sb.String()
}

func allScorers() map[string]Scorer {
	return map[string]Scorer{
		"fzf":          NewFzfScorer(),
		"sahilm":       SahilmScorer{},
		"jaro-winkler": NewJaroWinklerScorer(0),
	}
}

func TestScorers_MatchContainedTerm(t *testing.T) {
	for name, scorer := range allScorers() {
		t.Run(name, func(t *testing.T) {
			line := ".dependabot/config.yml"
			res, ok := scorer.Score(line, "con")
			require.True(t, ok, "term contained in line should match")
			require.Len(t, res.Positions, 3)
			assert.Equal(t, "con", matchedText(line, res.Positions))
			assert.IsIncreasing(t, res.Positions)
		})
	}
}

func TestScorers_CaseInsensitive(t *testing.T) {
	for name, scorer := range allScorers() {
		t.Run(name, func(t *testing.T) {
			line := "README.md"
			res, ok := scorer.Score(line, "read")
			require.True(t, ok)
			assert.Equal(t, "READ", matchedText(line, res.Positions))

			res, ok = scorer.Score("readme.md", "READ")
			require.True(t, ok)
			assert.Equal(t, []int{0, 1, 2, 3}, res.Positions)
		})
	}
}

func TestScorers_NoMatch(t *testing.T) {
	for name, scorer := range allScorers() {
		t.Run(name, func(t *testing.T) {
			_, ok := scorer.Score("substr_scorer_should_work", "xyz")
			assert.False(t, ok)
		})
	}
}

func TestScorers_EmptyQueryMatchesEverything(t *testing.T) {
	for name, scorer := range allScorers() {
		t.Run(name, func(t *testing.T) {
			res, ok := scorer.Score("anything", "")
			require.True(t, ok)
			assert.Equal(t, 0.0, res.Score)
			assert.Empty(t, res.Positions)
		})
	}
}

func TestFzfScorer_BytePositionsForMultibyteText(t *testing.T) {
	// Ü and ï are two bytes each, so rune and byte indices differ.
	line := "Ünïcode café"
	res, ok := NewFzfScorer().Score(line, "caf")
	require.True(t, ok)
	assert.Equal(t, []int{10, 11, 12}, res.Positions)
	assert.Equal(t, "caf", matchedText(line, res.Positions))
}

func TestFzfScorer_PrefersTighterMatch(t *testing.T) {
	scorer := NewFzfScorer()
	tight, ok := scorer.Score("config.yml", "conf")
	require.True(t, ok)
	loose, ok := scorer.Score("c_o_n_f.yml", "conf")
	require.True(t, ok)
	assert.Greater(t, tight.Score, loose.Score)
}

func TestSahilmScorer_Positions(t *testing.T) {
	res, ok := SahilmScorer{}.Score("config.yml", "cfg")
	require.True(t, ok)
	assert.Equal(t, "cfg", matchedText("config.yml", res.Positions))
}

func TestJaroWinklerScorer(t *testing.T) {
	scorer := NewJaroWinklerScorer(0)

	res, ok := scorer.Score("config", "cfg")
	require.True(t, ok)
	assert.Equal(t, []int{0, 3, 5}, res.Positions)
	assert.Greater(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)

	exact, ok := scorer.Score("config", "config")
	require.True(t, ok)
	assert.Equal(t, 100.0, exact.Score)
	assert.Greater(t, exact.Score, res.Score)
}

func TestJaroWinklerScorer_Threshold(t *testing.T) {
	scorer := NewJaroWinklerScorer(0.99)
	_, ok := scorer.Score("a_very_long_configuration_file_name.yml", "cfg")
	assert.False(t, ok, "similarity below threshold should be rejected")

	assert.Equal(t, 0.99, scorer.GetThreshold())
	assert.Error(t, scorer.SetThreshold(1.5))
	require.NoError(t, scorer.SetThreshold(0.5))
	assert.Equal(t, 0.5, scorer.GetThreshold())

	assert.Equal(t, 0.0, NewJaroWinklerScorer(-1).GetThreshold())
}

func TestLookup(t *testing.T) {
	scorer, err := Lookup("")
	require.NoError(t, err)
	assert.IsType(t, &FzfScorer{}, scorer)

	scorer, err = Lookup("sahilm")
	require.NoError(t, err)
	assert.IsType(t, SahilmScorer{}, scorer)

	scorer, err = Lookup("JARO-WINKLER")
	require.NoError(t, err)
	assert.IsType(t, &JaroWinklerScorer{}, scorer)

	_, err = Lookup("skim")
	var inputErr *fzerrors.InputError
	require.True(t, errors.As(err, &inputErr))

	_, err = New(types.Algo("bogus"))
	assert.Error(t, err)
}

func TestNew_NormalizesNames(t *testing.T) {
	tests := []struct {
		name     types.Algo
		expected Scorer
	}{
		{"FZF", &FzfScorer{}},
		{" fzf ", &FzfScorer{}},
		{"", &FzfScorer{}},
		{"Sahilm", SahilmScorer{}},
		{"Jaro-Winkler", &JaroWinklerScorer{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			scorer, err := New(tt.name)
			require.NoError(t, err)
			require.NotNil(t, scorer)
			assert.IsType(t, tt.expected, scorer)

			_, ok := scorer.Score("config.yml", "con")
			assert.True(t, ok)
		})
	}
}

func TestRunesToBytes(t *testing.T) {
	line := "añb"
	// a=0, ñ=1..2, b=3
	assert.Equal(t, []int{0, 1, 3}, runesToBytes(line, []int{2, 0, 1, 1}))
	assert.Nil(t, runesToBytes(line, nil))
	assert.Equal(t, []int{3}, runesToBytes(line, []int{2, 7, -1}))
}
