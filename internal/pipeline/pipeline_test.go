package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/matcher"
	"github.com/standardbeagle/fzmatch/internal/types"
)

const (
	gearIcon   = "\uf013 "
	configIcon = "\ue615 "
)

func TestFuzzyMatch_MultiTermEndToEnd(t *testing.T) {
	opts := types.DefaultOptions()
	opts.Width = 200

	p, err := FuzzyMatch(context.Background(), "su ou", []string{"substr_scorer_should_work", "unrelated line"}, opts)
	require.NoError(t, err)

	require.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"substr_scorer_should_work"}, p.Lines)
	assert.Equal(t, [][]int{{0, 1, 16, 17}}, p.Positions)
	assert.InDelta(t, 2.0/1.0+1.0/18.0-18.0, p.Scores[0], 1e-12)
	assert.Empty(t, p.Truncation)

	for i := 1; i < len(p.Positions[0]); i++ {
		assert.Greater(t, p.Positions[0][i], p.Positions[0][i-1])
	}
}

func TestFuzzyMatch_IconScenario(t *testing.T) {
	opts := types.DefaultOptions()
	opts.Width = 62
	opts.EnableIcon = true

	candidates := []string{gearIcon + ".dependabot/config.yml", configIcon + ".editorconfig"}
	p, err := FuzzyMatch(context.Background(), "con", candidates, opts)
	require.NoError(t, err)

	require.Equal(t, 2, p.Len())
	assert.ElementsMatch(t, candidates, p.Lines)
	for i, positions := range p.Positions {
		require.NotEmpty(t, positions)
		for _, pos := range positions {
			assert.GreaterOrEqual(t, pos, types.IconWidth, "row %d", i)
			assert.Less(t, pos, len(p.Lines[i]))
		}
	}
}

func TestFuzzyMatch_TruncationKeepsOriginal(t *testing.T) {
	original := "a/very/long/path/to/some/deeply/nested/file_name.go"
	opts := types.DefaultOptions()
	opts.Width = 20

	p, err := FuzzyMatch(context.Background(), "file", []string{original}, opts)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	line := p.Lines[0]
	assert.NotEqual(t, original, line)
	assert.True(t, strings.HasPrefix(line, ".."), line)
	assert.True(t, strings.HasSuffix(line, "file_name.go"), line)
	assert.Equal(t, original, p.Truncation[0])
	assert.Equal(t, original, p.Original(0))

	var matched strings.Builder
	for _, pos := range p.Positions[0] {
		require.Less(t, pos, len(line))
		matched.WriteByte(line[pos])
	}
	assert.Equal(t, "file", matched.String())
}

func TestFuzzyMatch_InvalidOptions(t *testing.T) {
	opts := types.DefaultOptions()
	opts.Width = -1
	_, err := FuzzyMatch(context.Background(), "x", []string{"x"}, opts)
	var inputErr *fzerrors.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "width", inputErr.Field)

	opts = types.DefaultOptions()
	opts.Algo = "bogus"
	_, err = FuzzyMatch(context.Background(), "x", []string{"x"}, opts)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "algo", inputErr.Field)
}

func TestFuzzyMatch_MixedCaseAlgoName(t *testing.T) {
	for _, name := range []types.Algo{"FZF", "Sahilm", " jaro-winkler"} {
		t.Run(string(name), func(t *testing.T) {
			opts := types.DefaultOptions()
			opts.Algo = name

			p, err := FuzzyMatch(context.Background(), "con", []string{"config.yml", ".editorconfig"}, opts)
			require.NoError(t, err)
			assert.Equal(t, 2, p.Len())
		})
	}
}

func TestFuzzyMatch_CancelledParallelRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := types.DefaultOptions()
	opts.ParallelThreshold = 1

	_, err := FuzzyMatch(ctx, "x", []string{"x", "y"}, opts)
	require.ErrorIs(t, err, context.Canceled)
	var matchErr *fzerrors.MatchError
	assert.ErrorAs(t, err, &matchErr)
}

func TestFuzzyMatch_EmptyCandidates(t *testing.T) {
	p, err := FuzzyMatch(context.Background(), "anything", nil, types.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Truncation)
}

func TestNewMatcher_Kind(t *testing.T) {
	m, err := NewMatcher("su ou", types.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, matcher.KindSubstring, m.Kind())

	m, err = NewMatcher("con", types.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, matcher.KindSingleTerm, m.Kind())
}
