package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/fzmatch/internal/config"
	"github.com/standardbeagle/fzmatch/internal/types"
)

func TestTestConfigBuilder(t *testing.T) {
	cfg := NewTestConfigBuilder("/tmp/project").
		WithWidth(40).
		WithIcons().
		WithAlgo("sahilm").
		WithLineSplitter("FileNameOnly").
		WithLimit(5).
		WithDedup().
		WithExclusions("**/gen/**").
		WithIncludePatterns("**/*.go").
		Build()

	require.NoError(t, config.ValidateConfig(cfg))

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, 40, opts.Width)
	assert.True(t, opts.EnableIcon)
	assert.Equal(t, types.AlgoSahilm, opts.Algo)
	assert.Equal(t, types.SplitFileNameOnly, opts.Splitter)
	assert.Equal(t, 0, opts.ParallelThreshold)

	assert.Equal(t, "/tmp/project", cfg.Files.Root)
	assert.Equal(t, 5, cfg.Match.Limit)
	assert.True(t, cfg.Match.Dedup)
	assert.False(t, cfg.Files.RespectGitignore)
	assert.Contains(t, cfg.Files.Exclude, "**/gen/**")
	assert.Equal(t, []string{"**/*.go"}, cfg.Files.Include)
}

func TestTestConfigBuilder_BuildCopies(t *testing.T) {
	b := NewTestConfigBuilder(".")
	first := b.Build()
	first.Files.Exclude[0] = "changed"
	first.Match.Width = 1

	second := b.Build()
	assert.NotEqual(t, "changed", second.Files.Exclude[0])
	assert.Equal(t, config.DefaultWidth, second.Match.Width)
}
