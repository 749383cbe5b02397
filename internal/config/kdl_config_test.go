package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyKDL_Empty(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyKDL(cfg, ""))
	assert.Equal(t, Default(), cfg)
}

func TestApplyKDL_AllSections(t *testing.T) {
	kdlContent := `
version 2
match {
    width 120
    enable_icon true
    line_splitter "FileNameOnly"
    algo "sahilm"
    dedup true
    limit 50
}
performance {
    workers 3
    parallel_threshold 2000
    watch_debounce_ms 150
}
files {
    root "src"
    respect_gitignore false
    detect_build_outputs false
    include "**/*.go" "**/*.md"
    exclude "**/testdata/**"
}
`
	cfg := Default()
	require.NoError(t, applyKDL(cfg, kdlContent))

	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, 120, cfg.Match.Width)
	assert.True(t, cfg.Match.EnableIcon)
	assert.Equal(t, "FileNameOnly", cfg.Match.LineSplitter)
	assert.Equal(t, "sahilm", cfg.Match.Algo)
	assert.True(t, cfg.Match.Dedup)
	assert.Equal(t, 50, cfg.Match.Limit)

	assert.Equal(t, 3, cfg.Performance.Workers)
	assert.Equal(t, 2000, cfg.Performance.ParallelThreshold)
	assert.Equal(t, 150, cfg.Performance.WatchDebounceMs)

	assert.Equal(t, "src", cfg.Files.Root)
	assert.False(t, cfg.Files.RespectGitignore)
	assert.False(t, cfg.Files.DetectBuildOutputs)
	assert.Equal(t, []string{"**/*.go", "**/*.md"}, cfg.Files.Include)
	assert.Contains(t, cfg.Files.Exclude, "**/testdata/**")
	assert.Contains(t, cfg.Files.Exclude, "**/node_modules/**", "defaults are kept")
}

func TestApplyKDL_PartialKeepsOtherValues(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyKDL(cfg, "match {\n    width 40\n}\n"))

	assert.Equal(t, 40, cfg.Match.Width)
	assert.Equal(t, "fzf", cfg.Match.Algo)
	assert.Equal(t, DefaultParallelThreshold, cfg.Performance.ParallelThreshold)
}

func TestApplyKDL_WrongTypesIgnored(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyKDL(cfg, "match {\n    width \"wide\"\n    enable_icon 1\n}\nunknown_node 3\n"))

	assert.Equal(t, DefaultWidth, cfg.Match.Width)
	assert.False(t, cfg.Match.EnableIcon)
}

func TestApplyKDL_DuplicateExclusions(t *testing.T) {
	cfg := Default()
	before := len(cfg.Files.Exclude)
	require.NoError(t, applyKDL(cfg, "files {\n    exclude \"**/node_modules/**\" \"**/gen/**\"\n}\n"))
	assert.Len(t, cfg.Files.Exclude, before+1)
}

func TestApplyKDL_InvalidSyntax(t *testing.T) {
	err := applyKDL(Default(), "match {")
	assert.Error(t, err)
}
