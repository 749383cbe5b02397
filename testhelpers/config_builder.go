// Package testhelpers provides shared utilities for testing fzmatch
package testhelpers

import (
	"github.com/standardbeagle/fzmatch/internal/config"
)

// TestConfigBuilder provides a fluent API for building test configs with
// predictable values: sequential scoring, no gitignore, no build output
// detection and a short watch debounce.
// Usage:
//
//	cfg := testhelpers.NewTestConfigBuilder(projectPath).
//		WithWidth(40).
//		WithAlgo("sahilm").
//		Build()
type TestConfigBuilder struct {
	cfg config.Config
}

// NewTestConfigBuilder creates a config builder rooted at projectRoot
func NewTestConfigBuilder(projectRoot string) *TestConfigBuilder {
	cfg := *config.Default()
	cfg.Files.Root = projectRoot
	cfg.Files.RespectGitignore = false
	cfg.Files.DetectBuildOutputs = false
	cfg.Performance.Workers = 2
	cfg.Performance.ParallelThreshold = 0
	cfg.Performance.WatchDebounceMs = 10
	return &TestConfigBuilder{cfg: cfg}
}

// WithWidth sets the display width
func (b *TestConfigBuilder) WithWidth(width int) *TestConfigBuilder {
	b.cfg.Match.Width = width
	return b
}

// WithIcons enables the icon block
func (b *TestConfigBuilder) WithIcons() *TestConfigBuilder {
	b.cfg.Match.EnableIcon = true
	return b
}

// WithAlgo selects the single-term algorithm
func (b *TestConfigBuilder) WithAlgo(algo string) *TestConfigBuilder {
	b.cfg.Match.Algo = algo
	return b
}

// WithLineSplitter selects the line splitter
func (b *TestConfigBuilder) WithLineSplitter(splitter string) *TestConfigBuilder {
	b.cfg.Match.LineSplitter = splitter
	return b
}

// WithLimit caps the number of rows returned
func (b *TestConfigBuilder) WithLimit(limit int) *TestConfigBuilder {
	b.cfg.Match.Limit = limit
	return b
}

// WithDedup drops repeated candidates
func (b *TestConfigBuilder) WithDedup() *TestConfigBuilder {
	b.cfg.Match.Dedup = true
	return b
}

// WithParallelThreshold turns on parallel scoring from n candidates
func (b *TestConfigBuilder) WithParallelThreshold(n int) *TestConfigBuilder {
	b.cfg.Performance.ParallelThreshold = n
	return b
}

// WithExclusions adds additional exclusion patterns
func (b *TestConfigBuilder) WithExclusions(patterns ...string) *TestConfigBuilder {
	b.cfg.Files.Exclude = append(b.cfg.Files.Exclude, patterns...)
	return b
}

// WithIncludePatterns sets the include patterns
func (b *TestConfigBuilder) WithIncludePatterns(patterns ...string) *TestConfigBuilder {
	b.cfg.Files.Include = patterns
	return b
}

// Build returns a copy of the config, so a builder can produce several
func (b *TestConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	cfg.Files.Include = append([]string{}, b.cfg.Files.Include...)
	cfg.Files.Exclude = append([]string{}, b.cfg.Files.Exclude...)
	return &cfg
}
