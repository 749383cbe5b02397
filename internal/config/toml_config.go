package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors the KDL layout. Pointer fields tell "unset" apart from
// zero values so a file only overrides what it names.
//
//	[match]
//	width = 120
//	algo = "sahilm"
//
//	[files]
//	exclude = ["**/testdata/**"]
type tomlConfig struct {
	Version *int `toml:"version"`
	Match   struct {
		Width        *int    `toml:"width"`
		EnableIcon   *bool   `toml:"enable_icon"`
		LineSplitter *string `toml:"line_splitter"`
		Algo         *string `toml:"algo"`
		Dedup        *bool   `toml:"dedup"`
		Limit        *int    `toml:"limit"`
	} `toml:"match"`
	Performance struct {
		Workers           *int `toml:"workers"`
		ParallelThreshold *int `toml:"parallel_threshold"`
		WatchDebounceMs   *int `toml:"watch_debounce_ms"`
	} `toml:"performance"`
	Files struct {
		Root               *string  `toml:"root"`
		Include            []string `toml:"include"`
		Exclude            []string `toml:"exclude"`
		RespectGitignore   *bool    `toml:"respect_gitignore"`
		DetectBuildOutputs *bool    `toml:"detect_build_outputs"`
	} `toml:"files"`
}

func applyTOML(cfg *Config, content []byte) error {
	var tc tomlConfig
	if err := toml.Unmarshal(content, &tc); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	setInt(&cfg.Version, tc.Version)

	setInt(&cfg.Match.Width, tc.Match.Width)
	setBool(&cfg.Match.EnableIcon, tc.Match.EnableIcon)
	setString(&cfg.Match.LineSplitter, tc.Match.LineSplitter)
	setString(&cfg.Match.Algo, tc.Match.Algo)
	setBool(&cfg.Match.Dedup, tc.Match.Dedup)
	setInt(&cfg.Match.Limit, tc.Match.Limit)

	setInt(&cfg.Performance.Workers, tc.Performance.Workers)
	setInt(&cfg.Performance.ParallelThreshold, tc.Performance.ParallelThreshold)
	setInt(&cfg.Performance.WatchDebounceMs, tc.Performance.WatchDebounceMs)

	setString(&cfg.Files.Root, tc.Files.Root)
	setBool(&cfg.Files.RespectGitignore, tc.Files.RespectGitignore)
	setBool(&cfg.Files.DetectBuildOutputs, tc.Files.DetectBuildOutputs)
	if tc.Files.Include != nil {
		cfg.Files.Include = tc.Files.Include
	}
	if len(tc.Files.Exclude) > 0 {
		cfg.Files.Exclude = DeduplicatePatterns(append(cfg.Files.Exclude, tc.Files.Exclude...))
	}

	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
