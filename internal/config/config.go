package config

import (
	"os"
	"path/filepath"
	"strings"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/types"
)

const (
	KDLFileName  = ".fzmatch.kdl"
	TOMLFileName = ".fzmatch.toml"
)

// Defaults shared by the CLI flags and the config files
const (
	DefaultWidth             = 80
	DefaultParallelThreshold = 4096
	DefaultWatchDebounceMs   = 300
)

type Config struct {
	Version     int
	Match       Match
	Performance Performance
	Files       Files
}

type Match struct {
	Width        int    // display columns; 0 disables truncation
	EnableIcon   bool   // candidates carry a 4-byte icon block
	LineSplitter string // Full, TagNameOnly, FileNameOnly, GrepExcludeFilePath
	Algo         string // fzf, sahilm, jaro-winkler
	Dedup        bool   // drop repeated candidate lines
	Limit        int    // maximum rows printed; 0 means all
}

type Performance struct {
	Workers           int // 0 = auto-detect (NumCPU)
	ParallelThreshold int // candidates before scoring goes parallel; 0 disables
	WatchDebounceMs   int // quiet period before a watched input is re-read
}

type Files struct {
	Root               string
	Include            []string
	Exclude            []string
	RespectGitignore   bool // add the root .gitignore to Exclude
	DetectBuildOutputs bool // add build output directories found in project manifests
}

// Default returns the configuration used when no file sets a value
func Default() *Config {
	return &Config{
		Version: 1,
		Match: Match{
			Width:        DefaultWidth,
			LineSplitter: types.SplitFull.String(),
			Algo:         string(types.AlgoFzf),
		},
		Performance: Performance{
			ParallelThreshold: DefaultParallelThreshold,
			WatchDebounceMs:   DefaultWatchDebounceMs,
		},
		Files: Files{
			Root:               ".",
			Include:            []string{},
			Exclude:            defaultExclusions(),
			RespectGitignore:   true,
			DetectBuildOutputs: true,
		},
	}
}

func defaultExclusions() []string {
	return []string{
		// VCS metadata
		"**/.git/**",
		"**/.hg/**",
		"**/.svn/**",

		// Dependencies
		"**/node_modules/**",
		"**/vendor/**",
		"**/bower_components/**",

		// Build output
		"**/dist/**",
		"**/target/**",
		"**/__pycache__/**",
		"**/*.pyc",
		"**/*.min.js",
		"**/*.min.css",

		// Editor and OS files
		"**/*.swp",
		"**/*~",
		"**/.DS_Store",
		"**/Thumbs.db",
	}
}

// LoadWithRoot layers configuration in order: defaults, the global file in
// the home directory, then the project file. path names the project file;
// when it is empty or the default name, rootDir (or the working directory)
// is searched for .fzmatch.kdl and then .fzmatch.toml. An explicit path that
// does not exist is an error.
//
// Later layers override the values they set. Exclusions accumulate so a
// project file cannot silently drop global ones.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	cfg := Default()

	if homeDir, err := os.UserHomeDir(); err == nil && !sameDir(homeDir, searchDir) {
		if _, err := applyDir(cfg, homeDir); err != nil {
			return nil, err
		}
	}

	if path == "" || path == KDLFileName {
		if _, err := applyDir(cfg, searchDir); err != nil {
			return nil, err
		}
	} else {
		if !filepath.IsAbs(path) && rootDir != "" {
			path = filepath.Join(rootDir, path)
		}
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// applyDir applies the first config file found in dir
func applyDir(cfg *Config, dir string) (bool, error) {
	for _, name := range []string{KDLFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return true, applyFile(cfg, path)
	}
	return false, nil
}

// applyFile applies a KDL or TOML file, chosen by extension
func applyFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fzerrors.NewFileError("read", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = applyTOML(cfg, content)
	} else {
		err = applyKDL(cfg, string(content))
	}
	if err != nil {
		return fzerrors.NewConfigError("file", path, err)
	}
	return nil
}

// Options converts the matching settings into pipeline options
func (c *Config) Options() (types.Options, error) {
	splitter, err := types.ParseLineSplitter(c.Match.LineSplitter)
	if err != nil {
		return types.Options{}, err
	}
	algo, err := types.ParseAlgo(c.Match.Algo)
	if err != nil {
		return types.Options{}, err
	}

	return types.Options{
		Width:             c.Match.Width,
		EnableIcon:        c.Match.EnableIcon,
		Splitter:          splitter,
		Algo:              algo,
		Workers:           c.Performance.Workers,
		ParallelThreshold: c.Performance.ParallelThreshold,
	}, nil
}

// FileExclusions returns Files.Exclude plus the build output directories
// detected under root when DetectBuildOutputs is set.
func (c *Config) FileExclusions(root string) []string {
	if !c.Files.DetectBuildOutputs {
		return c.Files.Exclude
	}
	detected := NewBuildArtifactDetector(root).DetectOutputDirectories()
	return DeduplicatePatterns(append(append([]string(nil), c.Files.Exclude...), detected...))
}

// DeduplicatePatterns removes duplicate patterns, keeping first occurrences
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
