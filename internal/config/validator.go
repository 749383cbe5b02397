package config

import (
	"errors"
	"fmt"
	"runtime"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults
// Returns an error if validation fails
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateMatchConfig(&cfg.Match); err != nil {
		return fzerrors.NewConfigError("match", "", err)
	}

	if err := v.validatePerformanceConfig(&cfg.Performance); err != nil {
		return fzerrors.NewConfigError("performance", "", err)
	}

	if err := v.validateFilesConfig(&cfg.Files); err != nil {
		return fzerrors.NewConfigError("files", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateMatchConfig(match *Match) error {
	if match.Width < 0 {
		return fmt.Errorf("Width cannot be negative, got %d", match.Width)
	}

	if match.Limit < 0 {
		return fmt.Errorf("Limit cannot be negative, got %d", match.Limit)
	}

	if _, err := types.ParseLineSplitter(match.LineSplitter); err != nil {
		return err
	}

	if _, err := types.ParseAlgo(match.Algo); err != nil {
		return err
	}

	return nil
}

func (v *Validator) validatePerformanceConfig(perf *Performance) error {
	// Workers: 0 means auto-detect (will be set by smart defaults)
	if perf.Workers < 0 {
		return fmt.Errorf("Workers cannot be negative, got %d", perf.Workers)
	}

	if perf.ParallelThreshold < 0 {
		return fmt.Errorf("ParallelThreshold cannot be negative, got %d", perf.ParallelThreshold)
	}

	if perf.WatchDebounceMs < 0 {
		return fmt.Errorf("WatchDebounceMs cannot be negative, got %d", perf.WatchDebounceMs)
	}

	return nil
}

func (v *Validator) validateFilesConfig(files *Files) error {
	if files.Root == "" {
		return errors.New("files root cannot be empty")
	}
	return nil
}

// setSmartDefaults applies smart defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Performance.Workers == 0 {
		cfg.Performance.Workers = runtime.NumCPU()
	}

	if cfg.Performance.WatchDebounceMs == 0 {
		cfg.Performance.WatchDebounceMs = DefaultWatchDebounceMs
	}

	if cfg.Match.LineSplitter == "" {
		cfg.Match.LineSplitter = types.SplitFull.String()
	}

	if cfg.Match.Algo == "" {
		cfg.Match.Algo = string(types.AlgoFzf)
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
