// Package config holds the analysis configuration surface. Fields are
// pointers so a partial JSON file only overrides what it names; the Get*
// accessors supply the calibrated defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reef-data/depthclass.report/internal/montecarlo"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// AnalysisConfig configures a full calibration run. Zero-value (all nil)
// means "all defaults".
type AnalysisConfig struct {
	// Final evaluation cut points, metres.
	VeryShallowCut *float64 `json:"very_shallow_cut,omitempty"`
	DeepCut        *float64 `json:"deep_cut,omitempty"`

	// One-vs-rest sweep grids.
	DeepSweep        *sweep.GridSpec `json:"deep_sweep,omitempty"`
	VeryShallowSweep *sweep.GridSpec `json:"very_shallow_sweep,omitempty"`

	// Depth-uncertainty noise model constants.
	NoiseA *float64 `json:"noise_a,omitempty"`
	NoiseB *float64 `json:"noise_b,omitempty"`

	// Monte Carlo settings.
	Replicates *int    `json:"replicates,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
	Workers    *int    `json:"workers,omitempty"`

	// Input contract: expected dataset row count; 0 disables the check.
	ExpectedRows *int `json:"expected_rows,omitempty"`
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file. Fields
// omitted from the file retain their defaults, so partial configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &AnalysisConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable. The threshold
// ordering invariant is enforced here as well as at each evaluation call,
// so a bad pair is reported before any work starts.
func (c *AnalysisConfig) Validate() error {
	if !(c.GetVeryShallowCut() < c.GetDeepCut()) {
		return fmt.Errorf("very_shallow_cut %g must be below deep_cut %g",
			c.GetVeryShallowCut(), c.GetDeepCut())
	}
	for name, g := range map[string]sweep.GridSpec{
		"deep_sweep":         c.GetDeepSweep(),
		"very_shallow_sweep": c.GetVeryShallowSweep(),
	} {
		if g.Step <= 0 {
			return fmt.Errorf("%s step must be positive, got %g", name, g.Step)
		}
		if g.Min > g.Max {
			return fmt.Errorf("%s min %g exceeds max %g", name, g.Min, g.Max)
		}
	}
	if c.GetNoiseA() < 0 || c.GetNoiseB() < 0 {
		return fmt.Errorf("noise constants must be non-negative, got a=%g b=%g",
			c.GetNoiseA(), c.GetNoiseB())
	}
	if c.GetReplicates() <= 0 {
		return fmt.Errorf("replicates must be positive, got %d", c.GetReplicates())
	}
	if c.ExpectedRows != nil && *c.ExpectedRows < 0 {
		return fmt.Errorf("expected_rows must be non-negative, got %d", *c.ExpectedRows)
	}
	return nil
}

// GetVeryShallowCut returns the very-shallow cut point or the default.
func (c *AnalysisConfig) GetVeryShallowCut() float64 {
	if c.VeryShallowCut == nil {
		return 2.5
	}
	return *c.VeryShallowCut
}

// GetDeepCut returns the deep cut point or the default.
func (c *AnalysisConfig) GetDeepCut() float64 {
	if c.DeepCut == nil {
		return 25
	}
	return *c.DeepCut
}

// GetThresholds returns the configured final-evaluation threshold pair.
func (c *AnalysisConfig) GetThresholds() reef.Thresholds {
	return reef.Thresholds{VeryShallow: c.GetVeryShallowCut(), Deep: c.GetDeepCut()}
}

// GetDeepSweep returns the deep sweep grid or the default 10..40 step 1.
func (c *AnalysisConfig) GetDeepSweep() sweep.GridSpec {
	if c.DeepSweep == nil {
		return sweep.GridSpec{Min: 10, Max: 40, Step: 1}
	}
	return *c.DeepSweep
}

// GetVeryShallowSweep returns the very-shallow sweep grid or the default
// 0..5.0 step 0.2.
func (c *AnalysisConfig) GetVeryShallowSweep() sweep.GridSpec {
	if c.VeryShallowSweep == nil {
		return sweep.GridSpec{Min: 0, Max: 5, Step: 0.2}
	}
	return *c.VeryShallowSweep
}

// GetNoiseA returns the fixed noise term or the default 0.25 m.
func (c *AnalysisConfig) GetNoiseA() float64 {
	if c.NoiseA == nil {
		return 0.25
	}
	return *c.NoiseA
}

// GetNoiseB returns the depth-relative noise term or the default 0.02.
func (c *AnalysisConfig) GetNoiseB() float64 {
	if c.NoiseB == nil {
		return 0.02
	}
	return *c.NoiseB
}

// GetNoiseModel returns the configured noise model.
func (c *AnalysisConfig) GetNoiseModel() montecarlo.NoiseModel {
	return montecarlo.NoiseModel{A: c.GetNoiseA(), B: c.GetNoiseB()}
}

// GetReplicates returns the Monte Carlo repetition count or the default 1000.
func (c *AnalysisConfig) GetReplicates() int {
	if c.Replicates == nil {
		return 1000
	}
	return *c.Replicates
}

// GetSeed returns the RNG seed or the default 42.
func (c *AnalysisConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 42
	}
	return *c.Seed
}

// GetWorkers returns the Monte Carlo worker count; 0 means one per CPU.
func (c *AnalysisConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetExpectedRows returns the expected dataset row count or the reference
// default 880.
func (c *AnalysisConfig) GetExpectedRows() int {
	if c.ExpectedRows == nil {
		return 880
	}
	return *c.ExpectedRows
}
