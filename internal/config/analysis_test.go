package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

func TestDefaults(t *testing.T) {
	cfg := &AnalysisConfig{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, reef.Thresholds{VeryShallow: 2.5, Deep: 25}, cfg.GetThresholds())
	assert.Equal(t, sweep.GridSpec{Min: 10, Max: 40, Step: 1}, cfg.GetDeepSweep())
	assert.Equal(t, sweep.GridSpec{Min: 0, Max: 5, Step: 0.2}, cfg.GetVeryShallowSweep())
	assert.Equal(t, 0.25, cfg.GetNoiseA())
	assert.Equal(t, 0.02, cfg.GetNoiseB())
	assert.Equal(t, 1000, cfg.GetReplicates())
	assert.Equal(t, uint64(42), cfg.GetSeed())
	assert.Equal(t, 0, cfg.GetWorkers())
	assert.Equal(t, 880, cfg.GetExpectedRows())
}

func TestValidate(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	tests := []struct {
		name    string
		mutate  func(*AnalysisConfig)
		wantErr string
	}{
		{"defaults", func(c *AnalysisConfig) {}, ""},
		{
			"inverted cuts",
			func(c *AnalysisConfig) { c.VeryShallowCut = f(30); c.DeepCut = f(25) },
			"must be below",
		},
		{
			"equal cuts",
			func(c *AnalysisConfig) { c.VeryShallowCut = f(25); c.DeepCut = f(25) },
			"must be below",
		},
		{
			"zero sweep step",
			func(c *AnalysisConfig) { c.DeepSweep = &sweep.GridSpec{Min: 10, Max: 40, Step: 0} },
			"step must be positive",
		},
		{
			"sweep min above max",
			func(c *AnalysisConfig) { c.VeryShallowSweep = &sweep.GridSpec{Min: 5, Max: 0, Step: 0.2} },
			"exceeds max",
		},
		{
			"negative noise",
			func(c *AnalysisConfig) { c.NoiseA = f(-0.1) },
			"must be non-negative",
		},
		{
			"zero replicates",
			func(c *AnalysisConfig) { c.Replicates = n(0) },
			"replicates must be positive",
		},
		{
			"negative expected rows",
			func(c *AnalysisConfig) { c.ExpectedRows = n(-1) },
			"expected_rows must be non-negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AnalysisConfig{}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadAnalysisConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	content := `{
		"deep_cut": 30,
		"replicates": 200,
		"very_shallow_sweep": {"min": 0, "max": 4, "step": 0.5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadAnalysisConfig(path)
	require.NoError(t, err)

	// Named fields override, everything else keeps its default.
	assert.Equal(t, 30.0, cfg.GetDeepCut())
	assert.Equal(t, 200, cfg.GetReplicates())
	assert.Equal(t, sweep.GridSpec{Min: 0, Max: 4, Step: 0.5}, cfg.GetVeryShallowSweep())
	assert.Equal(t, 2.5, cfg.GetVeryShallowCut())
	assert.Equal(t, uint64(42), cfg.GetSeed())
}

func TestLoadAnalysisConfigErrors(t *testing.T) {
	dir := t.TempDir()

	badExt := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(badExt, []byte("{}"), 0o644))
	_, err := LoadAnalysisConfig(badExt)
	assert.ErrorContains(t, err, ".json")

	badJSON := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0o644))
	_, err = LoadAnalysisConfig(badJSON)
	assert.ErrorContains(t, err, "parse")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"replicates": -5}`), 0o644))
	_, err = LoadAnalysisConfig(invalid)
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = LoadAnalysisConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
