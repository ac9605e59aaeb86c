// Package analysis orchestrates a full calibration run over one immutable
// dataset: both one-vs-rest sweeps, the multiclass evaluation at the chosen
// thresholds, and the Monte Carlo sensitivity analysis.
package analysis

import (
	"fmt"

	"github.com/reef-data/depthclass.report/internal/config"
	"github.com/reef-data/depthclass.report/internal/evaluate"
	"github.com/reef-data/depthclass.report/internal/monitoring"
	"github.com/reef-data/depthclass.report/internal/montecarlo"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// Output collects everything a calibration run produces.
type Output struct {
	Thresholds       reef.Thresholds
	DeepSweep        []sweep.Row
	VeryShallowSweep []sweep.Row
	Multiclass       *evaluate.Result
	Sensitivity      *montecarlo.Result
	Inconsistent     []reef.Feature // QA findings, retained features
}

// Run executes the full analysis with the given configuration. The dataset
// must already be validated by the loader; configuration problems surface
// before any computation.
func Run(ds *reef.Dataset, cfg *config.AnalysisConfig) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := &Output{
		Thresholds:   cfg.GetThresholds(),
		Inconsistent: ds.Inconsistent(),
	}
	if n := len(out.Inconsistent); n > 0 {
		monitoring.Logf("QA: %d feature(s) flagged inconsistent; retained", n)
	}

	deepGrid := cfg.GetDeepSweep().Values()
	monitoring.Logf("deep sweep: %d grid points", len(deepGrid))
	rows, err := sweep.Run(ds, reef.ClassDeep, deepGrid)
	if err != nil {
		return nil, fmt.Errorf("deep sweep: %w", err)
	}
	out.DeepSweep = rows

	vsGrid := cfg.GetVeryShallowSweep().Values()
	monitoring.Logf("very-shallow sweep: %d grid points", len(vsGrid))
	rows, err = sweep.Run(ds, reef.ClassVeryShallow, vsGrid)
	if err != nil {
		return nil, fmt.Errorf("very-shallow sweep: %w", err)
	}
	out.VeryShallowSweep = rows

	result, err := evaluate.Evaluate(ds, out.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("multiclass evaluation: %w", err)
	}
	out.Multiclass = result
	monitoring.Logf("multiclass accuracy at (%g, %g): %.4f",
		out.Thresholds.VeryShallow, out.Thresholds.Deep, result.Accuracy)

	sens, err := montecarlo.Run(ds, montecarlo.Params{
		Thresholds: out.Thresholds,
		Noise:      cfg.GetNoiseModel(),
		Replicates: cfg.GetReplicates(),
		Seed:       cfg.GetSeed(),
		Workers:    cfg.GetWorkers(),
	})
	if err != nil {
		return nil, fmt.Errorf("sensitivity analysis: %w", err)
	}
	out.Sensitivity = sens
	monitoring.Logf("self-consistency accuracy: %.4f (95%% CI [%.4f, %.4f])",
		sens.Summary.MeanAccuracy, sens.Summary.CILow, sens.Summary.CIHigh)

	return out, nil
}
