package analysis

import (
	"fmt"

	"github.com/reef-data/depthclass.report/internal/config"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/storage/sqlite"
)

// Persist stores the full run output in the results database and returns
// the generated run ID.
func Persist(db *sqlite.DB, out *Output, cfg *config.AnalysisConfig, source string, featureCount int) (string, error) {
	run := &sqlite.AnalysisRun{
		Source:            source,
		Thresholds:        out.Thresholds,
		Seed:              cfg.GetSeed(),
		Replicates:        cfg.GetReplicates(),
		FeatureCount:      featureCount,
		InconsistentCount: len(out.Inconsistent),
	}
	if err := sqlite.NewRunStore(db).Insert(run); err != nil {
		return "", fmt.Errorf("persist run: %w", err)
	}

	sweeps := sqlite.NewSweepStore(db)
	if err := sweeps.InsertRows(run.RunID, reef.ClassDeep, out.DeepSweep); err != nil {
		return "", fmt.Errorf("persist deep sweep: %w", err)
	}
	if err := sweeps.InsertRows(run.RunID, reef.ClassVeryShallow, out.VeryShallowSweep); err != nil {
		return "", fmt.Errorf("persist very-shallow sweep: %w", err)
	}

	if err := sqlite.NewEvaluationStore(db).Insert(run.RunID, out.Multiclass); err != nil {
		return "", fmt.Errorf("persist multiclass result: %w", err)
	}
	if err := sqlite.NewSensitivityStore(db).Insert(run.RunID, out.Sensitivity); err != nil {
		return "", fmt.Errorf("persist sensitivity result: %w", err)
	}
	return run.RunID, nil
}
