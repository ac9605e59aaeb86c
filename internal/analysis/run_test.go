package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reef-data/depthclass.report/internal/config"
	"github.com/reef-data/depthclass.report/internal/monitoring"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/storage/sqlite"
)

func testDataset() *reef.Dataset {
	return reef.NewDataset([]reef.Feature{
		{ID: "1", ReefID: "r1", DepthMeters: 1.0, VeryShallow: true, EcoLabel: reef.EcoShallow},
		{ID: "2", ReefID: "r1", DepthMeters: 10.0, VeryShallow: false, EcoLabel: reef.EcoShallow},
		{ID: "3", ReefID: "r2", DepthMeters: 30.0, VeryShallow: false, EcoLabel: reef.EcoMesophotic},
		{ID: "4", ReefID: "r2", DepthMeters: 20.0, VeryShallow: false, EcoLabel: reef.EcoMesophotic},
	})
}

func testConfig() *config.AnalysisConfig {
	reps := 20
	workers := 1
	cfg := &config.AnalysisConfig{Replicates: &reps, Workers: &workers}
	return cfg
}

func TestRun(t *testing.T) {
	defer monitoring.Silence()()

	out, err := Run(testDataset(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, reef.Thresholds{VeryShallow: 2.5, Deep: 25}, out.Thresholds)
	assert.Len(t, out.DeepSweep, 31)
	assert.Len(t, out.VeryShallowSweep, 26)
	assert.Empty(t, out.Inconsistent)

	require.NotNil(t, out.Multiclass)
	assert.Equal(t, 4, out.Multiclass.Total)
	assert.Equal(t, 0.75, out.Multiclass.Accuracy)

	require.NotNil(t, out.Sensitivity)
	assert.Len(t, out.Sensitivity.Replicates, 20)
	assert.Equal(t, 20, out.Sensitivity.Summary.Replicates)
}

func TestRunReproducible(t *testing.T) {
	defer monitoring.Silence()()

	first, err := Run(testDataset(), testConfig())
	require.NoError(t, err)
	second, err := Run(testDataset(), testConfig())
	require.NoError(t, err)

	// Grid points past the deepest feature carry NaN recall, so plain
	// equality cannot compare the sweep tables.
	if diff := cmp.Diff(first.DeepSweep, second.DeepSweep, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("deep sweeps differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Sensitivity.Replicates, second.Sensitivity.Replicates, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("sensitivity replicates differ (-first +second):\n%s", diff)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	cut := 50.0
	cfg := testConfig()
	cfg.VeryShallowCut = &cut
	_, err := Run(testDataset(), cfg)
	assert.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	defer monitoring.Silence()()

	out, err := Run(testDataset(), testConfig())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "results")
	require.NoError(t, WriteFiles(out, dir))

	for _, name := range []string{
		"deep_thres_sweep.csv",
		"vshallow_thres_sweep.csv",
		"deep_f1_vs_threshold.png",
		"vshallow_f1_vs_threshold.png",
		"sweep_report.html",
		"confusion_multiclass_2.5_25_thres.csv",
		"self_consistency_2.5_25_thres.csv",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "missing output %s", name)
		assert.NotZero(t, info.Size(), "%s is empty", name)
	}
}

func TestPersist(t *testing.T) {
	defer monitoring.Silence()()

	ds := testDataset()
	cfg := testConfig()
	out, err := Run(ds, cfg)
	require.NoError(t, err)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer db.Close()

	runID, err := Persist(db, out, cfg, "features.csv", ds.Len())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := sqlite.NewRunStore(db).Get(runID)
	require.NoError(t, err)
	assert.Equal(t, "features.csv", run.Source)
	assert.Equal(t, 4, run.FeatureCount)
	assert.Equal(t, out.Thresholds, run.Thresholds)

	deepRows, err := sqlite.NewSweepStore(db).ListByRun(runID, reef.ClassDeep)
	require.NoError(t, err)
	assert.Len(t, deepRows, 31)

	result, err := sqlite.NewEvaluationStore(db).Get(runID)
	require.NoError(t, err)
	assert.Equal(t, out.Multiclass.Matrix, result.Matrix)

	sum, err := sqlite.NewSensitivityStore(db).GetSummary(runID)
	require.NoError(t, err)
	assert.Equal(t, out.Sensitivity.Summary.MeanAccuracy, sum.MeanAccuracy)
}
