package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/reef-data/depthclass.report/internal/monitoring"
	"github.com/reef-data/depthclass.report/internal/report"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// Output file names follow the upstream calibration workflow so downstream
// consumers of the tables keep working.
const (
	deepSweepCSV  = "deep_thres_sweep.csv"
	vsSweepCSV    = "vshallow_thres_sweep.csv"
	deepF1PNG     = "deep_f1_vs_threshold.png"
	vsF1PNG       = "vshallow_f1_vs_threshold.png"
	sweepHTML     = "sweep_report.html"
	confusionStem = "confusion_multiclass_%s_%s_thres.csv"
	sensStem      = "self_consistency_%s_%s_thres.csv"
)

// WriteFiles renders all result tables and plots into dir, creating it if
// needed.
func WriteFiles(out *Output, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSVFile(filepath.Join(dir, deepSweepCSV), out.DeepSweep); err != nil {
		return err
	}
	if err := writeCSVFile(filepath.Join(dir, vsSweepCSV), out.VeryShallowSweep); err != nil {
		return err
	}

	if err := report.SaveF1Plot(filepath.Join(dir, deepF1PNG), out.DeepSweep,
		out.Thresholds.Deep,
		"What depth most aligns with the deep reef classification",
		"Depth assigned to the deep reef class (m)"); err != nil {
		return err
	}
	if err := report.SaveF1Plot(filepath.Join(dir, vsF1PNG), out.VeryShallowSweep,
		out.Thresholds.VeryShallow,
		"What depth most aligns with the very shallow reef classification",
		"Depth assigned to the very shallow reef class (m)"); err != nil {
		return err
	}

	if err := report.SaveSweepHTML(filepath.Join(dir, sweepHTML),
		out.DeepSweep, out.VeryShallowSweep, out.Thresholds); err != nil {
		return err
	}

	vs := trimFloat(out.Thresholds.VeryShallow)
	deep := trimFloat(out.Thresholds.Deep)

	confPath := filepath.Join(dir, fmt.Sprintf(confusionStem, vs, deep))
	f, err := os.Create(confPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", confPath, err)
	}
	if err := report.WriteConfusionCSV(f, out.Multiclass); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	sensPath := filepath.Join(dir, fmt.Sprintf(sensStem, vs, deep))
	f, err = os.Create(sensPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", sensPath, err)
	}
	if err := report.WriteSensitivityCSV(f, out.Sensitivity); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	monitoring.Logf("all outputs written to %s", dir)
	return nil
}

func writeCSVFile(path string, rows []sweep.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := sweep.WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// trimFloat renders a threshold for file names: "2.5" and "25", never
// "2.50" or "25.0".
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
