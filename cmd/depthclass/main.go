// Command depthclass calibrates satellite-derived reef depth classes
// against charted depths: one-vs-rest threshold sweeps, a final multiclass
// confusion matrix, and a Monte Carlo depth-uncertainty sensitivity
// analysis.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/reef-data/depthclass.report/internal/analysis"
	"github.com/reef-data/depthclass.report/internal/config"
	"github.com/reef-data/depthclass.report/internal/evaluate"
	"github.com/reef-data/depthclass.report/internal/loader"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/storage/sqlite"
)

func main() {
	input := flag.String("input", "", "Input CSV attribute table (required)")
	outDir := flag.String("out", "results", "Output directory for tables and plots")
	dbPath := flag.String("db", "", "Optional SQLite results database path")
	configPath := flag.String("config", "", "Optional analysis config JSON")

	// Overrides for the most commonly adjusted settings; negative values
	// mean "use the config or default".
	dVS := flag.Float64("d-vs", -1, "Very-shallow cut point override (m)")
	dDeep := flag.Float64("d-deep", -1, "Deep cut point override (m)")
	reps := flag.Int("reps", -1, "Monte Carlo repetition count override")
	seed := flag.Int64("seed", -1, "RNG seed override")
	workers := flag.Int("workers", -1, "Monte Carlo worker count override (0 = one per CPU)")
	expectedRows := flag.Int("expected-rows", -1, "Expected dataset row count override (0 disables the check)")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &config.AnalysisConfig{}
	if *configPath != "" {
		loaded, err := config.LoadAnalysisConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	applyOverrides(cfg, *dVS, *dDeep, *reps, *seed, *workers, *expectedRows)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("loading %s ...", *input)
	ds, err := loader.Load(*input, cfg.GetExpectedRows())
	if err != nil {
		var verr *reef.ValidationError
		if errors.As(err, &verr) {
			log.Fatalf("input rejected: %v", err)
		}
		log.Fatalf("load: %v", err)
	}
	log.Printf("loaded %d features", ds.Len())

	out, err := analysis.Run(ds, cfg)
	if err != nil {
		var cerr *evaluate.ConfigurationError
		if errors.As(err, &cerr) {
			log.Fatalf("bad configuration: %v", err)
		}
		log.Fatalf("analysis: %v", err)
	}

	printSummary(out)

	if err := analysis.WriteFiles(out, *outDir); err != nil {
		log.Fatalf("write outputs: %v", err)
	}

	if *dbPath != "" {
		db, err := sqlite.Open(*dbPath)
		if err != nil {
			log.Fatalf("results db: %v", err)
		}
		defer db.Close()
		runID, err := analysis.Persist(db, out, cfg, *input, ds.Len())
		if err != nil {
			log.Fatalf("persist: %v", err)
		}
		log.Printf("persisted as run %s in %s", runID, *dbPath)
	}
}

// applyOverrides copies any explicitly set flags into the config.
func applyOverrides(cfg *config.AnalysisConfig, dVS, dDeep float64, reps int, seed int64, workers, expectedRows int) {
	if dVS >= 0 {
		cfg.VeryShallowCut = &dVS
	}
	if dDeep >= 0 {
		cfg.DeepCut = &dDeep
	}
	if reps >= 0 {
		cfg.Replicates = &reps
	}
	if seed >= 0 {
		s := uint64(seed)
		cfg.Seed = &s
	}
	if workers >= 0 {
		cfg.Workers = &workers
	}
	if expectedRows >= 0 {
		cfg.ExpectedRows = &expectedRows
	}
}

func printSummary(out *analysis.Output) {
	m := out.Multiclass
	log.Printf("confusion matrix at (D_vs=%g, D_deep=%g), rows = truth, cols = predicted:",
		out.Thresholds.VeryShallow, out.Thresholds.Deep)
	header := fmt.Sprintf("%16s", "")
	for _, c := range reef.Classes {
		header += fmt.Sprintf("%14s", c)
	}
	log.Print(header)
	for _, truth := range reef.Classes {
		line := fmt.Sprintf("%16s", truth)
		for _, predicted := range reef.Classes {
			line += fmt.Sprintf("%14d", m.Cell(truth, predicted))
		}
		log.Print(line)
	}
	log.Printf("overall accuracy: %.4f (%.2f%%)", m.Accuracy, m.Accuracy*100)

	s := out.Sensitivity.Summary
	log.Printf("self-consistency over %d replicates: mean accuracy %.4f, 95%% CI [%.4f, %.4f]",
		s.Replicates, s.MeanAccuracy, s.CILow, s.CIHigh)
	log.Printf("flip rates: overall %.4f, very-shallow %.4f, shallow %.4f, deep %.4f",
		s.OverallFlipRate,
		s.FlipRates[reef.ClassVeryShallow],
		s.FlipRates[reef.ClassShallow],
		s.FlipRates[reef.ClassDeep])
}
