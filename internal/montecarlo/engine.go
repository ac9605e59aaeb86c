package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/reef-data/depthclass.report/internal/evaluate"
	"github.com/reef-data/depthclass.report/internal/monitoring"
	"github.com/reef-data/depthclass.report/internal/reef"
)

// progressEvery controls how often replicate progress is logged.
const progressEvery = 200

// Params configures a sensitivity run.
type Params struct {
	Thresholds reef.Thresholds
	Noise      NoiseModel
	Replicates int    // number of Monte Carlo repetitions
	Seed       uint64 // reproducibility anchor
	Workers    int    // parallel workers; <= 0 means GOMAXPROCS
}

// Replicate is the outcome of one noise-perturbed relabelling compared
// elementwise against the baseline labels.
type Replicate struct {
	Index    int     // 1-based repetition index
	Accuracy float64 // fraction of features whose label did not flip
	// FlipRates[c] is the fraction of baseline-class-c features whose label
	// flipped, indexed by reef.Classes order. NaN when the baseline class
	// is empty.
	FlipRates [3]float64
}

// Summary aggregates all replicates.
//
// The 95% confidence interval uses the normal approximation
// mean ± 1.96·stddev/sqrt(R); the empirical-percentile alternative was
// deliberately not used, so intervals match the original calibration
// outputs exactly.
type Summary struct {
	Replicates      int     `json:"replicates"`
	MeanAccuracy    float64 `json:"mean_accuracy"`
	CILow           float64 `json:"ci_low"`
	CIHigh          float64 `json:"ci_high"`
	OverallFlipRate float64 `json:"overall_flip_rate"`
	// FlipRates[c] is the mean per-replicate flip rate for baseline class c.
	FlipRates [3]float64 `json:"flip_rates"`
}

// Result is the full output of a sensitivity run: the baseline labelling,
// the per-replicate table, and the aggregate summary.
type Result struct {
	Baseline   []reef.Class
	Replicates []Replicate
	Summary    Summary
}

// replicateSeed derives an independent sub-stream seed for repetition rep
// (0-based) from the base seed using splitmix64 mixing. Each repetition
// draws from its own stream, so results are bit-identical under any worker
// count or execution order.
func replicateSeed(base uint64, rep int) uint64 {
	z := base + 0x9e3779b97f4a7c15*uint64(rep+1)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Run executes the sensitivity analysis. Baseline labels are computed once
// from the unperturbed depths; every repetition perturbs each depth with an
// independent zero-mean Gaussian of standard deviation sigma(z), with no
// clamping, and relabels at the same thresholds. Fails with a
// ConfigurationError unless Thresholds.VeryShallow < Thresholds.Deep.
func Run(ds *reef.Dataset, p Params) (*Result, error) {
	if err := evaluate.CheckThresholds(p.Thresholds); err != nil {
		return nil, err
	}
	if p.Replicates <= 0 {
		return nil, fmt.Errorf("replicates must be positive, got %d", p.Replicates)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	depths := ds.Depths()
	sigmas := p.Noise.Sigmas(depths)
	baseline := reef.TruthClasses(depths, p.Thresholds)

	var classCounts [3]int
	for _, c := range baseline {
		classCounts[c]++
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > p.Replicates {
		workers = p.Replicates
	}

	replicates := make([]Replicate, p.Replicates)
	var done atomic.Int64
	var wg sync.WaitGroup
	next := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range next {
				replicates[rep] = runReplicate(rep, depths, sigmas, baseline, classCounts, p)
				if n := done.Add(1); n%progressEvery == 0 {
					monitoring.Logf("sensitivity: completed %d/%d replicates", n, p.Replicates)
				}
			}
		}()
	}
	for rep := 0; rep < p.Replicates; rep++ {
		next <- rep
	}
	close(next)
	wg.Wait()

	return &Result{
		Baseline:   baseline,
		Replicates: replicates,
		Summary:    summarise(replicates),
	}, nil
}

// runReplicate perturbs every depth from repetition rep's own random
// sub-stream and compares the relabelling against the baseline.
func runReplicate(rep int, depths, sigmas []float64, baseline []reef.Class, classCounts [3]int, p Params) Replicate {
	src := rand.NewPCG(p.Seed, replicateSeed(p.Seed, rep))
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	matches := 0
	var flips [3]int
	for i, z := range depths {
		perturbed := z + normal.Rand()*sigmas[i]
		// No clamping: a negative perturbed depth is necessarily <= D_vs
		// and classifies as very-shallow by the same boundary rules.
		if reef.TruthClass(perturbed, p.Thresholds) == baseline[i] {
			matches++
		} else {
			flips[baseline[i]]++
		}
	}

	r := Replicate{
		Index:    rep + 1,
		Accuracy: float64(matches) / float64(len(depths)),
	}
	for c := range r.FlipRates {
		// 0/0 yields NaN for a class with no baseline members.
		r.FlipRates[c] = float64(flips[c]) / float64(classCounts[c])
	}
	return r
}

// summarise aggregates per-replicate accuracies and flip rates.
func summarise(replicates []Replicate) Summary {
	accs := make([]float64, len(replicates))
	var flips [3][]float64
	for c := range flips {
		flips[c] = make([]float64, len(replicates))
	}
	for i, r := range replicates {
		accs[i] = r.Accuracy
		for c := range flips {
			flips[c][i] = r.FlipRates[c]
		}
	}

	mean := stat.Mean(accs, nil)
	sd := stat.StdDev(accs, nil)
	if len(accs) == 1 {
		sd = 0
	}
	half := 1.96 * sd / math.Sqrt(float64(len(accs)))

	s := Summary{
		Replicates:      len(replicates),
		MeanAccuracy:    mean,
		CILow:           mean - half,
		CIHigh:          mean + half,
		OverallFlipRate: 1 - mean,
	}
	for c := range flips {
		s.FlipRates[c] = stat.Mean(flips[c], nil)
	}
	return s
}
