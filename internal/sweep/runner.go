package sweep

import (
	"fmt"

	"github.com/reef-data/depthclass.report/internal/metrics"
	"github.com/reef-data/depthclass.report/internal/reef"
)

// Row is one grid point of a one-vs-rest threshold sweep.
type Row struct {
	Threshold float64 `json:"threshold"`
	metrics.BinaryMetrics
}

// Run sweeps the grid for the given target class, producing one Row per
// grid point in grid order. Only the extreme classes can be swept with a
// single cut: very-shallow (truth: depth <= threshold) and deep (truth:
// depth >= threshold). The satellite prediction is fixed across the sweep.
//
// The output is pure and deterministic given the dataset and grid; each
// grid point is independently computable.
func Run(ds *reef.Dataset, class reef.Class, grid []float64) ([]Row, error) {
	if class != reef.ClassVeryShallow && class != reef.ClassDeep {
		return nil, fmt.Errorf("class %s cannot be swept with a single cut", class)
	}

	depths := ds.Depths()
	pred := make([]bool, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		pred[i] = reef.PredictedClass(ds.Feature(i)) == class
	}

	rows := make([]Row, 0, len(grid))
	truth := make([]bool, len(depths))
	for _, threshold := range grid {
		for i, z := range depths {
			if class == reef.ClassVeryShallow {
				truth[i] = z <= threshold
			} else {
				truth[i] = z >= threshold
			}
		}
		m, err := metrics.Compute(truth, pred)
		if err != nil {
			return nil, fmt.Errorf("threshold %g: %w", threshold, err)
		}
		rows = append(rows, Row{Threshold: threshold, BinaryMetrics: m})
	}
	return rows, nil
}
