// Package sweep runs one-vs-rest threshold sweeps: for each value on a
// fixed grid it derives single-cut truth labels, scores them against the
// fixed satellite prediction, and emits one metrics row per grid point.
package sweep

import "math"

// maxGridValues bounds grid generation against runaway range specs.
const maxGridValues = 10000

// GridSpec defines a float threshold grid: Min to Max inclusive, stepping
// by Step. The inclusive stop tolerates floating-point step accumulation,
// so 0:5:0.2 ends exactly at 5.0.
type GridSpec struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Values expands the spec into an ordered grid. Returns nil for an invalid
// spec (non-positive step, min above max, or an excessive value count).
func (g GridSpec) Values() []float64 {
	if g.Step <= 0 || g.Min > g.Max {
		return nil
	}
	expected := int((g.Max-g.Min)/g.Step) + 1
	if expected < 0 || expected > maxGridValues {
		return nil
	}

	var out []float64
	for v := g.Min; v <= g.Max+g.Step/1000; v += g.Step {
		if len(out) >= maxGridValues {
			break
		}
		// Round away accumulated floating-point error so the grid carries
		// exact threshold values like 0.2, 0.4, ... 5.0.
		rounded := math.Round(v*1000) / 1000
		if rounded <= g.Max {
			out = append(out, rounded)
		}
	}
	return out
}
