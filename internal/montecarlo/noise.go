// Package montecarlo quantifies how much multiclass label instability is
// attributable to depth-measurement uncertainty alone. It perturbs charted
// depths under a heteroscedastic Gaussian noise model and measures
// self-agreement against the unperturbed baseline labelling.
package montecarlo

import "math"

// NoiseModel is the depth-uncertainty model: the perturbation standard
// deviation grows with depth as sigma(z) = sqrt(A^2 + (B*z)^2). The
// defaults encode a ZOC-B chart accuracy of ±0.5 m at 95% confidence plus
// 2% of depth, combined in quadrature.
type NoiseModel struct {
	A float64 `json:"a"` // fixed term, metres
	B float64 `json:"b"` // depth-relative term, dimensionless
}

// DefaultNoiseModel returns the ZOC-B noise constants a = 0.25 m, b = 0.02.
func DefaultNoiseModel() NoiseModel {
	return NoiseModel{A: 0.25, B: 0.02}
}

// Sigma returns the perturbation standard deviation at depth z.
func (m NoiseModel) Sigma(z float64) float64 {
	return math.Hypot(m.A, m.B*z)
}

// Sigmas precomputes Sigma for each depth.
func (m NoiseModel) Sigmas(depths []float64) []float64 {
	out := make([]float64, len(depths))
	for i, z := range depths {
		out[i] = m.Sigma(z)
	}
	return out
}
