// Package metrics computes binary confusion counts and derived ratios for
// one-vs-rest class evaluations.
package metrics

import "fmt"

// BinaryMetrics holds the confusion counts and derived ratios for one
// predicted/truth boolean pair.
//
// A ratio with a zero denominator is NaN, never coerced to zero: a sweep
// point with no predicted positives has an undefined precision, and
// downstream consumers must treat it as such.
type BinaryMetrics struct {
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`

	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`
}

// Compute derives confusion counts and ratios from equal-length truth and
// predicted boolean vectors.
func Compute(truth, pred []bool) (BinaryMetrics, error) {
	if len(truth) != len(pred) {
		return BinaryMetrics{}, fmt.Errorf("length mismatch: %d truth vs %d predicted", len(truth), len(pred))
	}

	var m BinaryMetrics
	for i := range truth {
		switch {
		case truth[i] && pred[i]:
			m.TP++
		case !truth[i] && !pred[i]:
			m.TN++
		case !truth[i] && pred[i]:
			m.FP++
		default:
			m.FN++
		}
	}

	// Float division yields NaN for 0/0; that is the defined behaviour for
	// degenerate denominators.
	m.Precision = float64(m.TP) / float64(m.TP+m.FP)
	m.Recall = float64(m.TP) / float64(m.TP+m.FN)
	m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	m.Accuracy = float64(m.TP+m.TN) / float64(len(truth))
	return m, nil
}
