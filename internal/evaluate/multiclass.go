// Package evaluate builds the final three-class confusion matrix comparing
// chart-derived truth labels against satellite-predicted labels at a chosen
// threshold pair.
package evaluate

import (
	"fmt"

	"github.com/reef-data/depthclass.report/internal/reef"
)

// ConfigurationError reports an invalid threshold configuration. It is
// fatal for the call that received it; single-cut sweeps are unaffected.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Msg
}

// CheckThresholds verifies the partition invariant D_vs < D_deep.
func CheckThresholds(t reef.Thresholds) error {
	if !(t.VeryShallow < t.Deep) {
		return &ConfigurationError{Msg: fmt.Sprintf(
			"very-shallow cut %g must be below deep cut %g", t.VeryShallow, t.Deep)}
	}
	return nil
}

// Result is a multiclass evaluation at one threshold pair: a 3×3 count
// matrix (rows = truth, columns = predicted, both in reef.Classes order)
// plus overall accuracy.
type Result struct {
	Thresholds reef.Thresholds `json:"thresholds"`
	Matrix     [3][3]int       `json:"matrix"`
	Total      int             `json:"total"`
	Accuracy   float64         `json:"accuracy"`
}

// Cell returns the count of features with the given truth and predicted
// classes.
func (r *Result) Cell(truth, predicted reef.Class) int {
	return r.Matrix[truth][predicted]
}

// Trace returns the number of features whose truth and predicted classes
// agree.
func (r *Result) Trace() int {
	return r.Matrix[0][0] + r.Matrix[1][1] + r.Matrix[2][2]
}

// Evaluate computes the confusion matrix and overall accuracy for the
// dataset at thresholds t. It fails with a ConfigurationError unless
// t.VeryShallow < t.Deep; given a valid pair it is pure, deterministic,
// and total.
func Evaluate(ds *reef.Dataset, t reef.Thresholds) (*Result, error) {
	if err := CheckThresholds(t); err != nil {
		return nil, err
	}

	r := &Result{Thresholds: t, Total: ds.Len()}
	for i := 0; i < ds.Len(); i++ {
		f := ds.Feature(i)
		truth := reef.TruthClass(f.DepthMeters, t)
		pred := reef.PredictedClass(f)
		r.Matrix[truth][pred]++
	}
	// 0/0 yields NaN for an empty dataset, per the degenerate-metric rule.
	r.Accuracy = float64(r.Trace()) / float64(r.Total)
	return r, nil
}
