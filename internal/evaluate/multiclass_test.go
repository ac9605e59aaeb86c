package evaluate

import (
	"errors"
	"math"
	"testing"

	"github.com/reef-data/depthclass.report/internal/reef"
)

func evalDataset() *reef.Dataset {
	return reef.NewDataset([]reef.Feature{
		// truth very-shallow, predicted very-shallow
		{ID: "1", DepthMeters: 1.0, VeryShallow: true, EcoLabel: reef.EcoShallow},
		// truth shallow, predicted shallow
		{ID: "2", DepthMeters: 10.0, VeryShallow: false, EcoLabel: reef.EcoShallow},
		// truth deep, predicted deep
		{ID: "3", DepthMeters: 30.0, VeryShallow: false, EcoLabel: reef.EcoMesophotic},
		// truth shallow, predicted deep
		{ID: "4", DepthMeters: 20.0, VeryShallow: false, EcoLabel: reef.EcoMesophotic},
	})
}

func TestEvaluate(t *testing.T) {
	r, err := Evaluate(evalDataset(), reef.Thresholds{VeryShallow: 2.5, Deep: 25})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if r.Total != 4 {
		t.Errorf("Total = %d, want 4", r.Total)
	}
	if r.Trace() != 3 {
		t.Errorf("Trace = %d, want 3", r.Trace())
	}
	if r.Accuracy != 0.75 {
		t.Errorf("Accuracy = %g, want 0.75", r.Accuracy)
	}

	cells := []struct {
		truth, pred reef.Class
		want        int
	}{
		{reef.ClassVeryShallow, reef.ClassVeryShallow, 1},
		{reef.ClassShallow, reef.ClassShallow, 1},
		{reef.ClassShallow, reef.ClassDeep, 1},
		{reef.ClassDeep, reef.ClassDeep, 1},
		{reef.ClassVeryShallow, reef.ClassDeep, 0},
		{reef.ClassDeep, reef.ClassVeryShallow, 0},
	}
	for _, c := range cells {
		if got := r.Cell(c.truth, c.pred); got != c.want {
			t.Errorf("Cell(%s, %s) = %d, want %d", c.truth, c.pred, got, c.want)
		}
	}

	sum := 0
	for _, row := range r.Matrix {
		for _, n := range row {
			sum += n
		}
	}
	if sum != r.Total {
		t.Errorf("matrix sums to %d, want %d", sum, r.Total)
	}
}

func TestEvaluateBoundaryDepths(t *testing.T) {
	// Depths exactly at a cut resolve toward the extreme class.
	ds := reef.NewDataset([]reef.Feature{
		{ID: "a", DepthMeters: 2.5, VeryShallow: true, EcoLabel: reef.EcoShallow},
		{ID: "b", DepthMeters: 25.0, VeryShallow: false, EcoLabel: reef.EcoMesophotic},
	})
	r, err := Evaluate(ds, reef.Thresholds{VeryShallow: 2.5, Deep: 25})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if r.Cell(reef.ClassVeryShallow, reef.ClassVeryShallow) != 1 {
		t.Error("depth 2.5 did not land in the very-shallow truth row")
	}
	if r.Cell(reef.ClassDeep, reef.ClassDeep) != 1 {
		t.Error("depth 25.0 did not land in the deep truth row")
	}
	if r.Accuracy != 1.0 {
		t.Errorf("Accuracy = %g, want 1.0", r.Accuracy)
	}
}

func TestEvaluateEmptyDataset(t *testing.T) {
	r, err := Evaluate(reef.NewDataset(nil), reef.Thresholds{VeryShallow: 2.5, Deep: 25})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !math.IsNaN(r.Accuracy) {
		t.Errorf("Accuracy = %g, want NaN for an empty dataset", r.Accuracy)
	}
}

func TestCheckThresholds(t *testing.T) {
	tests := []struct {
		name string
		t    reef.Thresholds
		ok   bool
	}{
		{"valid", reef.Thresholds{VeryShallow: 2.5, Deep: 25}, true},
		{"equal cuts", reef.Thresholds{VeryShallow: 25, Deep: 25}, false},
		{"inverted cuts", reef.Thresholds{VeryShallow: 30, Deep: 25}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckThresholds(tt.t)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				var cerr *ConfigurationError
				if !errors.As(err, &cerr) {
					t.Errorf("got %v, want a ConfigurationError", err)
				}
			}
		})
	}
}

func TestEvaluateRejectsBadThresholds(t *testing.T) {
	_, err := Evaluate(evalDataset(), reef.Thresholds{VeryShallow: 25, Deep: 2.5})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want a ConfigurationError", err)
	}
}
