package metrics

import (
	"math"
	"testing"
)

func TestComputeCounts(t *testing.T) {
	truth := []bool{true, true, true, false, false, false, false, false}
	pred := []bool{true, true, false, true, false, false, false, false}

	m, err := Compute(truth, pred)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.TP != 2 || m.FN != 1 || m.FP != 1 || m.TN != 4 {
		t.Fatalf("counts = TP %d TN %d FP %d FN %d, want TP 2 TN 4 FP 1 FN 1",
			m.TP, m.TN, m.FP, m.FN)
	}
	if got := m.TP + m.TN + m.FP + m.FN; got != len(truth) {
		t.Errorf("counts sum to %d, want %d", got, len(truth))
	}

	approx(t, "precision", m.Precision, 2.0/3.0)
	approx(t, "recall", m.Recall, 2.0/3.0)
	approx(t, "f1", m.F1, 2.0/3.0)
	approx(t, "accuracy", m.Accuracy, 0.75)
}

func TestComputePerfect(t *testing.T) {
	truth := []bool{true, false, true}
	m, err := Compute(truth, truth)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	approx(t, "precision", m.Precision, 1)
	approx(t, "recall", m.Recall, 1)
	approx(t, "f1", m.F1, 1)
	approx(t, "accuracy", m.Accuracy, 1)
}

func TestComputeDegenerateRatios(t *testing.T) {
	tests := []struct {
		name  string
		truth []bool
		pred  []bool
		nan   []string
	}{
		{
			name:  "no predicted positives",
			truth: []bool{true, false, true},
			pred:  []bool{false, false, false},
			nan:   []string{"precision"},
		},
		{
			name:  "no truth positives",
			truth: []bool{false, false, false},
			pred:  []bool{false, true, false},
			nan:   []string{"recall"},
		},
		{
			name:  "no positives anywhere",
			truth: []bool{false, false},
			pred:  []bool{false, false},
			nan:   []string{"precision", "recall", "f1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compute(tt.truth, tt.pred)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			got := map[string]float64{
				"precision": m.Precision,
				"recall":    m.Recall,
				"f1":        m.F1,
			}
			for _, field := range tt.nan {
				if !math.IsNaN(got[field]) {
					t.Errorf("%s = %g, want NaN", field, got[field])
				}
			}
			// Accuracy has denominator N and stays defined.
			if math.IsNaN(m.Accuracy) {
				t.Error("accuracy is NaN for a non-empty input")
			}
		})
	}
}

func TestComputeF1NaNWhenPrecisionAndRecallZero(t *testing.T) {
	// Defined precision and recall that are both exactly zero still leave
	// F1 with a 0/0 denominator.
	truth := []bool{true, false}
	pred := []bool{false, true}
	m, err := Compute(truth, pred)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.Precision != 0 || m.Recall != 0 {
		t.Fatalf("precision %g recall %g, want both 0", m.Precision, m.Recall)
	}
	if !math.IsNaN(m.F1) {
		t.Errorf("f1 = %g, want NaN", m.F1)
	}
}

func TestComputeLengthMismatch(t *testing.T) {
	if _, err := Compute([]bool{true}, []bool{true, false}); err == nil {
		t.Error("Compute accepted mismatched vector lengths")
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("%s = %g, want %g", name, got, want)
	}
}
