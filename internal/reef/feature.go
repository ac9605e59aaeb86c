// Package reef defines the feature data model and depth-class label rules
// for calibrating satellite-derived reef detectability classes against
// charted depths.
package reef

import "fmt"

// Ecological label strings as they appear in the source attribute table.
const (
	EcoMesophotic = "Oceanic mesophotic coral reefs"
	EcoShallow    = "Oceanic shallow coral reefs"
)

// Feature is one reef feature: its charted depth plus the satellite-derived
// attributes the predicted class is built from.
type Feature struct {
	ID          string
	ReefID      string
	DepthMeters float64 // charted depth, positive down
	VeryShallow bool    // visible in the contrast-enhanced red band
	EcoLabel    string  // NVCL ecological label

	// Inconsistent is set during dataset construction when the very-shallow
	// flag and the ecological label disagree. The feature is retained.
	Inconsistent bool
}

// Dataset is a fixed-length, ordered collection of features. It is immutable
// after construction; accessors return copies.
type Dataset struct {
	features []Feature
}

// NewDataset copies the given features into an immutable dataset and runs
// the QA consistency check on every feature.
func NewDataset(features []Feature) *Dataset {
	fs := make([]Feature, len(features))
	copy(fs, features)
	for i := range fs {
		fs[i].Inconsistent = fs[i].VeryShallow && fs[i].EcoLabel != EcoShallow
	}
	return &Dataset{features: fs}
}

// Len returns the number of features.
func (d *Dataset) Len() int { return len(d.features) }

// Feature returns the feature at index i.
func (d *Dataset) Feature(i int) Feature { return d.features[i] }

// Depths returns a copy of the charted depths in dataset order.
func (d *Dataset) Depths() []float64 {
	out := make([]float64, len(d.features))
	for i, f := range d.features {
		out[i] = f.DepthMeters
	}
	return out
}

// Inconsistent returns the features flagged by the QA consistency check:
// very-shallow flag set but ecological label not the shallow string.
func (d *Dataset) Inconsistent() []Feature {
	var out []Feature
	for _, f := range d.features {
		if f.Inconsistent {
			out = append(out, f)
		}
	}
	return out
}

// ValidationError reports a fatal problem with the input dataset: a missing
// or mistyped field, or a row count that differs from the expected count.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "dataset validation: " + e.Msg
}

// Validatef builds a ValidationError from a format string.
func Validatef(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
