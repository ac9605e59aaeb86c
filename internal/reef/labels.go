package reef

import "fmt"

// Class is a categorical depth class.
type Class int

// Depth classes in fixed evaluation order.
const (
	ClassVeryShallow Class = iota
	ClassShallow
	ClassDeep
)

// Classes lists all depth classes in fixed order: very-shallow, shallow, deep.
// Confusion matrix rows and columns follow this order.
var Classes = [3]Class{ClassVeryShallow, ClassShallow, ClassDeep}

func (c Class) String() string {
	switch c {
	case ClassVeryShallow:
		return "very-shallow"
	case ClassShallow:
		return "shallow"
	case ClassDeep:
		return "deep"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass converts a class name back to a Class.
func ParseClass(s string) (Class, error) {
	for _, c := range Classes {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown depth class %q", s)
}

// Thresholds is the (D_vs, D_deep) cut-point pair partitioning depth space
// into three classes. The partition is well-defined only when
// VeryShallow < Deep.
type Thresholds struct {
	VeryShallow float64 // depth <= VeryShallow is very-shallow
	Deep        float64 // depth >= Deep is deep
}

// TruthClass maps a charted depth to its class under t. Equality resolves
// toward the extreme class: depth == VeryShallow is very-shallow, depth ==
// Deep is deep. The rule is total for any finite depth, including negative
// perturbed depths.
func TruthClass(depth float64, t Thresholds) Class {
	switch {
	case depth <= t.VeryShallow:
		return ClassVeryShallow
	case depth >= t.Deep:
		return ClassDeep
	default:
		return ClassShallow
	}
}

// TruthClasses maps every depth to its class under t.
func TruthClasses(depths []float64, t Thresholds) []Class {
	out := make([]Class, len(depths))
	for i, z := range depths {
		out[i] = TruthClass(z, t)
	}
	return out
}

// PredictedClass maps a feature's satellite attributes to a class with fixed
// priority, first match wins: very-shallow flag, then mesophotic ecological
// label, then shallow. Inconsistent attribute combinations still resolve by
// the same priority order; the QA flag is carried separately.
func PredictedClass(f Feature) Class {
	switch {
	case f.VeryShallow:
		return ClassVeryShallow
	case f.EcoLabel == EcoMesophotic:
		return ClassDeep
	default:
		return ClassShallow
	}
}

// PredictedClasses maps every feature in the dataset to its predicted class.
func PredictedClasses(d *Dataset) []Class {
	out := make([]Class, d.Len())
	for i := range out {
		out[i] = PredictedClass(d.Feature(i))
	}
	return out
}
