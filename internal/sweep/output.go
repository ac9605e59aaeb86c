package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Header is the sweep table column order.
var Header = []string{"threshold", "tp", "tn", "fp", "fn", "precision", "recall", "f1", "accuracy"}

// WriteCSV writes sweep rows as a CSV table with a header row. Ratios are
// formatted to four decimal places; undefined ratios are written as "NaN".
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write sweep header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			formatThreshold(r.Threshold),
			strconv.Itoa(r.TP),
			strconv.Itoa(r.TN),
			strconv.Itoa(r.FP),
			strconv.Itoa(r.FN),
			FormatRatio(r.Precision),
			FormatRatio(r.Recall),
			FormatRatio(r.F1),
			FormatRatio(r.Accuracy),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write sweep row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatRatio renders a derived ratio for tabular output: four decimal
// places, or "NaN" for an undefined value.
func FormatRatio(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
