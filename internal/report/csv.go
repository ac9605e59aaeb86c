// Package report renders calibration results for human consumption: CSV
// tables mirroring the upstream analysis outputs, F1 sweep plots, and an
// interactive HTML chart.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/reef-data/depthclass.report/internal/evaluate"
	"github.com/reef-data/depthclass.report/internal/montecarlo"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// WriteConfusionCSV writes the labelled 3×3 confusion matrix with the
// overall accuracy appended as a trailing row, matching the layout of the
// original calibration outputs.
func WriteConfusionCSV(w io.Writer, result *evaluate.Result) error {
	cw := csv.NewWriter(w)

	header := []string{`truth \ predicted`}
	for _, c := range reef.Classes {
		header = append(header, c.String())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write confusion header: %w", err)
	}

	for _, truth := range reef.Classes {
		row := []string{truth.String()}
		for _, predicted := range reef.Classes {
			row = append(row, strconv.Itoa(result.Cell(truth, predicted)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write confusion row: %w", err)
		}
	}

	accRow := []string{"overall_accuracy", sweep.FormatRatio(result.Accuracy), "", ""}
	if err := cw.Write(accRow); err != nil {
		return fmt.Errorf("write accuracy row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteSensitivityCSV writes the per-replicate table with a trailing
// SUMMARY row of mean values.
func WriteSensitivityCSV(w io.Writer, result *montecarlo.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"replicate", "overall_accuracy",
		"flip_rate_very_shallow", "flip_rate_shallow", "flip_rate_deep"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write sensitivity header: %w", err)
	}

	for _, r := range result.Replicates {
		row := []string{
			strconv.Itoa(r.Index),
			sweep.FormatRatio(r.Accuracy),
			sweep.FormatRatio(r.FlipRates[reef.ClassVeryShallow]),
			sweep.FormatRatio(r.FlipRates[reef.ClassShallow]),
			sweep.FormatRatio(r.FlipRates[reef.ClassDeep]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write replicate row %d: %w", r.Index, err)
		}
	}

	sum := result.Summary
	row := []string{
		"SUMMARY",
		sweep.FormatRatio(sum.MeanAccuracy),
		sweep.FormatRatio(sum.FlipRates[reef.ClassVeryShallow]),
		sweep.FormatRatio(sum.FlipRates[reef.ClassShallow]),
		sweep.FormatRatio(sum.FlipRates[reef.ClassDeep]),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write summary row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
