package report

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// SaveSweepHTML renders an interactive page with one chart per sweep
// (deep and very-shallow), each showing precision, recall and F1 against
// the threshold grid. Undefined ratios render as gaps.
func SaveSweepHTML(path string, deep, veryShallow []sweep.Row, t reef.Thresholds) error {
	page := components.NewPage()
	page.SetPageTitle("Depth-class threshold sweeps")
	page.AddCharts(
		sweepChart("Deep threshold sweep",
			fmt.Sprintf("selected D_deep = %g m", t.Deep), deep),
		sweepChart("Very-shallow threshold sweep",
			fmt.Sprintf("selected D_vs = %g m", t.VeryShallow), veryShallow),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sweep report: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render sweep report: %w", err)
	}
	return nil
}

func sweepChart(title, subtitle string, rows []sweep.Row) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "threshold (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "score", Min: 0, Max: 1}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	xAxis := make([]string, len(rows))
	for i, r := range rows {
		xAxis[i] = strconv.FormatFloat(r.Threshold, 'f', -1, 64)
	}

	line.SetXAxis(xAxis).
		AddSeries("precision", seriesData(rows, func(r sweep.Row) float64 { return r.Precision })).
		AddSeries("recall", seriesData(rows, func(r sweep.Row) float64 { return r.Recall })).
		AddSeries("f1", seriesData(rows, func(r sweep.Row) float64 { return r.F1 }))
	return line
}

// seriesData maps one metric across the sweep; NaN becomes a nil point so
// echarts draws a gap instead of a bogus zero.
func seriesData(rows []sweep.Row, metric func(sweep.Row) float64) []opts.LineData {
	out := make([]opts.LineData, len(rows))
	for i, r := range rows {
		v := metric(r)
		if math.IsNaN(v) {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}
