package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/reef-data/depthclass.report/internal/sweep"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	tomato    = color.RGBA{R: 255, G: 99, B: 71, A: 255}
)

// SaveF1Plot renders F1 score against threshold for one sweep, with a
// dashed vertical marker at the selected threshold, and saves it as PNG.
// Grid points with an undefined F1 are omitted from the curve.
func SaveF1Plot(path string, rows []sweep.Row, selected float64, title, xLabel string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "F1 score"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(rows))
	maxF1 := 0.0
	for _, r := range rows {
		if math.IsNaN(r.F1) {
			continue
		}
		pts = append(pts, plotter.XY{X: r.Threshold, Y: r.F1})
		if r.F1 > maxF1 {
			maxF1 = r.F1
		}
	}
	if len(pts) == 0 {
		return fmt.Errorf("no defined F1 values to plot")
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build F1 line: %w", err)
	}
	line.Color = steelBlue
	line.Width = vg.Points(1.5)
	points.Color = steelBlue
	points.Radius = vg.Points(2)
	p.Add(line, points)
	p.Legend.Add("F1 score (balance of recall and precision)", line)

	if maxF1 == 0 {
		maxF1 = 1
	}
	marker, err := plotter.NewLine(plotter.XYs{
		{X: selected, Y: 0},
		{X: selected, Y: maxF1},
	})
	if err != nil {
		return fmt.Errorf("build threshold marker: %w", err)
	}
	marker.Color = tomato
	marker.Width = vg.Points(1.5)
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("Selected threshold: %g m", selected), marker)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save F1 plot: %w", err)
	}
	return nil
}
