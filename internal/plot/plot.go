// Package plot renders the analysis artifacts (box plot, histogram, scatter
// plots with fitted lines, correlation heatmap) as PNG files.
package plot

import (
	"image/color"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	pointBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fitRed    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	barSteel  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// BoxPlot writes a horizontal box plot of the values.
func BoxPlot(path, title string, values []float64) error {
	p := plot.New()
	p.Title.Text = title

	box, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(values))
	if err != nil {
		return eris.Wrapf(err, "plot: box plot %s", path)
	}
	box.Horizontal = true
	p.Add(box)
	p.HideY()

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "plot: save %s", path)
	}
	return nil
}

// Histogram writes a histogram of the values with the given bin count.
func Histogram(path, title string, values []float64, bins int) error {
	if bins <= 0 {
		bins = 10
	}

	p := plot.New()
	p.Title.Text = title

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return eris.Wrapf(err, "plot: histogram %s", path)
	}
	h.FillColor = barSteel
	p.Add(h)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "plot: save %s", path)
	}
	return nil
}

// Scatter writes a scatter of (x, y) with the fitted regression line drawn
// through the predicted values.
func Scatter(path, title, xLabel, yLabel string, x, y, predicted []float64) error {
	if len(x) != len(y) || len(x) != len(predicted) {
		return eris.Errorf("plot: length mismatch: x=%d y=%d predicted=%d", len(x), len(y), len(predicted))
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	points := make(plotter.XYs, len(x))
	for i := range x {
		points[i].X = x[i]
		points[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return eris.Wrapf(err, "plot: scatter %s", path)
	}
	scatter.GlyphStyle.Color = pointBlue
	scatter.GlyphStyle.Radius = vg.Points(2)

	// The fit is a straight line: sorting by x keeps the stroke monotone.
	fitPts := make(plotter.XYs, len(x))
	for i := range x {
		fitPts[i].X = x[i]
		fitPts[i].Y = predicted[i]
	}
	sort.Slice(fitPts, func(i, j int) bool { return fitPts[i].X < fitPts[j].X })
	line, err := plotter.NewLine(fitPts)
	if err != nil {
		return eris.Wrapf(err, "plot: fit line %s", path)
	}
	line.Color = fitRed
	line.Width = vg.Points(1)

	p.Add(plotter.NewGrid())
	p.Add(scatter)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "plot: save %s", path)
	}
	return nil
}
