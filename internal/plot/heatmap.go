package plot

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// corrGrid adapts a (possibly NaN-masked) matrix to plotter.GridXYZ.
// Row 0 of the matrix is drawn as the top row of the heatmap so the label
// order reads top to bottom.
type corrGrid struct {
	m *mat.Dense
}

func (g corrGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g corrGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// CorrHeatmap writes a correlation-matrix heatmap on a diverging blue-red
// scale fixed to [-1, 1]. NaN cells (the masked upper triangle) are left
// unpainted.
func CorrHeatmap(path, title string, m *mat.Dense, labels []string) error {
	rows, cols := m.Dims()
	if rows != cols {
		return eris.Errorf("plot: correlation matrix must be square, got %dx%d", rows, cols)
	}
	if len(labels) != rows {
		return eris.Errorf("plot: %d labels for %d variables", len(labels), rows)
	}

	p := plot.New()
	p.Title.Text = title

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	h := plotter.NewHeatMap(corrGrid{m: m}, pal)
	h.Min = -1
	h.Max = 1
	p.Add(h)

	p.NominalX(labels...)
	reversed := make([]string, len(labels))
	for i, l := range labels {
		reversed[len(labels)-1-i] = l
	}
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = 1.0
	p.X.Tick.Label.XAlign = -1

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "plot: save %s", path)
	}
	return nil
}
