package stats

import (
	"slices"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"
)

// QuantileBins returns the data values at the given quantile fractions, for
// use as choropleth colour-bin edges. Fractions must be ascending and within
// [0, 1]. The returned edges are non-decreasing; adjacent edges may be equal
// when the data is heavily tied (many zero counts), and consumers must
// tolerate such zero-width bins.
func QuantileBins(values []float64, fractions []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, eris.New("stats: no values for quantile bins")
	}
	if len(fractions) < 2 {
		return nil, eris.Errorf("stats: need at least 2 quantile fractions, got %d", len(fractions))
	}
	for i, q := range fractions {
		if q < 0 || q > 1 {
			return nil, eris.Errorf("stats: quantile fraction %g out of [0,1]", q)
		}
		if i > 0 && q < fractions[i-1] {
			return nil, eris.Errorf("stats: quantile fractions not ascending at index %d", i)
		}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	edges := make([]float64, len(fractions))
	for i, q := range fractions {
		edges[i] = stat.Quantile(q, stat.LinInterp, sorted, nil)
	}
	return edges, nil
}
