package stats

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix computes the pairwise Pearson correlation matrix of the given
// columns. Every column must have the same length. The result is symmetric
// with a unit diagonal.
func CorrMatrix(cols [][]float64) (*mat.SymDense, error) {
	p := len(cols)
	if p == 0 {
		return nil, eris.New("stats: no columns")
	}
	n := len(cols[0])
	for i, c := range cols {
		if len(c) != n {
			return nil, eris.Errorf("stats: column %d has length %d, want %d", i, len(c), n)
		}
	}
	if n < 2 {
		return nil, eris.Wrapf(ErrInsufficientData, "n=%d", n)
	}

	// Samples in rows, variables in columns.
	data := make([]float64, n*p)
	for j, c := range cols {
		for i, v := range c {
			data[i*p+j] = v
		}
	}
	x := mat.NewDense(n, p, data)

	corr := mat.NewSymDense(p, nil)
	stat.CorrelationMatrix(corr, x, nil)

	// Pin the diagonal: unit by definition, regardless of rounding.
	for i := 0; i < p; i++ {
		corr.SetSym(i, i, 1)
	}
	return corr, nil
}

// MaskUpper returns a copy of the correlation matrix with every cell strictly
// above the diagonal (and the diagonal itself) replaced by NaN. The upper
// triangle is redundant by symmetry; rendering skips NaN cells rather than
// recomputing anything.
func MaskUpper(m *mat.SymDense) *mat.Dense {
	p := m.SymmetricDim()
	out := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if j >= i {
				out.Set(i, j, math.NaN())
			} else {
				out.Set(i, j, m.At(i, j))
			}
		}
	}
	return out
}
