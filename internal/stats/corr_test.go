package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrMatrix(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3, 4},
		{2, 4, 6, 8},  // perfectly correlated with col 0
		{8, 6, 4, 2},  // perfectly anti-correlated with col 0
		{1, -1, -1, 1}, // zero covariance with col 0 after centering
	}
	m, err := CorrMatrix(cols)
	require.NoError(t, err)

	p := m.SymmetricDim()
	require.Equal(t, 4, p)

	for i := 0; i < p; i++ {
		assert.Equal(t, 1.0, m.At(i, i), "diagonal must be exactly 1")
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			assert.InDelta(t, m.At(j, i), m.At(i, j), 1e-12, "matrix must be symmetric")
		}
	}

	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
	assert.InDelta(t, -1.0, m.At(0, 2), 1e-12)
	assert.InDelta(t, 0.0, m.At(0, 3), 1e-12)
}

func TestCorrMatrixErrors(t *testing.T) {
	tests := []struct {
		name string
		cols [][]float64
	}{
		{name: "no columns", cols: nil},
		{name: "ragged columns", cols: [][]float64{{1, 2, 3}, {1, 2}}},
		{name: "single row", cols: [][]float64{{1}, {2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CorrMatrix(tt.cols)
			assert.Error(t, err)
		})
	}
}

func TestMaskUpper(t *testing.T) {
	m, err := CorrMatrix([][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{1, 3, 2, 4},
	})
	require.NoError(t, err)

	masked := MaskUpper(m)
	r, c := masked.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j >= i {
				assert.True(t, math.IsNaN(masked.At(i, j)), "cell (%d,%d) should be masked", i, j)
			} else {
				assert.Equal(t, m.At(i, j), masked.At(i, j))
			}
		}
	}
}
