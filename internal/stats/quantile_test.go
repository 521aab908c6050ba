package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileBinsTiedLowEnd(t *testing.T) {
	// Many zero counts: the 0th and 20th percentiles collapse to the same
	// edge, which the colour-scale consumer must tolerate.
	values := []float64{0, 0, 0, 0, 0, 0, 1, 2, 5, 40}
	fractions := []float64{0, 0.20, 0.40, 0.60, 0.95, 1.0}

	edges, err := QuantileBins(values, fractions)
	require.NoError(t, err)
	require.Len(t, edges, len(fractions))

	assert.Equal(t, edges[0], edges[1], "tied low quantiles must give equal edges")
	for i := 1; i < len(edges); i++ {
		assert.GreaterOrEqual(t, edges[i], edges[i-1], "edges must be non-decreasing")
	}
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 40.0, edges[len(edges)-1])
}

func TestQuantileBinsEndpoints(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	edges, err := QuantileBins(values, []float64{0, 0.5, 1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, edges[0])
	assert.Equal(t, 9.0, edges[2])
	assert.False(t, math.IsNaN(edges[1]))
}

func TestQuantileBinsInputOrderIndependent(t *testing.T) {
	a, err := QuantileBins([]float64{5, 1, 3, 2, 4}, []float64{0, 0.5, 1})
	require.NoError(t, err)
	b, err := QuantileBins([]float64{1, 2, 3, 4, 5}, []float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuantileBinsErrors(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		fractions []float64
	}{
		{name: "no values", values: nil, fractions: []float64{0, 1}},
		{name: "single fraction", values: []float64{1}, fractions: []float64{0.5}},
		{name: "fraction above 1", values: []float64{1, 2}, fractions: []float64{0, 1.5}},
		{name: "fraction below 0", values: []float64{1, 2}, fractions: []float64{-0.1, 1}},
		{name: "not ascending", values: []float64{1, 2}, fractions: []float64{0.5, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QuantileBins(tt.values, tt.fractions)
			assert.Error(t, err)
		})
	}
}

func TestLogShift(t *testing.T) {
	out, nans := LogShift([]float64{0, 1, math.E - 1e-7}, 1e-7)
	require.Len(t, out, 3)
	assert.Equal(t, 0, nans)
	assert.InDelta(t, math.Log(1e-7), out[0], 1e-12)
	assert.InDelta(t, 0.0, out[1], 1e-7)
	assert.InDelta(t, 1.0, out[2], 1e-7)
}

func TestLogShiftNegativeInput(t *testing.T) {
	out, nans := LogShift([]float64{-5, 2}, 1e-7)
	assert.Equal(t, 1, nans)
	assert.True(t, math.IsNaN(out[0]))
	assert.False(t, math.IsNaN(out[1]))
}

func TestFloorLog(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero count floors to ln(1)", in: 0, want: 0},
		{name: "one", in: 1, want: 0},
		{name: "e", in: math.E, want: 1},
		{name: "negative floors to ln(1)", in: -3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FloorLog(tt.in), 1e-12)
		})
	}
}
