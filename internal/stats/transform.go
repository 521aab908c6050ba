package stats

import "math"

// LogShift returns ln(x+eps) for every element. The shift keeps ln(0) finite
// for zero rates while leaving positive values essentially unchanged.
// Inputs below -eps produce NaN, which propagates to downstream statistics;
// callers that care count them via the second return value.
func LogShift(xs []float64, eps float64) ([]float64, int) {
	out := make([]float64, len(xs))
	var nans int
	for i, x := range xs {
		out[i] = math.Log(x + eps)
		if math.IsNaN(out[i]) {
			nans++
		}
	}
	return out, nans
}

// FloorLog returns ln(max(v, 1)): the log crime count used for choropleth
// shading, floored at zero so count-0 neighbourhoods still land in the
// lowest colour bin instead of producing -Inf.
func FloorLog(v float64) float64 {
	if v < 1 {
		v = 1
	}
	return math.Log(v)
}
