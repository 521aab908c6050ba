package stats

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a regression is requested for fewer
// than two points or for a predictor with zero variance. Matched with
// errors.Is.
var ErrInsufficientData = eris.New("stats: insufficient data for regression")

// Fit is an ordinary-least-squares fit of y against x.
type Fit struct {
	Slope           float64
	Intercept       float64
	R               float64
	PValue          float64
	StderrSlope     float64
	StderrIntercept float64
	N               int
}

// Predict returns slope*x + intercept.
func (f Fit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Predictions returns the fitted value for every element of xs.
func (f Fit) Predictions(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f.Predict(x)
	}
	return out
}

// Linregress computes the OLS fit of y against x: slope, intercept, Pearson
// correlation coefficient, the two-sided p-value for the null hypothesis that
// the slope is zero (Student's t with n-2 degrees of freedom), and the
// standard errors of slope and intercept.
//
// Variances below use the biased (1/n) normalization so the standard errors
// reduce to the familiar sqrt((1-r^2) * var(y) / var(x) / (n-2)) form.
func Linregress(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, eris.Errorf("stats: length mismatch: len(x)=%d len(y)=%d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Fit{}, eris.Wrapf(ErrInsufficientData, "n=%d", n)
	}

	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - xMean
		dy := y[i] - yMean
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	nf := float64(n)
	sxx /= nf
	syy /= nf
	sxy /= nf

	if sxx == 0 {
		return Fit{}, eris.Wrap(ErrInsufficientData, "zero variance in x")
	}

	fit := Fit{N: n}
	fit.Slope = sxy / sxx
	fit.Intercept = yMean - fit.Slope*xMean

	if syy == 0 {
		// y is constant: perfect horizontal fit, no correlation defined.
		fit.PValue = 1
		return fit, nil
	}

	fit.R = sxy / math.Sqrt(sxx*syy)
	// Guard rounding past the valid range before the t statistic.
	if fit.R > 1 {
		fit.R = 1
	} else if fit.R < -1 {
		fit.R = -1
	}

	df := nf - 2
	if df <= 0 {
		// Exactly two points: the line is exact, the test is degenerate.
		fit.PValue = 1
		return fit, nil
	}

	onemr2 := (1 - fit.R) * (1 + fit.R)
	if onemr2 <= 0 {
		fit.PValue = 0
	} else {
		t := fit.R * math.Sqrt(df/onemr2)
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		fit.PValue = 2 * dist.CDF(-math.Abs(t))
	}

	fit.StderrSlope = math.Sqrt(onemr2 * syy / sxx / df)
	fit.StderrIntercept = fit.StderrSlope * math.Sqrt(sxx+xMean*xMean)

	return fit, nil
}
