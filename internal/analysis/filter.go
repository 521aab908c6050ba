// Package analysis runs the regression/correlation pipeline: it filters the
// joined crime+census observations, fits each demographic feature against the
// crime metric and its log transform, and writes the plot, report, and
// summary artifacts for a city.
package analysis

import (
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

// FilterComplete returns only the observations that carry every named
// demographic attribute. No imputation: a single missing ratio drops the
// row. The filter runs once, before any statistic, so every reported number
// shares the same sample.
func FilterComplete(obs []model.Observation, features []string) []model.Observation {
	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Complete(features) {
			out = append(out, o)
		}
	}
	if dropped := len(obs) - len(out); dropped > 0 {
		zap.L().Info("dropped incomplete observations",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(out)),
		)
	}
	return out
}

// rateColumn extracts the crime metric from the filtered sample.
func rateColumn(obs []model.Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.CrimeRate
	}
	return out
}

// featureColumn extracts one demographic feature from the filtered sample.
// The sample must already be complete for the feature.
func featureColumn(obs []model.Observation, name string) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		v, _ := o.Feature(name)
		out[i] = v
	}
	return out
}
