package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/config"
	"github.com/coastline-analytics/crimeplot/internal/dataset"
	"github.com/coastline-analytics/crimeplot/internal/model"
	"github.com/coastline-analytics/crimeplot/internal/plot"
	"github.com/coastline-analytics/crimeplot/internal/stats"
)

// Pipeline runs the full regression/correlation analysis for one city at a
// time. All knobs come from configuration; nothing is hard-coded in the run
// path.
type Pipeline struct {
	Analysis config.AnalysisConfig
	Datasets config.DatasetsConfig
	PlotsDir string
}

// RunCity produces the complete artifact set for a city: box plot,
// histogram, per-feature raw and log scatters with regression reports, the
// correlation heatmap, and an XLSX summary. Any write failure aborts the
// run; there is no partial-success mode.
func (p *Pipeline) RunCity(city string) ([]model.Artifact, error) {
	log := zap.L().With(zap.String("component", "analysis"), zap.String("city", city))

	censusPath := filepath.Join(p.Datasets.Dir, fmt.Sprintf(p.Datasets.CensusPattern, city))
	obs, err := dataset.LoadCensus(censusPath, p.Analysis.CrimeMetric, p.Analysis.Features)
	if err != nil {
		return nil, err
	}

	filtered := FilterComplete(obs, p.Analysis.Features)
	if len(filtered) < 2 {
		return nil, eris.Wrapf(stats.ErrInsufficientData, "analysis: %d complete observations for %s", len(filtered), city)
	}

	cityDir := filepath.Join(p.PlotsDir, city)
	if err := os.MkdirAll(cityDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "analysis: create output dir %s", cityDir)
	}

	var artifacts []model.Artifact
	record := func(kind, path string) {
		artifacts = append(artifacts, model.Artifact{Kind: kind, Path: path})
	}

	metric := p.Analysis.CrimeMetric
	rates := rateColumn(filtered)

	boxPath := filepath.Join(cityDir, city+"_boxplot.png")
	if err := plot.BoxPlot(boxPath, fmt.Sprintf("Box Plot for %s in %s", metric, city), rates); err != nil {
		return nil, err
	}
	record("boxplot", boxPath)

	histPath := filepath.Join(cityDir, city+"_hist.png")
	if err := plot.Histogram(histPath, fmt.Sprintf("Histogram for %s in %s", metric, city), rates, 10); err != nil {
		return nil, err
	}
	record("histogram", histPath)

	logRates, nans := stats.LogShift(rates, p.Analysis.LogEpsilon)
	if nans > 0 {
		log.Warn("log transform produced NaN values; they propagate to the log-rate statistics",
			zap.Int("nan_rows", nans),
		)
	}

	results := make([]FeatureResult, 0, len(p.Analysis.Features))
	for _, feature := range p.Analysis.Features {
		x := featureColumn(filtered, feature)

		rawFit, err := stats.Linregress(x, rates)
		if err != nil {
			return nil, eris.Wrapf(err, "analysis: fit (%s, %s)", feature, metric)
		}
		logFit, err := stats.Linregress(x, logRates)
		if err != nil {
			return nil, eris.Wrapf(err, "analysis: fit (%s, log(%s))", feature, metric)
		}
		result := FeatureResult{Feature: feature, Raw: rawFit, Log: logFit}
		results = append(results, result)

		scatterPath := filepath.Join(cityDir, feature+"_scatter.png")
		if err := plot.Scatter(scatterPath,
			fmt.Sprintf("Scatter Plot for (%s, %s)", feature, metric),
			feature, metric, x, rates, rawFit.Predictions(x)); err != nil {
			return nil, err
		}
		record("scatter", scatterPath)

		logScatterPath := filepath.Join(cityDir, feature+"_logcrime_scatter.png")
		if err := plot.Scatter(logScatterPath,
			fmt.Sprintf("Scatter Plot for (%s, log(%s))", feature, metric),
			feature, "log_"+metric, x, logRates, logFit.Predictions(x)); err != nil {
			return nil, err
		}
		record("log_scatter", logScatterPath)

		reportPath := filepath.Join(cityDir, feature+"_linregress.txt")
		if err := WriteReport(reportPath, metric, result); err != nil {
			return nil, err
		}
		record("regression_report", reportPath)
	}

	cols := make([][]float64, 0, len(p.Analysis.Features)+1)
	cols = append(cols, logRates)
	labels := make([]string, 0, len(p.Analysis.Features)+1)
	labels = append(labels, "log_"+metric)
	for _, feature := range p.Analysis.Features {
		cols = append(cols, featureColumn(filtered, feature))
		labels = append(labels, feature)
	}

	corr, err := stats.CorrMatrix(cols)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: correlation matrix for %s", city)
	}
	corrPath := filepath.Join(cityDir, city+"_correlation_matrix.png")
	if err := plot.CorrHeatmap(corrPath, fmt.Sprintf("Correlation matrix for %s", city), stats.MaskUpper(corr), labels); err != nil {
		return nil, err
	}
	record("correlation_matrix", corrPath)

	xlsxPath := filepath.Join(cityDir, city+"_regression_summary.xlsx")
	if err := WriteXLSXSummary(xlsxPath, city, results); err != nil {
		return nil, err
	}
	record("xlsx_summary", xlsxPath)

	log.Info("city analysis complete",
		zap.Int("observations", len(filtered)),
		zap.Int("artifacts", len(artifacts)),
	)
	return artifacts, nil
}
