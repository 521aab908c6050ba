package main

import (
	"context"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/analysis"
	"github.com/coastline-analytics/crimeplot/internal/store"
)

var plotsCmd = &cobra.Command{
	Use:   "plots",
	Short: "Run the regression and correlation analysis",
	Long:  "Fits each demographic feature against the crime rate and its log transform, then writes scatter plots, regression reports, the correlation heatmap, and an XLSX summary per city.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cities := cfg.Analysis.Cities
		if city, _ := cmd.Flags().GetString("city"); city != "" {
			cities = []string{city}
		}

		return runPlots(ctx, st, cities)
	},
}

// runPlots executes the analysis pipeline for each city, recording every run
// in the history store and dropping a manifest next to the artifacts.
func runPlots(ctx context.Context, st store.Store, cities []string) error {
	p := &analysis.Pipeline{
		Analysis: cfg.Analysis,
		Datasets: cfg.Datasets,
		PlotsDir: cfg.Output.PlotsDir,
	}

	for _, city := range cities {
		run, err := st.CreateRun(ctx, "plots", city)
		if err != nil {
			return err
		}

		artifacts, err := p.RunCity(city)
		if err != nil {
			if failErr := st.FailRun(ctx, run.ID, err); failErr != nil {
				zap.L().Warn("record run failure", zap.Error(failErr))
			}
			return eris.Wrapf(err, "plots: city %s", city)
		}

		if err := st.CompleteRun(ctx, run.ID, artifacts); err != nil {
			return err
		}
		if err := writeManifest(filepath.Join(cfg.Output.PlotsDir, city), run, artifacts); err != nil {
			return err
		}

		zap.L().Info("plots pipeline complete",
			zap.String("city", city),
			zap.String("run_id", run.ID),
			zap.Int("artifacts", len(artifacts)),
		)
	}
	return nil
}

func init() {
	plotsCmd.Flags().String("city", "", "run a single city instead of the configured list")
	rootCmd.AddCommand(plotsCmd)
}
