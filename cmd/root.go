package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/config"
	"github.com/coastline-analytics/crimeplot/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "crimeplot",
	Short: "Vancouver crime and demographics analysis",
	Long:  "Joins VPD crime data with census demographics, fits per-feature regressions, and renders plots, reports, and a neighbourhood choropleth map.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens the configured run-history backend with migrations applied.
func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
