package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/dataset"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the public source datasets",
	Long:  "Downloads the VPD incident archive and the neighbourhood boundary export into the configured datasets directory. Requests are rate-limited to stay polite to the open-data portals.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		f := dataset.NewFetcher(&http.Client{Timeout: 5 * time.Minute})

		sources := []struct {
			url      string
			filename string
		}{
			{cfg.Datasets.IncidentsURL, cfg.Datasets.Incidents},
			{cfg.Datasets.BoundariesURL, cfg.Datasets.Boundaries},
		}

		for _, src := range sources {
			path, err := f.Fetch(ctx, src.url, cfg.Datasets.Dir, src.filename)
			if err != nil {
				return err
			}
			zap.L().Info("dataset fetched",
				zap.String("url", src.url),
				zap.String("path", path),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
