package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/choropleth"
	"github.com/coastline-analytics/crimeplot/internal/dataset"
	"github.com/coastline-analytics/crimeplot/internal/model"
	"github.com/coastline-analytics/crimeplot/internal/store"
)

var choroplethCmd = &cobra.Command{
	Use:   "choropleth",
	Short: "Build the neighbourhood crime choropleth map",
	Long:  "Counts incidents per neighbourhood for the target year, joins the counts onto the boundary polygons, and writes a self-contained Leaflet HTML map colored by quantile-binned log counts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		return runChoropleth(ctx, st)
	},
}

// runChoropleth executes the spatial aggregation pipeline and records the run.
func runChoropleth(ctx context.Context, st store.Store) error {
	run, err := st.CreateRun(ctx, "choropleth", "van")
	if err != nil {
		return err
	}

	artifacts, err := buildChoropleth()
	if err != nil {
		if failErr := st.FailRun(ctx, run.ID, err); failErr != nil {
			zap.L().Warn("record run failure", zap.Error(failErr))
		}
		return err
	}

	if err := st.CompleteRun(ctx, run.ID, artifacts); err != nil {
		return err
	}

	zap.L().Info("choropleth pipeline complete",
		zap.String("run_id", run.ID),
		zap.String("map", cfg.Output.MapFile),
	)
	return nil
}

func buildChoropleth() ([]model.Artifact, error) {
	incidentsPath := filepath.Join(cfg.Datasets.Dir, cfg.Datasets.Incidents)
	incidents, err := dataset.LoadIncidents(incidentsPath, cfg.Datasets.Encoding)
	if err != nil {
		return nil, err
	}

	counts := choropleth.CountByNeighbourhood(incidents, cfg.Choropleth)

	boundaries, err := loadBoundaries(filepath.Join(cfg.Datasets.Dir, cfg.Datasets.Boundaries))
	if err != nil {
		return nil, err
	}

	joined := choropleth.JoinCounts(boundaries, counts)
	edges, err := choropleth.BinEdges(joined, cfg.Choropleth.Quantiles)
	if err != nil {
		return nil, eris.Wrap(err, "choropleth: bin edges")
	}

	view, err := choropleth.NewMapView(joined, edges,
		cfg.Choropleth.CenterLat, cfg.Choropleth.CenterLng, cfg.Choropleth.Zoom)
	if err != nil {
		return nil, err
	}
	if err := choropleth.WriteMap(cfg.Output.MapFile, view); err != nil {
		return nil, err
	}

	return []model.Artifact{{Kind: "map", Path: cfg.Output.MapFile}}, nil
}

// loadBoundaries dispatches on file extension: ESRI shapefiles and GeoJSON
// boundary exports both work.
func loadBoundaries(path string) ([]model.Boundary, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return dataset.LoadBoundariesShapefile(path, cfg.Datasets.BoundaryName)
	}
	return dataset.LoadBoundariesGeoJSON(path, cfg.Datasets.BoundaryName)
}

func init() {
	rootCmd.AddCommand(choroplethCmd)
}
