package choropleth

import (
	"sort"

	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/config"
	"github.com/coastline-analytics/crimeplot/internal/model"
	"github.com/coastline-analytics/crimeplot/internal/stats"
)

// CountByNeighbourhood reduces point-level incidents to per-neighbourhood
// counts for the configured reporting year. Names in the rename table are
// canonicalized first (the police extract folds some census areas together),
// then events in the excluded region are dropped, then the year filter
// applies, then the survivors are grouped and counted. The result is
// deterministic and order-independent.
func CountByNeighbourhood(events []model.Incident, cfg config.ChoroplethConfig) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		name := e.Neighbourhood
		if canonical, ok := cfg.Renames[name]; ok {
			name = canonical
		}
		if name == cfg.ExcludedRegion {
			continue
		}
		if e.Year != cfg.TargetYear {
			continue
		}
		counts[name]++
	}

	zap.L().Info("incidents aggregated",
		zap.Int("events", len(events)),
		zap.Int("year", cfg.TargetYear),
		zap.Int("neighbourhoods", len(counts)),
	)
	return counts
}

// JoinCounts left-joins the aggregated counts onto the boundary polygons.
// Every boundary appears in the output exactly once, in name order;
// boundaries with no matching events get count 0 with the log floored at
// ln(1), so they still render in the lowest colour bin.
func JoinCounts(boundaries []model.Boundary, counts map[string]int) []model.NeighbourhoodCount {
	joined := make([]model.NeighbourhoodCount, 0, len(boundaries))
	for _, b := range boundaries {
		c := counts[b.Name]
		joined = append(joined, model.NeighbourhoodCount{
			Name:     b.Name,
			Count:    c,
			LogCount: stats.FloorLog(float64(c)),
			Geometry: b.Geometry,
		})
	}
	sort.Slice(joined, func(i, j int) bool { return joined[i].Name < joined[j].Name })
	return joined
}

// BinEdges computes the choropleth colour-bin edges from the joined log
// counts at the configured quantile fractions.
func BinEdges(joined []model.NeighbourhoodCount, fractions []float64) ([]float64, error) {
	logs := make([]float64, len(joined))
	for i, n := range joined {
		logs[i] = n.LogCount
	}
	return stats.QuantileBins(logs, fractions)
}
