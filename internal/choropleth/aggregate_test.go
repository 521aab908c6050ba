package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/coastline-analytics/crimeplot/internal/config"
	"github.com/coastline-analytics/crimeplot/internal/model"
)

func testConfig() config.ChoroplethConfig {
	return config.ChoroplethConfig{
		TargetYear:     2021,
		ExcludedRegion: "Stanley Park",
		Renames: map[string]string{
			"Central Business District": "Downtown",
			"Musqueam":                  "Dunbar Southlands",
		},
		Quantiles: []float64{0, 0.20, 0.40, 0.60, 0.95, 1.0},
	}
}

func TestCountByNeighbourhood(t *testing.T) {
	events := []model.Incident{
		{Neighbourhood: "Downtown", Year: 2021},
		{Neighbourhood: "Central Business District", Year: 2021},
		{Neighbourhood: "Stanley Park", Year: 2021},
		{Neighbourhood: "X", Year: 2020},
	}

	counts := CountByNeighbourhood(events, testConfig())

	assert.Equal(t, map[string]int{"Downtown": 2}, counts)
}

func TestCountByNeighbourhoodRenameThenExclude(t *testing.T) {
	// The rename table applies before the exclusion and year filters.
	events := []model.Incident{
		{Neighbourhood: "Musqueam", Year: 2021},
		{Neighbourhood: "Musqueam", Year: 2019},
		{Neighbourhood: "Dunbar Southlands", Year: 2021},
	}

	counts := CountByNeighbourhood(events, testConfig())

	assert.Equal(t, map[string]int{"Dunbar Southlands": 2}, counts)
}

func TestCountByNeighbourhoodOrderIndependent(t *testing.T) {
	events := []model.Incident{
		{Neighbourhood: "A", Year: 2021},
		{Neighbourhood: "B", Year: 2021},
		{Neighbourhood: "A", Year: 2021},
	}
	reversed := []model.Incident{events[2], events[1], events[0]}

	assert.Equal(t,
		CountByNeighbourhood(events, testConfig()),
		CountByNeighbourhood(reversed, testConfig()),
	)
}

func testBoundary(name string) model.Boundary {
	g := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0}, []int{8})
	return model.Boundary{Name: name, Geometry: g}
}

func TestJoinCounts(t *testing.T) {
	boundaries := []model.Boundary{
		testBoundary("Kitsilano"),
		testBoundary("Downtown"),
		testBoundary("Sunset"),
	}
	counts := map[string]int{"Downtown": 7, "Ghost Town": 3}

	joined := JoinCounts(boundaries, counts)
	require.Len(t, joined, 3)

	byName := make(map[string]model.NeighbourhoodCount)
	for _, n := range joined {
		byName[n.Name] = n
	}

	assert.Equal(t, 7, byName["Downtown"].Count)
	assert.Equal(t, 0, byName["Kitsilano"].Count)
	assert.Equal(t, 0, byName["Sunset"].Count)

	// Floored log: zero counts render at ln(1), not -Inf.
	assert.Equal(t, 0.0, byName["Kitsilano"].LogCount)
	assert.Greater(t, byName["Downtown"].LogCount, 0.0)

	// Counts with no boundary polygon do not appear.
	_, present := byName["Ghost Town"]
	assert.False(t, present)

	// Output ordered by name for stable rendering.
	assert.Equal(t, "Downtown", joined[0].Name)
	assert.Equal(t, "Kitsilano", joined[1].Name)
	assert.Equal(t, "Sunset", joined[2].Name)
}

func TestBinEdgesDegenerate(t *testing.T) {
	var joined []model.NeighbourhoodCount
	for i := 0; i < 8; i++ {
		joined = append(joined, model.NeighbourhoodCount{Name: "Z", Count: 0, LogCount: 0})
	}
	joined = append(joined,
		model.NeighbourhoodCount{Name: "A", Count: 10, LogCount: 2.3},
		model.NeighbourhoodCount{Name: "B", Count: 100, LogCount: 4.6},
	)

	edges, err := BinEdges(joined, testConfig().Quantiles)
	require.NoError(t, err)
	require.Len(t, edges, 6)

	assert.Equal(t, edges[0], edges[1])
	for i := 1; i < len(edges); i++ {
		assert.GreaterOrEqual(t, edges[i], edges[i-1])
	}
}
