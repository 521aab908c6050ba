package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const censusFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"crime_rate": 0.5, "pop_density": 120.5, "divorce_rate": 0.1},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"crime_rate": 1.25, "pop_density": null, "divorce_rate": 0.2},
      "geometry": {"type": "Polygon", "coordinates": [[[1,1],[2,1],[2,2],[1,1]]]}
    }
  ]
}`

const boundaryFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Downtown"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Kitsilano"},
      "geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,2]]]}
    }
  ]
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCensus(t *testing.T) {
	path := writeFixture(t, "crime_census_van.geojson", censusFixture)

	obs, err := LoadCensus(path, "crime_rate", []string{"pop_density", "divorce_rate"})
	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, 0.5, obs[0].CrimeRate)
	v, ok := obs[0].Feature("pop_density")
	assert.True(t, ok)
	assert.Equal(t, 120.5, v)
	assert.True(t, obs[0].Complete([]string{"pop_density", "divorce_rate"}))

	// JSON null counts as missing.
	_, ok = obs[1].Feature("pop_density")
	assert.False(t, ok)
	assert.False(t, obs[1].Complete([]string{"pop_density", "divorce_rate"}))
	assert.NotNil(t, obs[0].Geometry)
}

func TestLoadCensusMissingMetric(t *testing.T) {
	path := writeFixture(t, "bad.geojson", boundaryFixture)
	_, err := LoadCensus(path, "crime_rate", []string{"pop_density"})
	assert.Error(t, err)
}

func TestLoadBoundariesGeoJSON(t *testing.T) {
	path := writeFixture(t, "vancouver.geojson", boundaryFixture)

	boundaries, err := LoadBoundariesGeoJSON(path, "name")
	require.NoError(t, err)
	require.Len(t, boundaries, 2)

	assert.Equal(t, "Downtown", boundaries[0].Name)
	assert.Equal(t, "Kitsilano", boundaries[1].Name)
	assert.NotNil(t, boundaries[0].Geometry)
}

func TestLoadBoundariesMissingFile(t *testing.T) {
	_, err := LoadBoundariesGeoJSON(filepath.Join(t.TempDir(), "nope.geojson"), "name")
	assert.Error(t, err)
}
