package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

// LoadCensus reads a joined crime+census GeoJSON file into observations.
// Each feature carries the crime metric plus the demographic ratio
// properties; a property that is absent or JSON null is recorded as missing
// so the completeness filter can drop the row.
func LoadCensus(path, crimeMetric string, features []string) ([]model.Observation, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load census %s", path)
	}

	obs := make([]model.Observation, 0, len(fc.Features))
	for i, f := range fc.Features {
		o := model.Observation{
			AreaID:   f.ID,
			Features: make(map[string]float64, len(features)),
			Geometry: f.Geometry,
		}
		if o.AreaID == "" {
			o.AreaID = fmt.Sprintf("area-%d", i)
		}

		rate, ok := numericProperty(f.Properties, crimeMetric)
		if !ok {
			return nil, eris.Errorf("dataset: feature %d missing crime metric %q in %s", i, crimeMetric, path)
		}
		o.CrimeRate = rate

		for _, name := range features {
			if v, ok := numericProperty(f.Properties, name); ok {
				o.Features[name] = v
			}
		}
		obs = append(obs, o)
	}

	zap.L().Info("census dataset loaded",
		zap.String("path", path),
		zap.Int("areas", len(obs)),
	)
	return obs, nil
}

// LoadBoundariesGeoJSON reads neighbourhood boundary polygons keyed by the
// given name property. Duplicate names keep the last geometry seen.
func LoadBoundariesGeoJSON(path, nameProperty string) ([]model.Boundary, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load boundaries %s", path)
	}

	seen := make(map[string]int, len(fc.Features))
	var boundaries []model.Boundary
	for i, f := range fc.Features {
		name, ok := f.Properties[nameProperty].(string)
		if !ok || name == "" {
			return nil, eris.Errorf("dataset: feature %d missing %q property in %s", i, nameProperty, path)
		}
		if idx, dup := seen[name]; dup {
			zap.L().Warn("duplicate boundary name, keeping last geometry", zap.String("name", name))
			boundaries[idx].Geometry = f.Geometry
			continue
		}
		seen[name] = len(boundaries)
		boundaries = append(boundaries, model.Boundary{Name: name, Geometry: f.Geometry})
	}

	zap.L().Info("boundary dataset loaded",
		zap.String("path", path),
		zap.Int("polygons", len(boundaries)),
	)
	return boundaries, nil
}

// readFeatureCollection parses a GeoJSON FeatureCollection from disk.
func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read file")
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, eris.Wrap(err, "parse GeoJSON")
	}
	return &fc, nil
}

// numericProperty extracts a float property, treating absent values and JSON
// null as missing.
func numericProperty(props map[string]interface{}, key string) (float64, bool) {
	v, ok := props[key]
	if !ok || v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
