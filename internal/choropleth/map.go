package choropleth

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

// buPu is the sequential blue-purple ramp used for the choropleth fill,
// darkest for the highest bin.
var buPu = []string{
	"#edf8fb", "#bfd3e6", "#9ebcda", "#8c96c6",
	"#8c6bb1", "#88419d", "#810f7c", "#4d004b",
}

// MapView holds everything the Leaflet template needs.
type MapView struct {
	CenterLat  float64
	CenterLng  float64
	Zoom       int
	LegendName string
	// GeoJSON is the joined FeatureCollection; Bins and Colors drive the
	// fill scale. All three are pre-serialized JSON.
	GeoJSON template.JS
	Bins    template.JS
	Colors  template.JS
}

// NewMapView assembles the template data for the joined neighbourhood
// counts. Bin edges may contain repeated values (degenerate bins); the style
// function walks edges from the top so a value always lands in exactly one
// bin.
func NewMapView(joined []model.NeighbourhoodCount, bins []float64, centerLat, centerLng float64, zoom int) (*MapView, error) {
	if len(bins) < 2 {
		return nil, eris.Errorf("choropleth: need at least 2 bin edges, got %d", len(bins))
	}

	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(joined))}
	for i, n := range joined {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       fmt.Sprintf("%d", i),
			Geometry: n.Geometry,
			Properties: map[string]interface{}{
				"NEIGHBOURHOOD":   n.Name,
				"CRIME_COUNT":     n.Count,
				"CRIME_COUNT_log": n.LogCount,
			},
		})
	}

	fcJSON, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "choropleth: marshal FeatureCollection")
	}
	binsJSON, err := json.Marshal(bins)
	if err != nil {
		return nil, eris.Wrap(err, "choropleth: marshal bins")
	}
	colorsJSON, err := json.Marshal(rampColors(len(bins) - 1))
	if err != nil {
		return nil, eris.Wrap(err, "choropleth: marshal colors")
	}

	return &MapView{
		CenterLat:  centerLat,
		CenterLng:  centerLng,
		Zoom:       zoom,
		LegendName: "Log Scaled Crime Count",
		GeoJSON:    template.JS(fcJSON),
		Bins:       template.JS(binsJSON),
		Colors:     template.JS(colorsJSON),
	}, nil
}

// rampColors samples n colours evenly from the BuPu ramp.
func rampColors(n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(buPu) {
		return buPu
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = buPu[i*(len(buPu)-1)/max(n-1, 1)]
	}
	return out
}

// WriteMap renders the interactive choropleth document to path.
func WriteMap(path string, view *MapView) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "choropleth: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := mapTemplate.Execute(f, view); err != nil {
		return eris.Wrapf(err, "choropleth: render %s", path)
	}

	zap.L().Info("choropleth map written", zap.String("path", path))
	return nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Vancouver Crime Choropleth</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend { background: white; padding: 8px 10px; line-height: 18px; font: 12px sans-serif; }
  .legend i { width: 14px; height: 14px; float: left; margin-right: 6px; opacity: 0.75; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var neighbourhoods = {{.GeoJSON}};
var bins = {{.Bins}};
var colors = {{.Colors}};

function fillColor(v) {
  // Walk from the top edge down so repeated (zero-width) bins resolve to a
  // single colour.
  for (var i = bins.length - 2; i >= 1; i--) {
    if (v >= bins[i]) { return colors[i]; }
  }
  return colors[0];
}

L.geoJSON(neighbourhoods, {
  style: function (feature) {
    return {
      fillColor: fillColor(feature.properties.CRIME_COUNT_log),
      fillOpacity: 0.75,
      color: '#444',
      weight: 1,
      opacity: 0.2
    };
  },
  onEachFeature: function (feature, layer) {
    layer.bindTooltip(
      '<b>' + feature.properties.NEIGHBOURHOOD + '</b><br>' +
      'Crime Count: ' + feature.properties.CRIME_COUNT
    );
  }
}).addTo(map);

var legend = L.control({position: 'bottomright'});
legend.onAdd = function () {
  var div = L.DomUtil.create('div', 'legend');
  div.innerHTML = '<b>{{.LegendName}}</b><br>';
  for (var i = 0; i < colors.length; i++) {
    div.innerHTML += '<i style="background:' + colors[i] + '"></i> ' +
      bins[i].toFixed(2) + ' &ndash; ' + bins[i + 1].toFixed(2) + '<br>';
  }
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`))
