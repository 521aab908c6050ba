package model

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Observation is one geographic sub-area from a joined crime+census dataset:
// the crime metric for the area plus its demographic ratio columns. The
// polygon geometry is carried only for GeoJSON round-tripping; no statistic
// reads it.
type Observation struct {
	AreaID    string             `json:"area_id,omitempty"`
	CrimeRate float64            `json:"crime_rate"`
	Features  map[string]float64 `json:"features"`
	Geometry  geom.T             `json:"-"`
}

// Feature returns the named demographic value and whether it is present.
// A NaN stored under the name counts as missing.
func (o Observation) Feature(name string) (float64, bool) {
	v, ok := o.Features[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Complete reports whether every named demographic attribute is present.
func (o Observation) Complete(names []string) bool {
	for _, n := range names {
		if _, ok := o.Feature(n); !ok {
			return false
		}
	}
	return true
}
