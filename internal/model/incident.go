package model

import "github.com/twpayne/go-geom"

// Incident is one reported crime event from the police open-data extract.
// Only the columns the spatial pipeline consumes are decoded; the extract's
// remaining columns (type, block, coordinates) are ignored.
type Incident struct {
	Neighbourhood string `csv:"NEIGHBOURHOOD"`
	Year          int    `csv:"YEAR"`
}

// Boundary is one neighbourhood polygon from the local-area-boundary dataset,
// keyed by its canonical name.
type Boundary struct {
	Name     string `json:"name"`
	Geometry geom.T `json:"-"`
}

// NeighbourhoodCount is the per-neighbourhood aggregate joined onto a
// boundary polygon. Count defaults to 0 for boundaries with no matching
// events; LogCount is floored at ln(1) so zero-count polygons still render.
type NeighbourhoodCount struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	LogCount float64 `json:"log_count"`
	Geometry geom.T  `json:"-"`
}
