package domain

import "encoding/json"

// Feature is a single GeoJSON feature. Geometry and properties are kept loose
// on purpose: the collection backend owns the shape, we only ever read Point
// coordinates and the score/id properties.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   Geometry        `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// Geometry is the GeoJSON geometry of a feature. Coordinates for a Point are
// [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PointProperties are the properties attached to every tweet point feature.
type PointProperties struct {
	Score float64 `json:"score"`
	ID    string  `json:"id"`
}

// FeatureCollection is the map layer payload. It is treated as an opaque,
// replace-wholesale value: a new fetch replaces the whole collection, nothing
// is ever patched in place.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Point reports whether the feature is a Point with usable properties, and if
// so decodes them.
func (f Feature) Point() (PointProperties, GeoPoint, bool) {
	if f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) < 2 || len(f.Properties) == 0 {
		return PointProperties{}, GeoPoint{}, false
	}
	var props PointProperties
	if err := json.Unmarshal(f.Properties, &props); err != nil {
		return PointProperties{}, GeoPoint{}, false
	}
	loc := GeoPoint{Longitude: f.Geometry.Coordinates[0], Latitude: f.Geometry.Coordinates[1]}
	return props, loc, true
}
