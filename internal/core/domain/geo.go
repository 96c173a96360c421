package domain

import "fmt"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Validate checks the coordinate ranges. Out-of-range values are reported,
// never clamped; the map picker hands through whatever the drag produced and
// validation is the form's job.
func (p GeoPoint) Validate() error {
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %.6f out of range [-180,180]", p.Longitude)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %.6f out of range [-90,90]", p.Latitude)
	}
	return nil
}

// Viewport is the shared map view state: a center point and a zoom level.
type Viewport struct {
	Center GeoPoint `json:"center"`
	Zoom   float64  `json:"zoom"`
}

// DefaultViewport is where every map view opens before any user interaction.
func DefaultViewport() Viewport {
	return Viewport{
		Center: GeoPoint{Longitude: -79.347, Latitude: 43.651},
		Zoom:   5,
	}
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}
