package geospatial

import (
	"math"
	"testing"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

func TestHaversine_TorontoLondon(t *testing.T) {
	toronto := domain.GeoPoint{Longitude: -79.347, Latitude: 43.651}
	london := domain.GeoPoint{Longitude: -81.25, Latitude: 42.98}

	d := Haversine(toronto, london)
	// Roughly 170 km between the two city centers.
	if d < 160 || d > 180 {
		t.Errorf("distance = %.1f km, expected ~170", d)
	}
	if Haversine(toronto, toronto) != 0 {
		t.Error("distance to self must be zero")
	}
}

func TestFitBounds_ContainsCircle(t *testing.T) {
	center := domain.GeoPoint{Longitude: -81.25, Latitude: 42.98}
	b := FitBounds(center, 50)

	if b.MinLat >= center.Latitude || b.MaxLat <= center.Latitude {
		t.Errorf("latitude bounds do not bracket the center: %+v", b)
	}
	// The box edge must be at least the radius away from the center.
	edge := domain.GeoPoint{Longitude: center.Longitude, Latitude: b.MaxLat}
	if d := Haversine(center, edge); d < 49.9 {
		t.Errorf("north edge only %.1f km out, want >= 50", d)
	}
}

func TestQueriesBounds(t *testing.T) {
	if _, ok := QueriesBounds(nil); ok {
		t.Error("no queries should mean no bounds")
	}

	queries := []domain.Query{
		{Location: domain.GeoPoint{Longitude: -81, Latitude: 43}, RadiusKm: 10},
		{Location: domain.GeoPoint{Longitude: -79, Latitude: 44}, RadiusKm: 10},
	}
	b, ok := QueriesBounds(queries)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinLon > -81 || b.MaxLon < -79 || b.MinLat > 43 || b.MaxLat < 44 {
		t.Errorf("merged bounds do not contain both circles: %+v", b)
	}
	if math.Abs(b.MaxLat-b.MinLat) < 1 {
		t.Errorf("merged latitude span too small: %+v", b)
	}
}
