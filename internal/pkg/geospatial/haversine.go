package geospatial

import (
	"math"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in kilometers between two points.
func Haversine(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FitBounds returns the bounding box that contains a query's collection
// circle, used by the frontend to frame the map on a single query.
func FitBounds(center domain.GeoPoint, radiusKm float64) domain.Bounds {
	latDelta := radiusKm / 111.32
	lonDelta := radiusKm / (111.32 * math.Cos(toRad(center.Latitude)))

	return domain.Bounds{
		MinLat: center.Latitude - latDelta,
		MinLon: center.Longitude - lonDelta,
		MaxLat: center.Latitude + latDelta,
		MaxLon: center.Longitude + lonDelta,
	}
}

// MergeBounds grows a into the smallest box containing both a and b.
func MergeBounds(a, b domain.Bounds) domain.Bounds {
	return domain.Bounds{
		MinLat: math.Min(a.MinLat, b.MinLat),
		MinLon: math.Min(a.MinLon, b.MinLon),
		MaxLat: math.Max(a.MaxLat, b.MaxLat),
		MaxLon: math.Max(a.MaxLon, b.MaxLon),
	}
}

// QueriesBounds frames every query circle at once. Returns false when there
// is nothing to frame and the default viewport should be used instead.
func QueriesBounds(queries []domain.Query) (domain.Bounds, bool) {
	if len(queries) == 0 {
		return domain.Bounds{}, false
	}
	bounds := FitBounds(queries[0].Location, queries[0].RadiusKm)
	for _, q := range queries[1:] {
		bounds = MergeBounds(bounds, FitBounds(q.Location, q.RadiusKm))
	}
	return bounds, true
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
