package mapview

import (
	"fmt"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

// Zoom thresholds for the two-layer crossfade: density fades out over zoom
// 7→9 while the scored circles fade in over 7→8.
const (
	DensityMaxZoom = 9
	PointMinZoom   = 7
)

// densityWeightStops map a feature's score onto heatmap weight. Scores above
// the last stop clamp to weight 1; a 500-score outlier heats the map no more
// than a 6.
var densityWeightStops = []Stop{{In: 0, Out: 0}, {In: 6, Out: 1}}

var (
	densityIntensityStops = []Stop{{In: 0, Out: 1}, {In: 10, Out: 3}}
	densityRadiusStops    = []Stop{{In: 0, Out: 2}, {In: 10, Out: 20}}
	densityOpacityStops   = []Stop{{In: 7, Out: 1}, {In: 9, Out: 0}}
	pointOpacityStops     = []Stop{{In: 7, Out: 0}, {In: 8, Out: 1}}
)

// pointRadiusStops are the (zoom, score) → px control points of the circle
// radius. Both axes interpolate; outside the grid the boundary rows clamp.
var pointRadiusStops = struct {
	ZoomLo, ZoomHi float64
	Lo, Hi         []Stop
}{
	ZoomLo: 15,
	ZoomHi: 22,
	Lo:     []Stop{{In: 1, Out: 5}, {In: 62, Out: 10}},
	Hi:     []Stop{{In: 1, Out: 20}, {In: 62, Out: 50}},
}

var pointColorStops = []ColorStop{
	{In: 10, Color: RGBA{33, 102, 172, 0}},
	{In: 20, Color: RGBA{103, 169, 207, 1}},
	{In: 30, Color: RGBA{209, 229, 240, 1}},
	{In: 40, Color: RGBA{253, 219, 199, 1}},
	{In: 50, Color: RGBA{239, 138, 98, 1}},
	{In: 500, Color: RGBA{178, 24, 43, 1}},
	{In: 1000, Color: RGBA{255, 201, 101, 1}},
}

// DensityWeight is the heatmap weight for a score.
func DensityWeight(score float64) float64 { return lerp(densityWeightStops, score) }

// DensityOpacity is the heatmap layer opacity at a zoom level: 1 up to zoom
// 7, 0 from zoom 9.
func DensityOpacity(z float64) float64 { return lerp(densityOpacityStops, z) }

// DensityRadius is the heatmap kernel radius in px at a zoom level.
func DensityRadius(z float64) float64 { return lerp(densityRadiusStops, z) }

// PointOpacity is the circle layer opacity at a zoom level, fading in across
// the one-level crossfade with the density layer.
func PointOpacity(z float64) float64 { return lerp(pointOpacityStops, z) }

// PointRadius is the drawn circle radius for a (zoom, score) pair. Score
// interpolates within each zoom row, then the rows interpolate over zoom.
func PointRadius(z, score float64) float64 {
	lo := lerp(pointRadiusStops.Lo, score)
	hi := lerp(pointRadiusStops.Hi, score)
	return lerp([]Stop{{In: pointRadiusStops.ZoomLo, Out: lo}, {In: pointRadiusStops.ZoomHi, Out: hi}}, z)
}

// PointColor is the circle fill color for a score.
func PointColor(score float64) RGBA { return lerpColor(pointColorStops, score) }

// Layer is a map style layer in the style-spec JSON shape the browser map
// consumes directly.
type Layer struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Source  string         `json:"source"`
	MinZoom float64        `json:"minzoom,omitempty"`
	MaxZoom float64        `json:"maxzoom,omitempty"`
	Paint   map[string]any `json:"paint"`
}

func (c RGBA) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d,%d,%d)", int(c.R), int(c.G), int(c.B))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", int(c.R), int(c.G), int(c.B), c.A)
}

func colorRamp(stops []ColorStop) []any {
	out := make([]any, 0, len(stops)*2)
	for _, s := range stops {
		out = append(out, s.In, s.Color.String())
	}
	return out
}

// densityLayer is the aggregate heatmap, active below DensityMaxZoom.
func densityLayer(source string) Layer {
	return Layer{
		ID:      "heatmap-heat",
		Type:    "heatmap",
		Source:  source,
		MaxZoom: DensityMaxZoom,
		Paint: map[string]any{
			"heatmap-weight":    interpolate(get("score"), 0, 0, 6, 1),
			"heatmap-intensity": interpolate(zoom(), 0, 1, 10, 3),
			"heatmap-color": interpolate([]any{"heatmap-density"},
				0, "rgba(33,102,172,0)",
				0.2, "rgb(103,169,207)",
				0.4, "rgb(209,229,240)",
				0.6, "rgb(253,219,199)",
				0.8, "rgb(239,138,98)",
				1, "rgb(255,201,101)",
			),
			"heatmap-radius":  interpolate(zoom(), 0, 2, 10, 20),
			"heatmap-opacity": interpolate(zoom(), 7, 1, 9, 0),
		},
	}
}

// pointLayer draws the discrete scored circles, active from PointMinZoom up.
func pointLayer(source string) Layer {
	return Layer{
		ID:      "tweet-point",
		Type:    "circle",
		Source:  source,
		MinZoom: PointMinZoom,
		Paint: map[string]any{
			"circle-radius": map[string]any{
				"property": "score",
				"type":     "exponential",
				"stops": []any{
					[]any{map[string]any{"zoom": 15, "value": 1}, 5},
					[]any{map[string]any{"zoom": 15, "value": 62}, 10},
					[]any{map[string]any{"zoom": 22, "value": 1}, 20},
					[]any{map[string]any{"zoom": 22, "value": 62}, 50},
				},
			},
			"circle-color":        append(interpolate(get("score")), colorRamp(pointColorStops)...),
			"circle-stroke-color": "white",
			"circle-stroke-width": 1,
			"circle-opacity":      interpolate(zoom(), 7, 0, 8, 1),
		},
	}
}

// Layers returns the stacked style layers for a feature collection. A nil
// collection (fetch unresolved or failed) renders nothing: base tiles only.
func Layers(fc *domain.FeatureCollection) []Layer {
	if fc == nil {
		return nil
	}
	const source = "tweets"
	return []Layer{densityLayer(source), pointLayer(source)}
}
