package mapview

// Stop is one control point of a piecewise interpolation.
type Stop struct {
	In  float64
	Out float64
}

// lerp evaluates a piecewise-linear curve over the given stops. Inputs
// outside the stop range clamp to the boundary outputs; the curve never
// extrapolates.
func lerp(stops []Stop, x float64) float64 {
	if len(stops) == 0 {
		return 0
	}
	if x <= stops[0].In {
		return stops[0].Out
	}
	last := stops[len(stops)-1]
	if x >= last.In {
		return last.Out
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if x <= hi.In {
			t := (x - lo.In) / (hi.In - lo.In)
			return lo.Out + t*(hi.Out-lo.Out)
		}
	}
	return last.Out
}

// RGBA is a color expressed the way map styles spell it out.
type RGBA struct {
	R, G, B float64
	A       float64
}

// ColorStop pairs an input value with a color.
type ColorStop struct {
	In    float64
	Color RGBA
}

// lerpColor interpolates each channel linearly over the color stops, with the
// same clamping semantics as lerp.
func lerpColor(stops []ColorStop, x float64) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	if x <= stops[0].In {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if x >= last.In {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if x <= hi.In {
			t := (x - lo.In) / (hi.In - lo.In)
			return RGBA{
				R: lo.Color.R + t*(hi.Color.R-lo.Color.R),
				G: lo.Color.G + t*(hi.Color.G-lo.Color.G),
				B: lo.Color.B + t*(hi.Color.B-lo.Color.B),
				A: lo.Color.A + t*(hi.Color.A-lo.Color.A),
			}
		}
	}
	return last.Color
}

// interpolate builds a style-spec interpolate expression:
// ["interpolate", ["linear"], input, in1, out1, in2, out2, ...].
func interpolate(input any, stops ...any) []any {
	expr := []any{"interpolate", []any{"linear"}, input}
	return append(expr, stops...)
}

func zoom() []any         { return []any{"zoom"} }
func get(prop string) any { return []any{"get", prop} }
