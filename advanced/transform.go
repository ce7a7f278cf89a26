package advanced

import (
	"math"

	"github.com/osuushi/clearance/internal"
	"gonum.org/v1/gonum/spatial/r2"
)

// Track gauge of the narrow (Cape) gauge lines the envelope rules were taken
// from.
const NarrowGaugeMM = 1067

// Curve widening is inversely proportional to the radius. The upper envelope of
// electrified lines widens by exactly half as much as the general envelope.
const (
	generalWideningFactor = 23000
	upperWideningFactor   = 11500
)

// Angle of the rail plane in radians for a cant over the given gauge. Negative
// cant tilts the other way, and the result is always within (-π/2, π/2).
func CantAngle(cantMM, gaugeMM float64) float64 {
	return math.Atan(cantMM / gaugeMM)
}

// Lateral widening of the general envelope on a curve, in mm. Tangent track (a
// radius of 0) is not widened.
func GeneralWidening(radiusM float64) float64 {
	if radiusM <= 0 {
		return 0
	}
	return generalWideningFactor / radiusM
}

// Lateral widening of the upper envelope on electrified lines, in mm.
func UpperWidening(radiusM float64) float64 {
	if radiusM <= 0 {
		return 0
	}
	return upperWideningFactor / radiusM
}

// Map a point measured from the track centre into the rail-centre frame of a
// canted track. This is not a rotation: x only picks up the height's lateral
// shift, and is not scaled by cos.
func PointToRailCenter(offsetMM, heightMM, cantMM float64) Point {
	return railCenter(offsetMM, heightMM, CantAngle(cantMM, NarrowGaugeMM))
}

func railCenter(offsetMM, heightMM, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: offsetMM - heightMM*sin,
		Y: heightMM * cos,
	}
}

// Widen every vertex of the envelope away from the centre line for the curve
// radius, then rotate the result about the rail centre by the cant angle.
// Vertices on the centre line are not widened. The order matters: widening is
// horizontal in the unrotated frame.
//
// This returns a new polygon, wound counterclockwise whichever way the input
// runs. The input is validated first. Degenerate or self-crossing polygons
// panic.
func TransformEnvelope(poly Polygon, cantMM, radiusM float64) Polygon {
	checkFinite("cant", cantMM)
	checkRadius(radiusM)
	widening := GeneralWidening(radiusM)
	return transformEnvelope(poly, CantAngle(cantMM, NarrowGaugeMM), func(Point) float64 {
		return widening
	})
}

func transformEnvelope(poly Polygon, angle float64, widening func(Point) float64) Polygon {
	if err := poly.Validate(); err != nil {
		panic(err)
	}
	if !poly.IsSimple() {
		internal.Degeneratef("envelope outline crosses itself")
	}
	if !poly.IsCCW() {
		poly = poly.Reverse()
	}
	rotation := r2.NewRotation(angle, r2.Vec{})
	return poly.Map(func(p Point) Point {
		p.X += internal.Sign(p.X) * widening(p)
		return internal.PointFromVec(rotation.Rotate(p.Vec()))
	})
}

func checkFinite(name string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		internal.Invalidf("%s must be finite, got %v", name, value)
	}
}

func checkRadius(radiusM float64) {
	checkFinite("curve radius", radiusM)
	if radiusM < 0 {
		internal.Invalidf("curve radius must not be negative, got %v m", radiusM)
	}
}

// Gauge slack on a curve, in mm. This is informational: it is reported with a
// result but does not enter the margin.
func Slack(radiusM float64) float64 {
	switch {
	case radiusM <= 0:
		return 0
	case radiusM < 200:
		return 20
	case radiusM < 240:
		return 15
	case radiusM < 320:
		return 10
	case radiusM <= 440:
		return 5
	}
	return 0
}
