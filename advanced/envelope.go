package advanced

import (
	"github.com/osuushi/clearance/internal"
)

// Heights (mm above rail level) where the right half of the reference envelope
// changes shape, and the half widths of the straight runs between them.
const (
	FootTopMM            = 25
	FootHalfWidthMM      = 1225
	TaperTopMM           = 375
	ShoulderHalfWidthMM  = 1575
	BodyBottomMM         = 920
	BodyHalfWidthMM      = 1900
	LowerArcStartMM      = 3156
	LowerArcEndMM        = 3823
	UpperBodyHalfWidthMM = 1350
	UpperArcStartMM      = 5190
)

var (
	lowerArc = internal.Circle{Center: Point{X: 0, Y: 2150}, Radius: 2150}
	upperArc = internal.Circle{Center: Point{X: 0, Y: 4000}, Radius: 1800}
)

// The upper arc closes at the top of its circle.
const upperArcTopMM = 4000 + 1800

// Vertices on the taper between the foot and the shoulder.
const taperSamples = 10

// Half width of the reference envelope at the given height above rail level.
// This is the unwidened, uncanted envelope. Negative heights are outside the
// envelope's domain and panic; callers must validate first.
//
// The rules are not continuous everywhere. The body steps out from the
// shoulder at 920, and the arcs don't quite meet the straight runs at 3156,
// 3823 and 5190.
func BaseClearanceAtHeight(heightMM float64) float64 {
	switch {
	case heightMM < 0:
		internal.Invalidf("height %v is below rail level", heightMM)
	case heightMM < FootTopMM:
		return FootHalfWidthMM
	case heightMM < TaperTopMM:
		t := (heightMM - FootTopMM) / (TaperTopMM - FootTopMM)
		return internal.Lerp(FootHalfWidthMM, ShoulderHalfWidthMM, t)
	case heightMM < BodyBottomMM:
		return ShoulderHalfWidthMM
	case heightMM < LowerArcStartMM:
		return BodyHalfWidthMM
	case heightMM < LowerArcEndMM:
		return lowerArc.HalfWidthAt(heightMM)
	case heightMM < UpperArcStartMM:
		return UpperBodyHalfWidthMM
	}
	return upperArc.HalfWidthAt(heightMM)
}

// The right half of the envelope outline, walked from rail level up to the
// roof.
func rightHalf(profile Profile) []Point {
	taper := internal.Polyline{
		{X: FootHalfWidthMM, Y: FootTopMM},
		{X: ShoulderHalfWidthMM, Y: TaperTopMM},
	}.Resample(taperSamples)

	points := []Point{{X: FootHalfWidthMM, Y: 0}}
	points = append(points, taper...)
	points = append(points,
		Point{X: ShoulderHalfWidthMM, Y: BodyBottomMM},
		Point{X: BodyHalfWidthMM, Y: BodyBottomMM},
		Point{X: BodyHalfWidthMM, Y: LowerArcStartMM},
	)
	points = append(points, lowerArc.SampleRight(LowerArcStartMM, LowerArcEndMM, profile.ArcSamples)...)
	points = append(points,
		Point{X: UpperBodyHalfWidthMM, Y: LowerArcEndMM},
		Point{X: UpperBodyHalfWidthMM, Y: UpperArcStartMM},
	)
	points = append(points, upperArc.SampleRight(UpperArcStartMM, profile.EnvelopeTopMM, profile.ArcSamples)...)
	return points
}

// Build the closed reference envelope for the profile. The right half runs
// bottom to top, and its mirror image comes back down the left, so the loop is
// counterclockwise with a flat roof at the profile's envelope top and a flat
// floor at rail level.
func BuildPolygon(profile Profile) Polygon {
	if err := profile.Validate(); err != nil {
		panic(err)
	}
	right := rightHalf(profile)
	left := Polygon{Points: right}.Map(Point.Mirror).Reverse()
	points := make([]Point, 0, 2*len(right)+1)
	points = append(points, right...)
	points = append(points, left.Points...)
	poly := internal.NewPolygon(points)
	if !poly.IsCCW() || !poly.IsSimple() {
		internal.Degeneratef("envelope for top %v mm is not a simple counterclockwise loop", profile.EnvelopeTopMM)
	}
	return poly
}

// Reference points that AG2 distances are measured against: the widened right
// half of the envelope, sampled at evenly spaced heights from rail level up to
// the envelope top, both ends included.
//
// These are samples of the height rules, not of the outline, so there are no
// points along the horizontal steps at 920, 3823 and so on.
func ReferenceSamples(profile Profile, radiusM float64) []Point {
	if err := profile.Validate(); err != nil {
		panic(err)
	}
	widening := GeneralWidening(radiusM)
	heights := internal.Linspace(0, profile.EnvelopeTopMM, profile.ReferenceSamples)
	samples := make([]Point, len(heights))
	for i, h := range heights {
		samples[i] = Point{X: BaseClearanceAtHeight(h) + widening, Y: h}
	}
	return samples
}
