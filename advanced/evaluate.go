package advanced

import (
	"math"
	"sync"

	"github.com/osuushi/clearance/internal"
	"github.com/sirupsen/logrus"
)

// Correction tier limits for AG2, in mm. Both are exclusive upper bounds of
// the tier below them: exactly 5 is a notch, exactly 13 is direct.
const (
	deadZoneMM   = 5
	notchLimitMM = 13
)

// Evaluator checks measured points against the clearance envelope of a
// profile. It is safe for concurrent use. The zero value has no reference
// cache or logger and must not be used; create one with NewEvaluator.
type Evaluator struct {
	Profile Profile
	// Where debug output goes. Defaults to the logrus standard logger.
	Log logrus.FieldLogger

	references   *referenceCache
	envelopeOnce sync.Once
	envelope     Polygon
}

func NewEvaluator(profile Profile) (*Evaluator, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{
		Profile: profile,
		Log:     logrus.StandardLogger(),
	}
	e.references = newReferenceCache(profile.CacheSize, func(radiusM float64) []Point {
		return ReferenceSamples(e.Profile, radiusM)
	})
	return e, nil
}

// The reference envelope for the evaluator's profile. It is built once and
// shared, so don't modify its points.
func (e *Evaluator) Envelope() Polygon {
	e.envelopeOnce.Do(func() {
		e.envelope = BuildPolygon(e.Profile)
	})
	return e.envelope
}

// Reference samples for the curve radius, from the cache where possible.
func (e *Evaluator) ReferenceSamples(radiusM float64) []Point {
	checkRadius(radiusM)
	return e.references.get(radiusM, e.Log)
}

// Like the package level TransformEnvelope, but using the profile's gauge. On
// electrified lines, vertices on the upper arc widen by UpperWidening instead
// of GeneralWidening.
func (e *Evaluator) TransformEnvelope(poly Polygon, track TrackParameters) Polygon {
	checkFinite("cant", track.CantMM)
	checkRadius(track.CurveRadiusM)
	general := GeneralWidening(track.CurveRadiusM)
	upper := UpperWidening(track.CurveRadiusM)
	electrified := e.Profile.Electrification.IsElectrified()
	return transformEnvelope(poly, e.Profile.CantAngle(track.CantMM), func(p Point) float64 {
		if electrified && p.Y >= UpperArcStartMM {
			return upper
		}
		return general
	})
}

// Evaluate a measured point against the envelope.
//
// The point is moved into the rail-centre frame and its distance (AG2) to the
// nearest widened reference sample is corrected for measurement tolerance. The
// point interferes if it lies inside the widened envelope, or if the corrected
// margin vanishes.
func (e *Evaluator) Evaluate(m MeasurementPoint) (result Result, err error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	defer func() {
		recoveredErr := HandleClearancePanicRecover(recover())
		if recoveredErr != nil {
			result = Result{}
			err = recoveredErr
		}
	}()

	angle := e.Profile.CantAngle(m.Track.CantMM)
	rail := railCenter(m.OffsetMM, m.HeightMM, angle)
	// Widening and the reference set must agree on the radius, so both use
	// the rounded cache key
	radius := referenceRadius(m.Track.CurveRadiusM)
	widening := GeneralWidening(radius)

	// The cant term uses the measured height, not the rail-centre height
	required := BaseClearanceAtHeight(rail.Y) + widening + m.HeightMM*math.Sin(angle)

	// The reference set is the right half, and the envelope is symmetric.
	// Left-side points are mirrored into it and measured like right-side
	// ones. Older tooling searched the right half with the signed offset, so
	// left points there were scored against the far side: (-1910, 1000) on
	// level tangent track gave a margin of 3283 mm where this gives 8 mm.
	samples := e.ReferenceSamples(radius)
	nearest, ag2 := internal.NearestSample(samples, Point{X: math.Abs(rail.X), Y: rail.Y})
	if rail.X < 0 {
		nearest = nearest.Mirror()
	}

	corrected, tier := correctMargin(ag2)
	inside := e.insideClearance(rail, widening)
	interference := inside || ag2 < deadZoneMM || corrected <= 0

	result = Result{
		RequiredClearanceMM: required,
		MarginMM:            finalMargin(corrected, interference),
		IsInterference:      interference,
		NearestPoint:        nearest,
		AG2DistanceMM:       ag2,
		CorrectedMarginMM:   corrected,
		Correction:          tier,
		RailPoint:           rail,
		IsInsideClearance:   inside,
		CantAngle:           angle,
		WideningMM:          widening,
		SlackMM:             Slack(radius),
	}
	e.Log.WithFields(logrus.Fields{
		"offset_mm": m.OffsetMM,
		"height_mm": m.HeightMM,
		"cant_mm":   m.Track.CantMM,
		"radius_m":  m.Track.CurveRadiusM,
		"ag2_mm":    ag2,
		"margin_mm": result.MarginMM,
		"tier":      tier,
	}).Debug(result.Verdict())
	return result, nil
}

// Take the 5 mm measurement tolerance off the raw distance. The tiers are
// half-open: [0, 5) is the dead zone, [5, 13) the notch, and 13 up is direct.
// Flipping any of these comparisons to <= changes results at the boundaries.
func correctMargin(ag2 float64) (float64, CorrectionTier) {
	switch {
	case ag2 < deadZoneMM:
		return 0, DeadZone
	case ag2 < notchLimitMM:
		return math.Sqrt(ag2*ag2 - deadZoneMM*deadZoneMM), Notch
	}
	return ag2, Direct
}

// Infringements round up and margins round down, so both err on the side of
// safety. These must not be replaced with a single rounding.
func finalMargin(corrected float64, interference bool) int {
	if interference {
		return int(math.Ceil(corrected))
	}
	return int(math.Floor(corrected))
}

// Is the rail point strictly inside the widened envelope? Points above the
// envelope top or below rail level are outside.
func (e *Evaluator) insideClearance(rail Point, widening float64) bool {
	if rail.Y < 0 || rail.Y > e.Profile.EnvelopeTopMM {
		return false
	}
	return math.Abs(rail.X) < BaseClearanceAtHeight(rail.Y)+widening
}

// OutlineProximity relates a rail point to the widened envelope outline.
type OutlineProximity struct {
	// Closest point on the outline, in the rail-centre frame.
	Nearest    Point
	DistanceMM float64
	Inside     bool
}

// Measure the rail point against the widened envelope outline itself rather
// than the reference samples. Distances here follow the drawn outline,
// including the horizontal steps that the samples skip, so they can be smaller
// than AG2 near a step.
func (e *Evaluator) NearestOnOutline(m MeasurementPoint) (proximity OutlineProximity, err error) {
	if err := m.Validate(); err != nil {
		return OutlineProximity{}, err
	}
	defer func() {
		recoveredErr := HandleClearancePanicRecover(recover())
		if recoveredErr != nil {
			proximity = OutlineProximity{}
			err = recoveredErr
		}
	}()

	rail := railCenter(m.OffsetMM, m.HeightMM, e.Profile.CantAngle(m.Track.CantMM))
	track := TrackParameters{CurveRadiusM: referenceRadius(m.Track.CurveRadiusM)}
	outline := e.TransformEnvelope(e.Envelope(), track)
	nearest, distance := outline.NearestPoint(rail)
	return OutlineProximity{
		Nearest:    nearest,
		DistanceMM: distance,
		Inside:     outline.ContainsPointByEvenOdd(rail),
	}, nil
}
