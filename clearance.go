// Railway building clearance checks for Go.
//
// Given a point measured beside a track (its lateral offset from the track
// centre and its height above rail level) and the track's cant and curve
// radius, this package decides whether the point intrudes into the structure
// gauge, and by how much it clears or infringes it.
//
// The default profile is for narrow gauge lines without electrification. See
// the advanced package for other profiles, transformed envelopes and result
// details.
package clearance

import (
	"sync"

	"github.com/osuushi/clearance/advanced"
)

type Point = advanced.Point
type Polygon = advanced.Polygon
type Result = advanced.Result
type Profile = advanced.Profile
type Evaluator = advanced.Evaluator
type TrackParameters = advanced.TrackParameters
type MeasurementPoint = advanced.MeasurementPoint

var (
	ErrInvalidParameter   = advanced.ErrInvalidParameter
	ErrDegenerateGeometry = advanced.ErrDegenerateGeometry
)

var (
	defaultOnce      sync.Once
	defaultEvaluator *Evaluator
)

// The shared evaluator for the default profile.
func Default() *Evaluator {
	defaultOnce.Do(func() {
		e, err := advanced.NewEvaluator(advanced.DefaultProfile())
		if err != nil {
			panic(err)
		}
		defaultEvaluator = e
	})
	return defaultEvaluator
}

// Evaluate a point offsetMM from the track centre and heightMM above rail
// level, on track with the given cant (mm) and curve radius (m, 0 for tangent
// track), against the default profile.
func Evaluate(offsetMM, heightMM, cantMM, radiusM float64) (Result, error) {
	return Default().Evaluate(MeasurementPoint{
		OffsetMM: offsetMM,
		HeightMM: heightMM,
		Track:    TrackParameters{CantMM: cantMM, CurveRadiusM: radiusM},
	})
}

// Create an evaluator for a custom profile.
func NewEvaluator(profile Profile) (*Evaluator, error) {
	return advanced.NewEvaluator(profile)
}

func LoadProfileFile(path string) (Profile, error) {
	return advanced.LoadProfileFile(path)
}

// The reference envelope of the default profile.
func Envelope() Polygon {
	return Default().Envelope()
}

// Widen and cant an envelope for the given track, for display. The result is a
// new polygon.
func TransformEnvelope(poly Polygon, cantMM, radiusM float64) (result Polygon, err error) {
	defer func() {
		recoveredErr := advanced.HandleClearancePanicRecover(recover())
		if recoveredErr != nil {
			result = Polygon{}
			err = recoveredErr
		}
	}()
	return advanced.TransformEnvelope(poly, cantMM, radiusM), nil
}
