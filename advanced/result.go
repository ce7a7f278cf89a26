package advanced

import (
	"github.com/osuushi/clearance/internal"
)

// TrackParameters describe the track at the measurement. A CurveRadiusM of 0
// is tangent track.
type TrackParameters struct {
	CantMM       float64
	CurveRadiusM float64
}

// MeasurementPoint is a point measured from the track centre: OffsetMM
// laterally and HeightMM above rail level.
type MeasurementPoint struct {
	OffsetMM float64
	HeightMM float64
	Track    TrackParameters
}

// Check that the measurement can be evaluated. Heights below rail level are
// rejected rather than treated as clear.
func (m MeasurementPoint) Validate() (err error) {
	defer func() {
		err = HandleClearancePanicRecover(recover())
	}()
	checkFinite("offset", m.OffsetMM)
	checkFinite("height", m.HeightMM)
	checkFinite("cant", m.Track.CantMM)
	checkRadius(m.Track.CurveRadiusM)
	if m.HeightMM < 0 {
		internal.Invalidf("height %v mm is below rail level", m.HeightMM)
	}
	return nil
}

// How the raw AG2 distance was turned into the corrected margin.
type CorrectionTier int

const (
	// AG2 under 5 mm: within measurement tolerance of the envelope, so the
	// margin is 0.
	DeadZone CorrectionTier = iota
	// AG2 in [5, 13): the 5 mm tolerance is taken off as the other leg of a
	// right triangle.
	Notch
	// AG2 of 13 mm or more is used as is.
	Direct
)

func (tier CorrectionTier) String() string {
	switch tier {
	case DeadZone:
		return "dead zone"
	case Notch:
		return "notch"
	case Direct:
		return "direct"
	}
	return "unknown"
}

type Result struct {
	// Half width the envelope requires at the point's height, including curve
	// widening and the cant term.
	RequiredClearanceMM float64
	// Margin when clear, or infringement when interfering, in whole mm. It is
	// rounded up for interference and down otherwise.
	MarginMM       int
	IsInterference bool
	// Nearest reference sample to the rail point, on the same side as the point.
	NearestPoint Point
	// Raw distance to NearestPoint.
	AG2DistanceMM float64

	CorrectedMarginMM float64
	Correction        CorrectionTier
	// The measurement in the rail-centre frame.
	RailPoint         Point
	IsInsideClearance bool
	CantAngle         float64
	WideningMM        float64
	SlackMM           float64
}

func (r Result) Verdict() string {
	if r.IsInterference {
		return "interference"
	}
	return "clear"
}
