package advanced

import (
	"github.com/osuushi/clearance/internal"
)

// Draw a measurement for debugging. The widened envelope is filled in the
// rail-centre frame, and the widened and canted envelope is outlined on top.
// The rail point, its nearest reference sample and its nearest point on the
// widened outline are marked. scale is pixels per millimetre.
func (e *Evaluator) DrawPNG(path string, scale float64, m MeasurementPoint, result Result) (err error) {
	defer func() {
		recoveredErr := HandleClearancePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()
	envelope := e.Envelope()
	widened := e.TransformEnvelope(envelope, TrackParameters{CurveRadiusM: m.Track.CurveRadiusM})
	canted := e.TransformEnvelope(envelope, m.Track)
	outline, err := e.NearestOnOutline(m)
	if err != nil {
		return err
	}
	return internal.DrawPNG(path, scale, []Polygon{widened, canted}, result.RailPoint, result.NearestPoint, outline.Nearest)
}

// Print a PNG to the terminal (iTerm only).
func CatPNG(path string) {
	internal.CatPNG(path)
}
