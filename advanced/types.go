// Package advanced holds the clearance engine: the reference envelope, the cant
// and curve transforms, and the evaluator that turns a measured point into a
// margin. The root package wraps the common case; use this package directly to
// work with profiles, transformed envelopes and full result details.
//
// Functions in this package that take raw geometry panic with a
// *ClearanceError on invalid input. Evaluator.Evaluate and the profile loaders
// return errors instead. Callers that use the panicking functions directly can
// recover with HandleClearancePanicRecover.
package advanced

import "github.com/osuushi/clearance/internal"

type Point = internal.Point
type Polygon = internal.Polygon
type ClearanceError = internal.ClearanceError

var (
	ErrInvalidParameter   = internal.ErrInvalidParameter
	ErrDegenerateGeometry = internal.ErrDegenerateGeometry
)

// Convert a recovered panic into an error if it was thrown by this package.
// Any other panic is re-raised.
func HandleClearancePanicRecover(r interface{}) error {
	return internal.HandleClearancePanicRecover(r)
}
