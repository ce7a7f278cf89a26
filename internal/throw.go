package internal

import "github.com/pkg/errors"

// Threading errors through every geometry helper would add a lot of noise for
// conditions that the public entry points already validate. Instead, deep
// helpers panic with a ClearanceError, and the public API recovers to convert
// it back into an error.

var (
	// ErrInvalidParameter marks inputs outside the domain of the engine, such as
	// a negative curve radius or a height below rail level.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateGeometry marks boundaries that cannot be evaluated: fewer
	// than three distinct points, or coincident neighbours.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

type ClearanceError struct {
	err error
}

func (e *ClearanceError) Error() string {
	return e.err.Error()
}

func (e *ClearanceError) Unwrap() error {
	return e.err
}

func (e *ClearanceError) Cause() error {
	return e.err
}

func InvalidParameter(format string, args ...interface{}) error {
	return &ClearanceError{errors.Wrapf(ErrInvalidParameter, format, args...)}
}

func DegenerateGeometry(format string, args ...interface{}) error {
	return &ClearanceError{errors.Wrapf(ErrDegenerateGeometry, format, args...)}
}

// Panic with an invalid parameter ClearanceError.
func Invalidf(format string, args ...interface{}) {
	panic(InvalidParameter(format, args...))
}

// Panic with a degenerate geometry ClearanceError.
func Degeneratef(format string, args ...interface{}) {
	panic(DegenerateGeometry(format, args...))
}

// Convert a recovered ClearanceError panic into an error. Any other panic is
// re-raised, since it is a bug rather than bad input.
func HandleClearancePanicRecover(r interface{}) error {
	if r != nil {
		if clearanceError, ok := r.(*ClearanceError); ok {
			return clearanceError
		}
		panic(r)
	}
	return nil
}
