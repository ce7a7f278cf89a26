package internal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const Tolerance = 1e-6

// To compensate for imprecision in floats, point equality is tolerance based.
// Coincident points in a boundary are detected with this, not with ==.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

func (p Point) Equals(other Point) bool {
	return Equal(p.X, other.X) && Equal(p.Y, other.Y)
}

// Linear interpolation between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Linspace returns n evenly spaced values over [l, u]. Both ends are included,
// and the last value is exactly u rather than l plus an accumulated step.
func Linspace(l, u float64, n int) []float64 {
	if n < 2 {
		Invalidf("linspace needs at least 2 samples, got %d", n)
	}
	values := floats.Span(make([]float64, n), l, u)
	values[n-1] = u
	return values
}

// Sign returns -1, 0 or 1. Zero (of either sign) maps to 0.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
