package internal

import "math"

// Half width of the circle at height y: the positive X offset of the boundary
// from the circle's vertical axis. Heights outside the circle clamp to 0 rather
// than producing NaN.
func (c Circle) HalfWidthAt(y float64) float64 {
	dy := y - c.Center.Y
	discriminant := c.Radius*c.Radius - dy*dy
	if discriminant < 0 {
		return 0
	}
	return math.Sqrt(discriminant)
}

// Sample the right-hand side of the circle boundary at n heights evenly spaced
// over [y0, y1]. Sampling by height rather than by angle keeps the samples
// aligned with the height-indexed rules that use the arc.
func (c Circle) SampleRight(y0, y1 float64, n int) []Point {
	heights := Linspace(y0, y1, n)
	points := make([]Point, n)
	for i, y := range heights {
		points[i] = Point{X: c.Center.X + c.HalfWidthAt(y), Y: y}
	}
	return points
}
