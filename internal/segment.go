package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Point at parameter t along the segment, where 0 is Start and 1 is End.
func (s Segment) PointAt(t float64) Point {
	return LerpPoint(s.Start, s.End, t)
}

// Closest point on the segment to p, along with its parameter along the
// segment. A zero length segment always answers with its start.
func (s Segment) NearestPoint(p Point) (Point, float64) {
	d := r2.Sub(s.End.Vec(), s.Start.Vec())
	lengthSquared := r2.Norm2(d)
	if lengthSquared == 0 {
		return s.Start, 0
	}
	t := r2.Dot(r2.Sub(p.Vec(), s.Start.Vec()), d) / lengthSquared
	t = math.Max(0, math.Min(1, t))
	return s.PointAt(t), t
}

func (s Segment) DistanceTo(p Point) float64 {
	nearest, _ := s.NearestPoint(p)
	return nearest.DistanceTo(p)
}

// Orientation of the triangle (a, b, c): positive when counterclockwise,
// negative when clockwise, zero when collinear within tolerance.
func orientation(a, b, c Point) int {
	cross := r2.Cross(r2.Sub(b.Vec(), a.Vec()), r2.Sub(c.Vec(), a.Vec()))
	switch {
	case cross > Tolerance:
		return 1
	case cross < -Tolerance:
		return -1
	}
	return 0
}

// Assuming a, b, c are collinear, is c within the bounding box of a and b?
func onSegment(a, b, c Point) bool {
	return c.X <= math.Max(a.X, b.X)+Tolerance && c.X >= math.Min(a.X, b.X)-Tolerance &&
		c.Y <= math.Max(a.Y, b.Y)+Tolerance && c.Y >= math.Min(a.Y, b.Y)-Tolerance
}

// Intersects reports whether the two closed segments share any point,
// including touching endpoints and collinear overlap.
func (s Segment) Intersects(other Segment) bool {
	o1 := orientation(s.Start, s.End, other.Start)
	o2 := orientation(s.Start, s.End, other.End)
	o3 := orientation(other.Start, other.End, s.Start)
	o4 := orientation(other.Start, other.End, s.End)

	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}

	if o1 == 0 && onSegment(s.Start, s.End, other.Start) {
		return true
	}
	if o2 == 0 && onSegment(s.Start, s.End, other.End) {
		return true
	}
	if o3 == 0 && onSegment(other.Start, other.End, s.Start) {
		return true
	}
	if o4 == 0 && onSegment(other.Start, other.End, s.End) {
		return true
	}
	return false
}
