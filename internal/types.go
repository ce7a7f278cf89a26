package internal

import "gonum.org/v1/gonum/spatial/r2"

// Point is a position in the clearance cross-section, in millimetres. X is the
// lateral offset from the rail centre and Y is the height above rail level.
// Points are plain values; transformations return fresh points.
type Point struct {
	X float64
	Y float64
}

type Segment struct {
	Start Point
	End   Point
}

// Polygon is a closed boundary: the first point is repeated as the last. The
// order of the points is significant, since it defines the walk direction used
// by the even-odd test and the nearest segment search.
type Polygon struct {
	Points []Point
}

// Polyline is an open chain of points.
type Polyline []Point

// Circle is used to describe the arcs of the clearance envelope.
type Circle struct {
	Center Point
	Radius float64
}

func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func PointFromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Reflect across the vertical axis through the rail centre.
func (p Point) Mirror() Point {
	return Point{X: -p.X, Y: p.Y}
}

func (p Point) DistanceTo(q Point) float64 {
	return r2.Norm(r2.Sub(p.Vec(), q.Vec()))
}
