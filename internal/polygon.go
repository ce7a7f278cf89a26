package internal

import "math"

// Build a closed polygon from a boundary walk. The loop is closed if the caller
// didn't repeat the first point, and runs of coincident points are collapsed to
// one. The result is validated, and degenerate input panics.
func NewPolygon(points []Point) Polygon {
	var deduped []Point
	for _, p := range points {
		if len(deduped) > 0 && deduped[len(deduped)-1].Equals(p) {
			continue
		}
		deduped = append(deduped, p)
	}
	if len(deduped) > 0 && !deduped[0].Equals(deduped[len(deduped)-1]) {
		deduped = append(deduped, deduped[0])
	} else if len(deduped) > 1 {
		// Snap the closing point so the loop is exactly closed
		deduped[len(deduped)-1] = deduped[0]
	}
	poly := Polygon{Points: deduped}
	if err := poly.Validate(); err != nil {
		panic(err)
	}
	return poly
}

// The distinct vertices, without the repeated closing point.
func (poly Polygon) Vertices() []Point {
	if len(poly.Points) == 0 {
		return nil
	}
	return poly.Points[:len(poly.Points)-1]
}

func (poly Polygon) Edges() []Segment {
	var edges []Segment
	for i := 0; i+1 < len(poly.Points); i++ {
		edges = append(edges, Segment{poly.Points[i], poly.Points[i+1]})
	}
	return edges
}

// Validate checks the invariants every boundary must hold before it is used:
// closed, at least three distinct points, no coincident neighbours.
func (poly Polygon) Validate() error {
	n := len(poly.Points)
	if n < 4 {
		return DegenerateGeometry("polygon has %d points, need at least 3 distinct plus closing point", n)
	}
	if !poly.Points[0].Equals(poly.Points[n-1]) {
		return DegenerateGeometry("polygon is not closed: %v != %v", poly.Points[0], poly.Points[n-1])
	}
	for i := 0; i+1 < n; i++ {
		if poly.Points[i].Equals(poly.Points[i+1]) {
			return DegenerateGeometry("coincident points at index %d and %d: %v", i, i+1, poly.Points[i])
		}
	}

	distinct := make(map[Point]struct{})
	for _, p := range poly.Vertices() {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return DegenerateGeometry("polygon has only %d distinct points", len(distinct))
	}
	return nil
}

// Even-odd rule point-in-polygon. Points exactly on the boundary may land on
// either side.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts the edges crossed by a ray
// cast from p in the +X direction.
func (poly Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for _, edge := range poly.Edges() {
		a, b := edge.Start, edge.End
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := Lerp(a.X, b.X, (p.Y-a.Y)/(b.Y-a.Y))
		if p.X < x {
			crossingCount++
		}
	}
	return crossingCount
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Shoelace area. Counterclockwise polygons have positive area.
func (poly Polygon) SignedArea() float64 {
	var area float64
	for _, edge := range poly.Edges() {
		area += edge.Start.X*edge.End.Y - edge.End.X*edge.Start.Y
	}
	return area / 2
}

func (poly Polygon) IsCCW() bool {
	return poly.SignedArea() > 0
}

// IsSimple reports whether no two non-adjacent edges touch. This is quadratic,
// which is fine for envelopes of a few thousand points but not for hot paths.
func (poly Polygon) IsSimple() bool {
	edges := poly.Edges()
	n := len(edges)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// Neighbouring edges share an endpoint by construction
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if edges[i].Intersects(edges[j]) {
				return false
			}
		}
	}
	return true
}

// Map applies f to every point and returns a new polygon. The receiver is left
// untouched.
func (poly Polygon) Map(f func(Point) Point) Polygon {
	points := make([]Point, len(poly.Points))
	for i, p := range poly.Points {
		points[i] = f(p)
	}
	return Polygon{Points: points}
}

func (poly Polygon) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range poly.Points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Nearest point on the boundary of the polygon.
func (poly Polygon) NearestPoint(p Point) (Point, float64) {
	nearest, distance, _ := Polyline(poly.Points).NearestPoint(p)
	return nearest, distance
}
