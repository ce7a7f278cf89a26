package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Nearest point on any segment of the polyline, its distance, and the index of
// the segment it lies on. A single point polyline answers with that point and
// index 0.
func (pl Polyline) NearestPoint(p Point) (nearest Point, distance float64, index int) {
	switch len(pl) {
	case 0:
		Degeneratef("nearest point on an empty polyline")
	case 1:
		return pl[0], pl[0].DistanceTo(p), 0
	}

	distance = math.Inf(1)
	for i := 0; i+1 < len(pl); i++ {
		candidate, _ := Segment{pl[i], pl[i+1]}.NearestPoint(p)
		if d := candidate.DistanceTo(p); d < distance {
			nearest, distance, index = candidate, d, i
		}
	}
	return nearest, distance, index
}

func (pl Polyline) Length() float64 {
	var length float64
	for i := 0; i+1 < len(pl); i++ {
		length += pl[i].DistanceTo(pl[i+1])
	}
	return length
}

// Point reached after walking distance d along the polyline, interpolating
// linearly within the segment it falls in. d is clamped to the polyline.
func (pl Polyline) PointAtDistance(d float64) Point {
	if len(pl) == 0 {
		Degeneratef("interpolating along an empty polyline")
	}
	if d <= 0 {
		return pl[0]
	}
	for i := 0; i+1 < len(pl); i++ {
		segment := Segment{pl[i], pl[i+1]}
		length := segment.Length()
		if d <= length && length > 0 {
			return segment.PointAt(d / length)
		}
		d -= length
	}
	return pl[len(pl)-1]
}

// Resample returns n points evenly spaced by arc length along the polyline,
// including both ends.
func (pl Polyline) Resample(n int) Polyline {
	distances := Linspace(0, pl.Length(), n)
	result := make(Polyline, n)
	for i, d := range distances {
		result[i] = pl.PointAtDistance(d)
	}
	result[n-1] = pl[len(pl)-1]
	return result
}

// Nearest of a discrete set of samples to p, by straight line distance. Ties
// keep the earliest sample. This deliberately does not interpolate between
// samples: callers comparing against a sampled reference set get the distance
// to the samples themselves.
func NearestSample(samples []Point, p Point) (Point, float64) {
	if len(samples) == 0 {
		Degeneratef("nearest sample of an empty set")
	}
	query := p.Vec()
	best := 0
	bestSquared := math.Inf(1)
	for i, sample := range samples {
		if d := r2.Norm2(r2.Sub(query, sample.Vec())); d < bestSquared {
			best, bestSquared = i, d
		}
	}
	return samples[best], math.Sqrt(bestSquared)
}
