package internal

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 1225.0, Lerp(1225, 1575, 0))
	assert.Equal(t, 1575.0, Lerp(1225, 1575, 1))
	assert.Equal(t, 1400.0, Lerp(1225, 1575, 0.5))
	assert.Equal(t, Point{5, 10}, LerpPoint(Point{0, 0}, Point{10, 20}, 0.5))
}

func TestLinspace(t *testing.T) {
	values := Linspace(0, 5700, 1775)
	assert.Len(t, values, 1775)
	assert.Equal(t, 0.0, values[0])
	assert.Equal(t, 5700.0, values[1774], "the last sample must land exactly on the upper bound")
	step := 5700.0 / 1774
	assert.InDelta(t, step, values[1]-values[0], 1e-9)

	err := recoverClearanceError(func() { Linspace(0, 1, 1) })
	assert.Error(t, err)
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(3))
	assert.Equal(t, -1.0, Sign(-0.5))
	assert.Equal(t, 0.0, Sign(0))
	assert.Equal(t, 0.0, Sign(math.Copysign(0, -1)))
}

func TestPointMirror(t *testing.T) {
	assert.Equal(t, Point{-3, 4}, Point{3, 4}.Mirror())
	assert.Equal(t, Point{3, 4}, Point{3, 4}.Mirror().Mirror())
	assert.InDelta(t, 5, Point{0, 0}.DistanceTo(Point{3, 4}), Tolerance)
	assert.Equal(t, Point{3, 4}, PointFromVec(Point{3, 4}.Vec()))
}

func TestSignedAreaUnderRotation(t *testing.T) {
	for cwI := 0; cwI < 2; cwI++ {
		cwI := cwI // import into inner scope
		t.Run(fmt.Sprintf("With %s polygons", []string{"CCW", "CW"}[cwI]), func(t *testing.T) {
			poly := NewPolygon([]Point{{0, -1}, {1, 0}, {0, 1}})
			// Clockwise polygons will have negative area, so sign is -1 for CW = 1
			sign := 1 - 2*float64(cwI)
			if cwI == 1 {
				poly = poly.Reverse()
			}
			assertArea := func(expected float64) {
				assert.InDelta(t, sign*expected, poly.SignedArea(), Tolerance)
			}
			assertArea(1)

			// Rotate the polygon repeatedly by a weird angle
			rotation := r2.NewRotation(math.Pi/7, r2.Vec{})
			for i := 0; i < 14; i++ {
				poly = poly.Map(func(p Point) Point { return PointFromVec(rotation.Rotate(p.Vec())) })
				assertArea(1)
			}

			// Rotate around some other point and do the whole thing again
			rotation = r2.NewRotation(math.Pi/7, r2.Vec{X: 5, Y: 3})
			for i := 0; i < 14; i++ {
				poly = poly.Map(func(p Point) Point { return PointFromVec(rotation.Rotate(p.Vec())) })
				assertArea(1)
			}
		})
	}
}
