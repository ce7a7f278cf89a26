package internal

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// Padding around the shapes, in pixels
const drawPadding = 40

// Marker radius for marked points, in pixels
const drawMarkRadius = 4

// DrawPNG renders the polygons, with the first polygon filled and the rest
// stroked, plus a dot for every mark. scale is pixels per millimetre. The
// origin is at the bottom left, matching the height-up convention.
func DrawPNG(path string, scale float64, polygons []Polygon, marks ...Point) error {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, poly := range polygons {
		polyMin, polyMax := poly.Bounds()
		minX = math.Min(minX, polyMin.X)
		minY = math.Min(minY, polyMin.Y)
		maxX = math.Max(maxX, polyMax.X)
		maxY = math.Max(maxY, polyMax.Y)
	}
	for _, p := range marks {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if math.IsInf(minX, 0) {
		return DegenerateGeometry("nothing to draw")
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for i, poly := range polygons {
		if len(poly.Points) == 0 {
			continue
		}
		c.MoveTo(poly.Points[0].X, poly.Points[0].Y)
		for _, p := range poly.Points[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		if i == 0 {
			c.SetRGB(0, 0.5, 0)
			c.FillPreserve()
			c.SetRGB(0, 1, 1)
		} else {
			c.SetRGB(1, 1, 0)
		}
		c.Stroke()
	}

	c.SetRGB(1, 0, 0)
	for _, p := range marks {
		c.DrawCircle(p.X, p.Y, drawMarkRadius/scale)
		c.Fill()
	}

	return c.SavePNG(path)
}

// Print a PNG to the terminal (iTerm only). For debugging.
func CatPNG(path string) {
	imgcat.CatFile(path, os.Stdout)
}
