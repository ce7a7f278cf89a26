package internal

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notch.png")
	notch := LoadFixture("notch")
	square := LoadFixture("square")

	err := DrawPNG(path, 4, []Polygon{notch, square}, Point{15, 20}, Point{-5, 40})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	// The marks widen the bounds to x in [-5, 30] and y in [0, 40]
	bounds := img.Bounds()
	assert.Equal(t, 4*35+2*drawPadding, bounds.Dx())
	assert.Equal(t, 4*40+2*drawPadding, bounds.Dy())
}

func TestDrawPNGNothingToDraw(t *testing.T) {
	err := DrawPNG(filepath.Join(t.TempDir(), "empty.png"), 1, nil)
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))
}
