package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/richinsley/golayers/geom"
	"github.com/richinsley/golayers/palette"
	"github.com/richinsley/golayers/thumbnail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = palette.New(255, 0, 0, 255)
	blue = palette.New(0, 0, 255, 255)
)

func pixel(t *testing.T, c *Canvas, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(c.Image().At(x, y)).(color.RGBA)
}

func solid(t *testing.T, w, h int, col palette.Color) *Canvas {
	t.Helper()
	c, err := New(w, h)
	require.NoError(t, err)
	c.Clear(col)
	return c
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(0, 10)
	assert.Error(t, err)
	_, err = New(10, -1)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	c := solid(t, 8, 8, red)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pixel(t, c, 3, 3))

	c.Clear(palette.Transparent)
	assert.Equal(t, color.RGBA{}, pixel(t, c, 3, 3))
}

func TestSetSizeResets(t *testing.T) {
	c := solid(t, 20, 20, red)
	require.NoError(t, c.SetSize(20, 20))
	assert.Equal(t, color.RGBA{}, pixel(t, c, 10, 10))

	require.NoError(t, c.SetSize(40, 10))
	assert.Equal(t, 40, c.Width())
	assert.Equal(t, 10, c.Height())

	assert.Error(t, c.SetSize(0, 0))
}

func TestFillCircle(t *testing.T) {
	c, err := New(50, 50)
	require.NoError(t, err)
	require.NoError(t, c.FillCircle(25, 25, 10, blue))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pixel(t, c, 25, 25))
	assert.Equal(t, color.RGBA{}, pixel(t, c, 2, 2))
}

func TestLine(t *testing.T) {
	c, err := New(50, 50)
	require.NoError(t, err)
	require.NoError(t, c.Line(0, 25, 50, 25, 6, red))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pixel(t, c, 25, 25))
	assert.Equal(t, color.RGBA{}, pixel(t, c, 25, 5))
}

func TestCheckerboard(t *testing.T) {
	c, err := New(40, 40)
	require.NoError(t, err)
	require.NoError(t, c.Checkerboard(10, palette.Checker, palette.White))

	grey := color.RGBA{191, 191, 191, 255}
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, grey, pixel(t, c, 5, 5))
	assert.Equal(t, white, pixel(t, c, 15, 5))
	assert.Equal(t, white, pixel(t, c, 5, 15))
	assert.Equal(t, grey, pixel(t, c, 15, 15))

	assert.Error(t, c.Checkerboard(0, palette.Checker, palette.White))
}

func TestHSVCircle(t *testing.T) {
	c, err := New(100, 100)
	require.NoError(t, err)
	c.HSVCircle(50, 50, 40)

	// Outside the wheel nothing is painted.
	assert.Equal(t, color.RGBA{}, pixel(t, c, 2, 2))

	// The centre is almost unsaturated.
	centre := pixel(t, c, 50, 50)
	assert.Greater(t, centre.G, uint8(240))
	assert.Greater(t, centre.B, uint8(240))

	// The right-hand rim sits at hue 0.
	rim := pixel(t, c, 88, 50)
	assert.Equal(t, uint8(255), rim.R)
	assert.Less(t, rim.G, uint8(60))
	assert.Less(t, rim.B, uint8(60))
}

func TestDrawImageBounded(t *testing.T) {
	src := solid(t, 10, 10, blue)
	c, err := New(100, 50)
	require.NoError(t, err)

	c.DrawImageBounded(src.Image(), geom.NewRect(50, 0, 50, 50))
	assert.Equal(t, color.RGBA{}, pixel(t, c, 25, 25))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pixel(t, c, 75, 25))
}

func TestThumbnailTargets(t *testing.T) {
	a, err := New(1, 1)
	require.NoError(t, err)
	b, err := New(300, 300)
	require.NoError(t, err)

	err = thumbnail.Render(
		[2]thumbnail.Source{solid(t, 200, 200, red), solid(t, 400, 200, blue)},
		[2]thumbnail.Target{a, b},
	)
	require.NoError(t, err)

	for _, c := range []*Canvas{a, b} {
		assert.Equal(t, thumbnail.Size, c.Width())
		assert.Equal(t, thumbnail.Size, c.Height())
	}
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pixel(t, a, 50, 50))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pixel(t, b, 50, 50))

	// A second render replaces, it does not stack.
	err = thumbnail.Render(
		[2]thumbnail.Source{solid(t, 50, 50, blue), solid(t, 10, 10, red)},
		[2]thumbnail.Target{a, b},
	)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pixel(t, a, 50, 50))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pixel(t, b, 90, 90))
}

func TestEncodePNG(t *testing.T) {
	c := solid(t, 4, 3, red)
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}
