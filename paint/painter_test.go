package paint

import (
	"image/color"
	"testing"

	"github.com/richinsley/golayers/canvas"
	"github.com/richinsley/golayers/layers"
	"github.com/richinsley/golayers/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPainter(t *testing.T) *Painter {
	t.Helper()
	m, err := layers.NewManager(200, 100)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := m.PushLayer()
		require.NoError(t, err)
	}
	return New(m)
}

func layerPixel(t *testing.T, p *Painter, id, x, y int) color.RGBA {
	t.Helper()
	l, ok := p.Manager.Layer(id)
	require.True(t, ok)
	return color.RGBAModel.Convert(l.Canvas().Image().At(x, y)).(color.RGBA)
}

func TestStroke(t *testing.T) {
	p := newPainter(t)
	p.LineWidth = 10
	var changes int
	p.Manager.Subscribe(func(n layers.Notification) {
		if n.Kind == layers.Changed {
			changes++
		}
	})

	require.NoError(t, p.MouseDown(20, 50))
	assert.True(t, p.Stroking())
	require.NoError(t, p.MouseMove(100, 50))
	require.NoError(t, p.MouseUp(100, 50))
	assert.False(t, p.Stroking())
	assert.Equal(t, 3, changes)

	black := color.RGBA{0, 0, 0, 255}
	assert.Equal(t, black, layerPixel(t, p, 0, 20, 50))
	assert.Equal(t, black, layerPixel(t, p, 0, 60, 50))
	assert.Equal(t, color.RGBA{}, layerPixel(t, p, 0, 60, 10))
	assert.Equal(t, color.RGBA{}, layerPixel(t, p, 1, 60, 50))
}

func TestMoveWithoutStrokeIsIgnored(t *testing.T) {
	p := newPainter(t)
	changes := 0
	p.Manager.Subscribe(func(layers.Notification) { changes++ })
	require.NoError(t, p.MouseMove(10, 10))
	assert.Zero(t, changes)
}

func TestWheel(t *testing.T) {
	p := newPainter(t)
	assert.False(t, p.Wheel(false, -1))
	assert.Equal(t, 1.0, p.Scale())

	assert.True(t, p.Wheel(true, -1))
	assert.InDelta(t, 1.05, p.Scale(), 1e-12)
	assert.True(t, p.Wheel(true, 1))
	assert.True(t, p.Wheel(true, 1))
	assert.InDelta(t, 1/1.05, p.Scale(), 1e-12)
}

func TestCheckerCell(t *testing.T) {
	p := newPainter(t)
	assert.Equal(t, 10.0, p.CheckerCell())
	p.Wheel(true, 1)
	assert.Equal(t, 11.0, p.CheckerCell())
}

func TestZoomedStrokeUsesDocumentCoordinates(t *testing.T) {
	p := newPainter(t)
	p.LineWidth = 4
	for i := 0; i < 15; i++ {
		p.Wheel(true, -1)
	}
	// scale is now ~2.08, so view (104, 104) is document (~50, ~50).
	require.NoError(t, p.MouseDown(104, 104))
	require.NoError(t, p.MouseUp(104, 104))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, layerPixel(t, p, 0, 50, 50))
}

func TestPaletteSwap(t *testing.T) {
	p := newPainter(t)
	p.SwapColors()
	assert.Equal(t, palette.White, p.Palette().Main)
	p.SetPalette(palette.Default())
	assert.Equal(t, palette.Black, p.Palette().Main)
}

func TestCompose(t *testing.T) {
	p := newPainter(t)
	require.NoError(t, p.Manager.DrawInContext(1, func(c *canvas.Canvas) error {
		return c.FillCircle(150, 50, 20, palette.New(0, 0, 255, 255))
	}))

	dst, err := canvas.New(200, 100)
	require.NoError(t, err)
	require.NoError(t, p.Compose(dst))

	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(dst.Image().At(x, y)).(color.RGBA)
	}
	assert.Equal(t, color.RGBA{191, 191, 191, 255}, at(5, 5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, at(15, 5))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, at(150, 50))
}
