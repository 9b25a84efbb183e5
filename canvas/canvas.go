// Package canvas is the CPU drawing surface each layer paints into. It wraps
// a gg.Context and doubles as a thumbnail Source and Target.
package canvas

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/richinsley/golayers/geom"
	"github.com/richinsley/golayers/palette"
	"github.com/richinsley/golayers/thumbnail"
)

// Canvas is a 2D raster surface. It is not safe for concurrent use.
type Canvas struct {
	dc *gg.Context
}

var (
	_ thumbnail.Source = (*Canvas)(nil)
	_ thumbnail.Target = (*Canvas)(nil)
)

// New returns a transparent canvas of the given size.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	return &Canvas{dc: gg.NewContext(width, height)}, nil
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

// Image returns a snapshot of the canvas pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SetSize resizes the canvas. The contents are cleared to transparent and
// the transform is reset, even when the size is unchanged.
func (c *Canvas) SetSize(width, height int) error {
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("failed to resize canvas: %w", err)
	}
	c.dc.Identity()
	c.dc.Clear()
	return nil
}

// DrawScaled draws the whole of src at the origin under s.
func (c *Canvas) DrawScaled(src thumbnail.Source, s thumbnail.Scale) error {
	img := src.Image()
	if img == nil {
		return fmt.Errorf("source has no image")
	}
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetTransform(gg.Scale(s.X, s.Y))
	c.dc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
	return nil
}

// Line strokes a straight line of the given width.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col palette.Color) error {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x0, y0, x1, y1)
	return c.dc.Stroke()
}

// FillCircle fills a disc centred on (x, y).
func (c *Canvas) FillCircle(x, y, r float64, col palette.Color) error {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, r)
	return c.dc.Fill()
}

// DrawCircle strokes a black circle outline.
func (c *Canvas) DrawCircle(x, y, r, width float64) error {
	c.dc.SetColor(palette.Black)
	c.dc.SetLineWidth(width)
	c.dc.DrawCircle(x, y, r)
	return c.dc.Stroke()
}

// Clear replaces every pixel with col, alpha included.
func (c *Canvas) Clear(col palette.Color) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

// Checkerboard covers the canvas with cellSize squares alternating between
// a and b, starting with a in the top-left corner.
func (c *Canvas) Checkerboard(cellSize float64, a, b palette.Color) error {
	if cellSize <= 0 {
		return fmt.Errorf("invalid cell size %v", cellSize)
	}
	c.Clear(b)
	c.dc.SetColor(a)
	cols := int(math.Ceil(float64(c.Width()) / cellSize))
	rows := int(math.Ceil(float64(c.Height()) / cellSize))
	for row := 0; row < rows; row++ {
		for col := row % 2; col < cols; col += 2 {
			c.dc.DrawRectangle(float64(col)*cellSize, float64(row)*cellSize, cellSize, cellSize)
		}
	}
	return c.dc.Fill()
}

// HSVCircle paints a hue/saturation wheel of radius r centred on (x, y).
// Hue follows the angle around the centre and saturation grows with
// distance; pixels outside the wheel are left alone.
func (c *Canvas) HSVCircle(x, y, r float64) {
	if r <= 0 {
		return
	}
	bounds := image.Rect(int(x-r), int(y-r), int(math.Ceil(x+r)), int(math.Ceil(y+r))).
		Intersect(image.Rect(0, 0, c.Width(), c.Height()))
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dx := (float64(px) + 0.5 - x) / r
			dy := (float64(py) + 0.5 - y) / r
			dist := math.Hypot(dx, dy)
			if dist > 1 {
				continue
			}
			angle := 0.0
			if dist > 0 {
				angle = math.Acos(dx / dist)
				if dy <= 0 {
					angle = 2*math.Pi - angle
				}
			}
			col := palette.FromHSV(angle, math.Pow(dist, 1.7), 1)
			c.dc.SetPixel(px, py, gg.FromColor(col))
		}
	}
}

// DrawImage draws img unscaled at the origin.
func (c *Canvas) DrawImage(img image.Image) {
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Identity()
	c.dc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
}

// DrawImageBounded stretches img over bounds.
func (c *Canvas) DrawImageBounded(img image.Image, bounds geom.Rect) {
	if bounds.Empty() {
		return
	}
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Identity()
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         bounds.X(),
		Y:         bounds.Y(),
		DstWidth:  bounds.W(),
		DstHeight: bounds.H(),
	})
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
