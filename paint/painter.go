// Package paint turns pointer input into strokes on the selected layer and
// composes the document for display.
package paint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/golayers/canvas"
	"github.com/richinsley/golayers/geom"
	"github.com/richinsley/golayers/layers"
	"github.com/richinsley/golayers/palette"
)

const (
	DefaultLineWidth = 50.0
	zoomStep         = 1.05
	checkerBase      = 10.0
)

// Painter holds the editing state for one document.
type Painter struct {
	Manager   *layers.Manager
	LineWidth float64

	palette  palette.Palette
	scale    float64
	previous *mgl64.Vec2
}

func New(m *layers.Manager) *Painter {
	return &Painter{
		Manager:   m,
		LineWidth: DefaultLineWidth,
		palette:   palette.Default(),
		scale:     1,
	}
}

func (p *Painter) Palette() palette.Palette { return p.palette }

func (p *Painter) SetPalette(pal palette.Palette) { p.palette = pal }

// SwapColors exchanges the main and help colors.
func (p *Painter) SwapColors() { p.palette.Swap() }

// Scale is the current zoom factor of the view.
func (p *Painter) Scale() float64 { return p.scale }

// Stroking reports whether a mouse button is held down.
func (p *Painter) Stroking() bool { return p.previous != nil }

// MouseDown starts a stroke at view coordinates (x, y).
func (p *Painter) MouseDown(x, y float64) error {
	pt := p.toDocument(x, y)
	err := p.Manager.DrawSelected(func(c *canvas.Canvas) error {
		return c.FillCircle(pt[0], pt[1], p.LineWidth/2, p.palette.Main)
	})
	p.previous = &pt
	return err
}

// MouseMove extends the current stroke; it does nothing between strokes.
func (p *Painter) MouseMove(x, y float64) error {
	if p.previous == nil {
		return nil
	}
	prev := *p.previous
	pt := p.toDocument(x, y)
	err := p.Manager.DrawSelected(func(c *canvas.Canvas) error {
		if err := c.FillCircle(pt[0], pt[1], p.LineWidth/2, p.palette.Main); err != nil {
			return err
		}
		return c.Line(prev[0], prev[1], pt[0], pt[1], p.LineWidth, p.palette.Main)
	})
	p.previous = &pt
	return err
}

// MouseUp finishes the stroke.
func (p *Painter) MouseUp(x, y float64) error {
	pt := p.toDocument(x, y)
	err := p.Manager.DrawSelected(func(c *canvas.Canvas) error {
		return c.FillCircle(pt[0], pt[1], p.LineWidth/2, p.palette.Main)
	})
	p.previous = nil
	return err
}

// Wheel zooms the view by one step when ctrl is held. It reports whether the
// event was consumed.
func (p *Painter) Wheel(ctrl bool, dy float64) bool {
	if !ctrl {
		return false
	}
	if dy < 0 {
		p.scale *= zoomStep
	} else {
		p.scale /= zoomStep
	}
	return true
}

// CheckerCell is the checkerboard cell size that keeps cells roughly ten
// screen pixels wide at the current zoom.
func (p *Painter) CheckerCell() float64 {
	return math.Ceil(checkerBase / p.scale)
}

// Compose draws the checkerboard and then every layer, bottom first, into
// dst stretched to dst's size.
func (p *Painter) Compose(dst *canvas.Canvas) error {
	if err := dst.Checkerboard(p.CheckerCell(), palette.Checker, palette.White); err != nil {
		return err
	}
	bounds := geom.NewRect(0, 0, float64(dst.Width()), float64(dst.Height()))
	for _, l := range p.Manager.Layers() {
		dst.DrawImageBounded(l.Canvas().Image(), bounds)
	}
	return nil
}

func (p *Painter) toDocument(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}.Mul(1 / p.scale)
}
