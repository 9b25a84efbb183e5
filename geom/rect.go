// Package geom holds the small amount of 2D geometry the painter needs on top
// of mathgl vectors.
package geom

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Pos  mgl64.Vec2
	Size mgl64.Vec2
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: mgl64.Vec2{x, y}, Size: mgl64.Vec2{w, h}}
}

func (r Rect) X() float64 { return r.Pos[0] }
func (r Rect) Y() float64 { return r.Pos[1] }
func (r Rect) W() float64 { return r.Size[0] }
func (r Rect) H() float64 { return r.Size[1] }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Size[0] <= 0 || r.Size[1] <= 0
}

// Image returns the smallest integer rectangle containing r.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Pos[0])),
		int(math.Floor(r.Pos[1])),
		int(math.Ceil(r.Pos[0]+r.Size[0])),
		int(math.Ceil(r.Pos[1]+r.Size[1])),
	)
}

// FromImage converts an integer rectangle.
func FromImage(r image.Rectangle) Rect {
	return NewRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}
