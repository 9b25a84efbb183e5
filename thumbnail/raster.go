package thumbnail

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Raster is an in-memory Target backed by an *image.RGBA. It is also a
// Source, so a rendered thumbnail can be fed back in or encoded.
type Raster struct {
	img    *image.RGBA
	interp draw.Transformer
}

var (
	_ Target = (*Raster)(nil)
	_ Source = (*Raster)(nil)
)

// NewRaster returns an unsized raster; SetSize must be called before drawing.
func NewRaster() *Raster {
	return &Raster{interp: draw.BiLinear}
}

// NewNearestRaster returns a raster that samples with nearest-neighbour
// interpolation, keeping hard pixel edges in the preview.
func NewNearestRaster() *Raster {
	return &Raster{interp: draw.NearestNeighbor}
}

func (r *Raster) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (r *Raster) DrawScaled(src Source, s Scale) error {
	if r.img == nil {
		return errors.New("raster has no size")
	}
	img := src.Image()
	if img == nil {
		return errors.New("source has no image")
	}
	b := img.Bounds()
	// Source bounds need not start at the origin.
	s2d := f64.Aff3{
		s.X, 0, -float64(b.Min.X) * s.X,
		0, s.Y, -float64(b.Min.Y) * s.Y,
	}
	r.interp.Transform(r.img, s2d, img, b, draw.Over, nil)
	return nil
}

func (r *Raster) Width() int {
	if r.img == nil {
		return 0
	}
	return r.img.Rect.Dx()
}

func (r *Raster) Height() int {
	if r.img == nil {
		return 0
	}
	return r.img.Rect.Dy()
}

// Image returns the backing image, or nil before the first SetSize.
func (r *Raster) Image() image.Image {
	if r.img == nil {
		return nil
	}
	return r.img
}

// RGBA exposes the backing pixels.
func (r *Raster) RGBA() *image.RGBA {
	return r.img
}

// ImageSource adapts any image.Image to Source.
type ImageSource struct {
	Img image.Image
}

// Width and Height are zero for a nil image, which Fit rejects.
func (s ImageSource) Width() int {
	if s.Img == nil {
		return 0
	}
	return s.Img.Bounds().Dx()
}

func (s ImageSource) Height() int {
	if s.Img == nil {
		return 0
	}
	return s.Img.Bounds().Dy()
}

func (s ImageSource) Image() image.Image { return s.Img }

// toNRGBA returns img as a tightly packed non-premultiplied image at the
// origin, the layout canvas ImageData expects.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
