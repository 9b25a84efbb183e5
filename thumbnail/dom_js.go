//go:build js

package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"syscall/js"
)

// Document resolves thumbnail targets with document.querySelector.
type Document struct {
	Value js.Value
}

// GlobalDocument returns the page's document.
func GlobalDocument() Document {
	return Document{Value: js.Global().Get("document")}
}

func (d Document) Lookup(id string) (Target, bool) {
	el := d.Value.Call("querySelector", "#"+id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	ctx := el.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, false
	}
	return &CanvasTarget{Canvas: el, Ctx: ctx}, true
}

// JSValuer is implemented by sources that live on the JS side and can be
// handed straight to drawImage.
type JSValuer interface {
	JSValue() js.Value
}

// CanvasTarget draws into an HTMLCanvasElement through its 2D context.
type CanvasTarget struct {
	Canvas js.Value
	Ctx    js.Value
}

func (c *CanvasTarget) SetSize(width, height int) error {
	// Assigning width/height also resets the context transform.
	c.Canvas.Set("width", width)
	c.Canvas.Set("height", height)
	return nil
}

func (c *CanvasTarget) DrawScaled(src Source, s Scale) error {
	c.Ctx.Call("setTransform", s.X, 0, 0, s.Y, 0, 0)
	defer c.Ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)

	if v, ok := src.(JSValuer); ok {
		c.Ctx.Call("drawImage", v.JSValue(), 0, 0)
		return nil
	}

	// Go-side images go through an offscreen canvas since putImageData
	// ignores the transform.
	img := src.Image()
	if img == nil {
		return errors.New("source has no image")
	}
	off, err := newOffscreen(img)
	if err != nil {
		return err
	}
	c.Ctx.Call("drawImage", off, 0, 0)
	return nil
}

func newOffscreen(img image.Image) (js.Value, error) {
	b := img.Bounds()
	rgba := toNRGBA(img)
	doc := js.Global().Get("document")
	el := doc.Call("createElement", "canvas")
	el.Set("width", b.Dx())
	el.Set("height", b.Dy())
	ctx := el.Call("getContext", "2d")
	if ctx.IsNull() {
		return js.Value{}, fmt.Errorf("offscreen canvas has no 2d context")
	}
	data := ctx.Call("createImageData", b.Dx(), b.Dy())
	js.CopyBytesToJS(data.Get("data"), rgba.Pix)
	ctx.Call("putImageData", data, 0, 0)
	return el, nil
}

// CanvasSource exposes an HTMLCanvasElement as a Source.
type CanvasSource struct {
	Canvas js.Value
}

func (c CanvasSource) Width() int        { return c.Canvas.Get("width").Int() }
func (c CanvasSource) Height() int       { return c.Canvas.Get("height").Int() }
func (c CanvasSource) JSValue() js.Value { return c.Canvas }

// Image reads the canvas pixels back through a 2D context.
func (c CanvasSource) Image() image.Image {
	w, h := c.Width(), c.Height()
	if w == 0 || h == 0 {
		return nil
	}
	ctx := c.Canvas.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil
	}
	data := ctx.Call("getImageData", 0, 0, w, h).Get("data")
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	js.CopyBytesToGo(img.Pix, data)
	return img
}
