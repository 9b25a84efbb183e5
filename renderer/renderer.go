package renderer

import (
	"fmt"
	"image"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/golayers/graphics"
	"github.com/richinsley/golayers/palette"
)

// Package-level guard so gl.Init() runs once per process.
var glInitOnce sync.Once

// Renderer composes layer images with the GL passes. All methods must be
// called on the thread that owns the context.
type Renderer struct {
	context      graphics.Context
	quad         *quad
	copy         *copyPass
	checkerboard *checkerboardPass
	hsvCircle    *hsvCirclePass
	textures     []*Texture
}

func NewRenderer(ctx graphics.Context) (*Renderer, error) {
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &Renderer{context: ctx, quad: newQuad()}
	var err error
	isGLES := ctx.IsGLES()
	if r.copy, err = newCopyPass(isGLES); err != nil {
		r.Shutdown()
		return nil, err
	}
	if r.checkerboard, err = newCheckerboardPass(isGLES); err != nil {
		r.Shutdown()
		return nil, err
	}
	if r.hsvCircle, err = newHSVCirclePass(isGLES); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

// Scene is what one frame shows: a checkerboard under the layers, bottom
// first, each stretched over the whole frame.
type Scene struct {
	CellSize float64
	Layers   []image.Image
}

// Draw renders the scene into the currently bound framebuffer.
func (r *Renderer) Draw(scene Scene, width, height int) {
	r.syncTextures(scene.Layers)

	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.checkerboard.draw(r.quad, width, height, scene.CellSize, palette.Checker, palette.White)
	for _, tex := range r.textures[:len(scene.Layers)] {
		r.copy.draw(r.quad, tex, 0, 0, width, height, height)
	}
	gl.Viewport(0, 0, int32(width), int32(height))
}

// DrawHSVCircle overlays the color wheel, centred on (x, y) from the
// top-left of a framebuffer fbHeight pixels tall.
func (r *Renderer) DrawHSVCircle(x, y, radius, fbHeight int) {
	r.hsvCircle.draw(r.quad, x, y, radius, fbHeight)
}

// Present draws the scene to the window and swaps buffers.
func (r *Renderer) Present(scene Scene) {
	w, h := r.context.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	r.Draw(scene, w, h)
	r.context.EndFrame()
}

// RenderOffscreen draws the scene at width×height and reads it back.
func (r *Renderer) RenderOffscreen(scene Scene, width, height int) (*image.RGBA, error) {
	o, err := NewOffscreen(width, height)
	if err != nil {
		return nil, err
	}
	defer o.Destroy()

	o.Bind()
	r.Draw(scene, width, height)
	o.Unbind()
	return o.ReadPixels(), nil
}

func (r *Renderer) syncTextures(layers []image.Image) {
	for len(r.textures) < len(layers) {
		r.textures = append(r.textures, NewTexture())
	}
	for i, img := range layers {
		r.textures[i].Upload(img)
	}
}

// Shutdown releases GL objects. The context itself belongs to the caller.
func (r *Renderer) Shutdown() {
	for _, t := range r.textures {
		t.Destroy()
	}
	r.textures = nil
	if r.copy != nil {
		r.copy.program.Destroy()
	}
	if r.checkerboard != nil {
		r.checkerboard.program.Destroy()
	}
	if r.hsvCircle != nil {
		r.hsvCircle.program.Destroy()
	}
	if r.quad != nil {
		r.quad.destroy()
	}
}
