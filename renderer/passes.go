package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/golayers/graphics"
	"github.com/richinsley/golayers/palette"
	"github.com/richinsley/golayers/shader"
)

// textureUnit is the unit the copy pass samples its image from.
const textureUnit = 0

// Layer textures hold premultiplied alpha (see toRGBA), so the source color
// is added as is.
const (
	blendSrcFactor = gl.ONE
	blendDstFactor = gl.ONE_MINUS_SRC_ALPHA
)

// copyPass draws a texture into a rectangle of the framebuffer.
type copyPass struct {
	program  *Program
	imageLoc int32
}

func newCopyPass(isGLES bool) (*copyPass, error) {
	p, err := buildProgram(shader.CopyImage, isGLES)
	if err != nil {
		return nil, err
	}
	return &copyPass{program: p, imageLoc: p.Uniform(shader.UniformImage)}, nil
}

// draw stretches tex over (x, y, w, h), measured from the top-left of a
// framebuffer fbHeight pixels tall, blending over what is already there.
func (c *copyPass) draw(quad *quad, tex *Texture, x, y, w, h, fbHeight int) {
	gl.Viewport(int32(x), int32(fbHeight-y-h), int32(w), int32(h))
	gl.UseProgram(c.program.ID)

	gl.ActiveTexture(gl.TEXTURE0 + textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	if c.imageLoc != -1 {
		graphics.SetTextureUniform(graphics.GL{}, c.imageLoc, textureUnit)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(blendSrcFactor, blendDstFactor)
	quad.draw()
	gl.Disable(gl.BLEND)

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

type checkerboardPass struct {
	program     *Program
	cellSizeLoc int32
	colorALoc   int32
	colorBLoc   int32
}

func newCheckerboardPass(isGLES bool) (*checkerboardPass, error) {
	p, err := buildProgram(shader.Checkerboard, isGLES)
	if err != nil {
		return nil, err
	}
	return &checkerboardPass{
		program:     p,
		cellSizeLoc: p.Uniform(shader.UniformCellSize),
		colorALoc:   p.Uniform(shader.UniformColorA),
		colorBLoc:   p.Uniform(shader.UniformColorB),
	}, nil
}

// draw fills a width×height viewport with cellSize pixel squares.
func (c *checkerboardPass) draw(quad *quad, width, height int, cellSize float64, a, b palette.Color) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.UseProgram(c.program.ID)

	gl.Uniform2f(c.cellSizeLoc, float32(cellSize)/float32(width), float32(cellSize)/float32(height))
	ar, ag, ab, _ := a.Floats()
	br, bg, bb, _ := b.Floats()
	gl.Uniform3f(c.colorALoc, ar, ag, ab)
	gl.Uniform3f(c.colorBLoc, br, bg, bb)

	quad.draw()
}

type hsvCirclePass struct {
	program *Program
}

func newHSVCirclePass(isGLES bool) (*hsvCirclePass, error) {
	p, err := buildProgram(shader.HSVCircle, isGLES)
	if err != nil {
		return nil, err
	}
	return &hsvCirclePass{program: p}, nil
}

// draw paints the wheel centred on (x, y) from the top-left.
func (h *hsvCirclePass) draw(quad *quad, x, y, r, fbHeight int) {
	gl.Viewport(int32(x-r), int32(fbHeight-y-r), int32(2*r), int32(2*r))
	gl.UseProgram(h.program.ID)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	quad.draw()
	gl.Disable(gl.BLEND)
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// quad is the fullscreen triangle pair every pass draws.
type quad struct {
	vao uint32
	vbo uint32
}

func newQuad() *quad {
	q := &quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(shader.AttribVertexPos)
	gl.VertexAttribPointer(shader.AttribVertexPos, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return q
}

func (q *quad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (q *quad) destroy() {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
}
