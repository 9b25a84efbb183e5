//go:build js

package graphics

import "syscall/js"

// WebGL wraps a WebGLRenderingContext or WebGL2RenderingContext.
type WebGL struct {
	Ctx js.Value
}

var _ UniformSetter[js.Value] = WebGL{}

func (w WebGL) Uniform1i(location js.Value, value int32) {
	w.Ctx.Call("uniform1i", location, int(value))
}
