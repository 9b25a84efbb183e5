//go:build !js

package graphics

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// GL issues uniform commands to the OpenGL context current on this thread.
type GL struct{}

var _ UniformSetter[int32] = GL{}

func (GL) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}
