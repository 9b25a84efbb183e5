package graphics

// UniformSetter is the slice of a GL context needed to bind sampler uniforms.
// L is the backend's uniform location handle (int32 for desktop GL,
// js.Value for WebGL).
type UniformSetter[L any] interface {
	Uniform1i(location L, value int32)
}

// SetTextureUniform points the sampler uniform at location to texture unit.
// The unit is not checked against the units actually bound; invalid handles
// are left to the underlying context.
func SetTextureUniform[L any](ctx UniformSetter[L], location L, unit int32) {
	ctx.Uniform1i(location, unit)
}
