package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentShadersAreWebGL2(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			src, err := GetFragmentShader(k)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(src, "#version 300 es\n"))
			assert.Contains(t, src, "void main()")
		})
	}
}

func TestFragmentShaderUniforms(t *testing.T) {
	src, err := GetFragmentShader(CopyImage)
	require.NoError(t, err)
	assert.Contains(t, src, "uniform sampler2D "+UniformImage+";")

	src, err = GetFragmentShader(Checkerboard)
	require.NoError(t, err)
	for _, name := range []string{UniformCellSize, UniformColorA, UniformColorB} {
		assert.Contains(t, src, " "+name+";")
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := GetFragmentShader(Kind(42))
	assert.Error(t, err)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestVertexShaderVariants(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateVertexShader(true), "#version 300 es"))
	assert.True(t, strings.HasPrefix(GenerateVertexShader(false), "#version 410 core"))
	for _, isGLES := range []bool{true, false} {
		assert.Contains(t, GenerateVertexShader(isGLES), "layout (location = 0) in vec2 in_vert;")
	}
}

func TestVertexShaderRenamedVaryings(t *testing.T) {
	src := GenerateVertexShaderFor(false, func(name string) string { return "_u" + name })
	assert.Contains(t, src, "out vec2 _ufrag_coord;")
	assert.Contains(t, src, "out vec2 _ufrag_uv;")
	assert.Contains(t, src, "_ufrag_uv = in_vert * 0.5 + 0.5;")
	assert.NotContains(t, src, " frag_uv")

	plain := GenerateVertexShader(true)
	assert.Contains(t, plain, "out vec2 "+VaryingCoord+";")
	assert.Contains(t, plain, "out vec2 "+VaryingUV+";")
}
