package renderer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/richinsley/golayers/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var layoutQualifier = regexp.MustCompile(`^layout\s*\([^)]*\)\s*`)

// declared returns the names of the top-level variables a GLSL source
// declares with qualifier ("in" or "out").
func declared(src, qualifier string) []string {
	var names []string
	for _, line := range strings.Split(src, "\n") {
		line = layoutQualifier.ReplaceAllString(strings.TrimSpace(line), "")
		fields := strings.Fields(strings.TrimSuffix(line, ";"))
		if len(fields) >= 3 && fields[0] == qualifier && strings.HasSuffix(line, ";") {
			names = append(names, fields[len(fields)-1])
		}
	}
	return names
}

func TestDeclared(t *testing.T) {
	src := "layout (location = 0) in vec2 in_vert;\nout vec2 frag_uv;\nin highp vec2 x;\nvoid main() {\n    frag_uv = in_vert;\n}\n"
	assert.Equal(t, []string{"in_vert", "x"}, declared(src, "in"))
	assert.Equal(t, []string{"frag_uv"}, declared(src, "out"))
}

func TestDesktopVaryingsLink(t *testing.T) {
	for _, kind := range shader.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			vs, fs, err := programSources(kind, false)
			require.NoError(t, err)

			inputs := declared(fs.Code, "in")
			require.NotEmpty(t, inputs, "fragment stage reads no varyings:\n%s", fs.Code)
			outputs := declared(vs, "out")
			for _, name := range inputs {
				assert.Contains(t, outputs, name, "vertex stage does not write %s:\n%s", name, vs)
			}
		})
	}
}

func TestGLESSourcesUntouched(t *testing.T) {
	for _, kind := range shader.Kinds() {
		vs, fs, err := programSources(kind, true)
		require.NoError(t, err)
		src, err := shader.GetFragmentShader(kind)
		require.NoError(t, err)
		assert.Equal(t, src, fs.Code)
		assert.Equal(t, shader.GenerateVertexShader(true), vs)
	}
}
