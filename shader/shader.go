package shader

import "fmt"

// Kind names one of the built-in fragment programs.
type Kind int

const (
	// CopyImage samples a texture over the whole viewport.
	CopyImage Kind = iota
	// Checkerboard fills the viewport with two alternating colors.
	Checkerboard
	// HSVCircle draws a hue/saturation wheel inscribed in the viewport.
	HSVCircle
)

func (k Kind) String() string {
	switch k {
	case CopyImage:
		return "copy-image"
	case Checkerboard:
		return "checkerboard"
	case HSVCircle:
		return "hsv-circle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Uniform names, as written in the WebGL2 sources.
const (
	UniformImage    = "image"
	UniformCellSize = "cellSize"
	UniformColorA   = "colorA"
	UniformColorB   = "colorB"
	AttribVertexPos = 0
)

// Varyings written by the vertex stage: frag_coord spans [-1, 1] with y up,
// frag_uv spans [0, 1].
const (
	VaryingCoord = "frag_coord"
	VaryingUV    = "frag_uv"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// The varying names are filled in by GenerateVertexShaderFor: translated
// fragment stages rename their inputs.
const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 %[1]s;
out vec2 %[2]s;
void main() {
    %[1]s = in_vert;
    %[2]s = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 %[1]s;
out vec2 %[2]s;
void main() {
    %[1]s = in_vert;
    %[2]s = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// Layer pixels are uploaded top row first, so v is flipped on the way out.
const copyImageFragmentSource = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D image;
void main() {
    fragColor = texture(image, vec2(frag_uv.x, 1.0 - frag_uv.y));
}
`

const checkerboardFragmentSource = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform vec2 cellSize;
uniform vec3 colorA;
uniform vec3 colorB;
void main() {
    vec2 uv = vec2(frag_uv.x, 1.0 - frag_uv.y);
    if ((int(uv.x / cellSize.x) + int(uv.y / cellSize.y)) % 2 == 0)
        fragColor = vec4(colorA, 1.0);
    else
        fragColor = vec4(colorB, 1.0);
}
`

const hsvCircleFragmentSource = `#version 300 es
precision mediump float;
in vec2 frag_coord;
out vec4 fragColor;

vec3 hsvToRgb(float hue, float s, float v) {
    float h = hue / 60.0;
    float c = v * s;
    float x = c * (1.0 - abs(mod(h, 2.0) - 1.0));
    vec3 rgb;
    if (h < 1.0) rgb = vec3(c, x, 0.0);
    else if (h < 2.0) rgb = vec3(x, c, 0.0);
    else if (h < 3.0) rgb = vec3(0.0, c, x);
    else if (h < 4.0) rgb = vec3(0.0, x, c);
    else if (h < 5.0) rgb = vec3(x, 0.0, c);
    else rgb = vec3(c, 0.0, x);
    float m = v - c;
    return rgb + vec3(m);
}

const float PIx2 = 6.283185307;

void main() {
    float dist = length(frag_coord);
    if (dist > 1.0)
        discard;
    vec2 norm = dist > 0.0 ? frag_coord / dist : vec2(1.0, 0.0);
    float angle = acos(clamp(norm.x, -1.0, 1.0));
    // frag_coord has y pointing up; screen space has it pointing down.
    if (norm.y >= 0.0)
        angle = PIx2 - angle;
    fragColor = vec4(hsvToRgb(angle * 360.0 / PIx2, pow(dist, 1.7), 1.0), 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader(isGLES bool) string {
	return GenerateVertexShaderFor(isGLES, func(name string) string { return name })
}

// GenerateVertexShaderFor emits the vertex stage with each varying renamed
// by name, so it links against a fragment stage the translator rewrote.
func GenerateVertexShaderFor(isGLES bool, name func(string) string) string {
	src := vertexShaderSourceGL
	if isGLES {
		src = vertexShaderSourceGLES
	}
	return fmt.Sprintf(src, name(VaryingCoord), name(VaryingUV))
}

// GetFragmentShader returns the WebGL2 source of a built-in program. Desktop
// core profiles need it translated first.
func GetFragmentShader(kind Kind) (string, error) {
	switch kind {
	case CopyImage:
		return copyImageFragmentSource, nil
	case Checkerboard:
		return checkerboardFragmentSource, nil
	case HSVCircle:
		return hsvCircleFragmentSource, nil
	}
	return "", fmt.Errorf("unknown shader kind %v", kind)
}

// Kinds lists every built-in fragment program.
func Kinds() []Kind {
	return []Kind{CopyImage, Checkerboard, HSVCircle}
}
