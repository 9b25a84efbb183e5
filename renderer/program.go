package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/golayers/shader"
	"github.com/richinsley/golayers/translator"
)

// Program is a linked shader program plus the names its uniforms were
// emitted under.
type Program struct {
	ID       uint32
	fragment *translator.Shader
}

// Uniform returns the location of a uniform by its name in the WebGL2
// source, or -1 if the program does not use it.
func (p *Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(p.fragment.Name(name)+"\x00"))
}

func (p *Program) Destroy() {
	gl.DeleteProgram(p.ID)
}

// buildProgram compiles one of the built-in programs for the current context.
func buildProgram(kind shader.Kind, isGLES bool) (*Program, error) {
	vs, fs, err := programSources(kind, isGLES)
	if err != nil {
		return nil, err
	}
	id, err := newProgram(vs, fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create %v program: %w", kind, err)
	}
	return &Program{ID: id, fragment: fs}, nil
}

// programSources returns the vertex source and the fragment stage of kind.
// On desktop the fragment is translated to GLSL 330 and the vertex stage
// takes over the names its inputs were given.
func programSources(kind shader.Kind, isGLES bool) (string, *translator.Shader, error) {
	src, err := shader.GetFragmentShader(kind)
	if err != nil {
		return "", nil, err
	}
	if isGLES {
		return shader.GenerateVertexShader(true), translator.Passthrough(src), nil
	}
	fs, err := translator.ToGLSL330(src, "fragment")
	if err != nil {
		return "", nil, fmt.Errorf("%v: %w", kind, err)
	}
	return shader.GenerateVertexShaderFor(false, fs.Name), fs, nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
