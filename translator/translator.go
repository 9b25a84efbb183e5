// Package translator converts the WebGL2 shader sources to desktop GLSL.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// Shader is a translated shader stage.
type Shader struct {
	Code string
	// Names maps each uniform, attribute and varying name in the WebGL2 source to the
	// name the translator emitted for it.
	Names map[string]string
}

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// ToGLSL330 translates a WebGL2 stage ("vertex" or "fragment").
func ToGLSL330(source, stage string) (*Shader, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return &Shader{Code: out.Code, Names: names}, nil
}

// Passthrough wraps a source that needs no translation; every name maps to
// itself.
func Passthrough(source string) *Shader {
	return &Shader{Code: source}
}

// Name returns the emitted name for an original identifier.
func (s *Shader) Name(original string) string {
	if mapped, ok := s.Names[original]; ok {
		return mapped
	}
	return original
}
