package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/golayers/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Options, map[string]bool) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse(args))
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	return o, explicit
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golayers.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	o, _ := parse(t)
	assert.Equal(t, "render", *o.Mode)
	assert.Equal(t, 1000, *o.Width)
	assert.Equal(t, 500, *o.Height)
	assert.Equal(t, 2, *o.Layers)
	assert.NoError(t, o.Validate())
}

func TestConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
width = 640
height = 480
layers = 4
output_dir = "renders"

[palette]
main = "#ff0000"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	o, explicit := parse(t, "-height", "300")
	cfg.Apply(o, explicit)
	assert.Equal(t, 640, *o.Width)
	assert.Equal(t, 300, *o.Height, "explicit flags win over the file")
	assert.Equal(t, 4, *o.Layers)
	assert.Equal(t, "renders", *o.OutputDir)
	assert.Equal(t, 50.0, *o.LineWidth)

	p, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, palette.New(255, 0, 0, 255), p.Main)
	assert.Equal(t, palette.White, p.Help)
}

func TestConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "width = ["))
	assert.Error(t, err)

	cfg, err := LoadConfig(writeConfig(t, "[palette]\nhelp = \"nope\"\n"))
	require.NoError(t, err)
	_, err = cfg.Palette()
	assert.ErrorContains(t, err, "palette.help")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"mode", []string{"-mode", "video"}},
		{"size", []string{"-width", "0"}},
		{"layers", []string{"-layers", "0"}},
		{"line width", []string{"-line-width", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := parse(t, tt.args...)
			assert.Error(t, o.Validate())
		})
	}
}
