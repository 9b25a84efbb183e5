package options

import (
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/richinsley/golayers/palette"
)

// Options holds the command line settings. Fields are pointers so they can
// be bound straight to flag definitions.
type Options struct {
	Help       *bool
	Mode       *string
	Width      *int
	Height     *int
	Layers     *int
	OutputDir  *string
	ConfigFile *string
	GPU        *bool
	LineWidth  *float64
}

// Config is the optional TOML file. Zero values leave the flag value alone.
type Config struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Layers    int     `toml:"layers"`
	OutputDir string  `toml:"output_dir"`
	LineWidth float64 `toml:"line_width"`
	Colors    struct {
		Main string `toml:"main"`
		Help string `toml:"help"`
	} `toml:"palette"`
}

// Register binds every option to fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", "render", "Run mode: render or interactive"),
		Width:      fs.Int("width", 1000, "Document width in pixels"),
		Height:     fs.Int("height", 500, "Document height in pixels"),
		Layers:     fs.Int("layers", 2, "Number of layers (at least 2 for thumbnails)"),
		OutputDir:  fs.String("out", ".", "Directory for rendered PNG files"),
		ConfigFile: fs.String("config", "", "Optional TOML configuration file"),
		GPU:        fs.Bool("gpu", false, "Compose through the OpenGL renderer in render mode"),
		LineWidth:  fs.Float64("line-width", 50, "Brush width in document pixels"),
	}
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply overlays the non-zero config values onto o, except for flags the
// user set explicitly on the command line.
func (c *Config) Apply(o *Options, explicit map[string]bool) {
	if c.Width > 0 && !explicit["width"] {
		*o.Width = c.Width
	}
	if c.Height > 0 && !explicit["height"] {
		*o.Height = c.Height
	}
	if c.Layers > 0 && !explicit["layers"] {
		*o.Layers = c.Layers
	}
	if c.OutputDir != "" && !explicit["out"] {
		*o.OutputDir = c.OutputDir
	}
	if c.LineWidth > 0 && !explicit["line-width"] {
		*o.LineWidth = c.LineWidth
	}
}

// Validate checks option values that flag parsing cannot.
func (o *Options) Validate() error {
	switch *o.Mode {
	case "render", "interactive":
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Layers < 1 {
		return fmt.Errorf("need at least one layer, got %d", *o.Layers)
	}
	if *o.LineWidth <= 0 {
		return fmt.Errorf("invalid line width %v", *o.LineWidth)
	}
	return nil
}

// Palette returns the configured colors, falling back to the defaults for
// any left empty.
func (c *Config) Palette() (palette.Palette, error) {
	p := palette.Default()
	if c.Colors.Main != "" {
		col, err := palette.ParseHex(c.Colors.Main)
		if err != nil {
			return p, fmt.Errorf("palette.main: %w", err)
		}
		p.Main = col
	}
	if c.Colors.Help != "" {
		col, err := palette.ParseHex(c.Colors.Help)
		if err != nil {
			return p, fmt.Errorf("palette.help: %w", err)
		}
		p.Help = col
	}
	return p, nil
}
