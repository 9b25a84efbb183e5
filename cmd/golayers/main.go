package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/golayers/canvas"
	"github.com/richinsley/golayers/glfwcontext"
	"github.com/richinsley/golayers/headless"
	"github.com/richinsley/golayers/layers"
	"github.com/richinsley/golayers/options"
	"github.com/richinsley/golayers/paint"
	"github.com/richinsley/golayers/palette"
	"github.com/richinsley/golayers/renderer"
	"github.com/richinsley/golayers/thumbnail"
)

const wheelRadius = 100

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("golayers: layered paint document renderer")
		flag.PrintDefaults()
		return
	}

	pal := palette.Default()
	if *opts.ConfigFile != "" {
		cfg, err := options.LoadConfig(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		cfg.Apply(opts, explicit)
		if pal, err = cfg.Palette(); err != nil {
			log.Fatalf("Error in config: %v", err)
		}
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	p, err := newDocument(opts)
	if err != nil {
		log.Fatalf("Failed to create document: %v", err)
	}
	p.SetPalette(pal)

	switch *opts.Mode {
	case "render":
		if err := runRender(p, opts); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
	case "interactive":
		if err := runInteractive(p); err != nil {
			log.Fatalf("Interactive session failed: %v", err)
		}
	}
}

func newDocument(opts *options.Options) (*paint.Painter, error) {
	m, err := layers.NewManager(*opts.Width, *opts.Height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < *opts.Layers; i++ {
		if _, err := m.PushLayer(); err != nil {
			return nil, err
		}
	}
	m.Subscribe(func(n layers.Notification) {
		if n.Kind != layers.Changed {
			log.Printf("Layer %d %s", n.ID, n.Kind)
		}
	})
	p := paint.New(m)
	p.LineWidth = *opts.LineWidth
	return p, nil
}

// drawDemo paints a color wheel on the bottom layer and a pair of strokes
// on each layer above it.
func drawDemo(p *paint.Painter) error {
	w, h := p.Manager.Size()
	fw, fh := float64(w), float64(h)
	r := math.Min(fw, fh) / 3

	bottom := p.Manager.Layers()[0]
	if err := p.Manager.DrawInContext(bottom.ID(), func(c *canvas.Canvas) error {
		c.HSVCircle(fw/4, fh/2, r)
		return c.DrawCircle(fw/4, fh/2, r, 2)
	}); err != nil {
		return err
	}

	for i, l := range p.Manager.Layers()[1:] {
		if err := p.Manager.Select(l.ID()); err != nil {
			return err
		}
		// Pick a stroke color off the wheel, a little further round per layer.
		angle := float64(i+1) * math.Pi / 3
		col, _ := palette.PickHSV(mgl64.Vec2{math.Cos(angle), math.Sin(angle)})
		p.SetPalette(palette.Palette{Main: col, Help: p.Palette().Help})

		y := fh * float64(i+1) / float64(p.Manager.Len())
		stroke := [][2]float64{{fw / 2, y}, {fw * 0.7, y - fh/8}, {fw * 0.9, y}}
		if err := p.MouseDown(stroke[0][0], stroke[0][1]); err != nil {
			return err
		}
		for _, pt := range stroke[1:] {
			if err := p.MouseMove(pt[0], pt[1]); err != nil {
				return err
			}
		}
		last := stroke[len(stroke)-1]
		if err := p.MouseUp(last[0], last[1]); err != nil {
			return err
		}
	}
	return nil
}

func runRender(p *paint.Painter, opts *options.Options) error {
	pal := p.Palette()
	if err := drawDemo(p); err != nil {
		return fmt.Errorf("failed to draw demo document: %w", err)
	}
	p.SetPalette(pal)

	if err := os.MkdirAll(*opts.OutputDir, 0o755); err != nil {
		return err
	}

	w, h := p.Manager.Size()
	composite, err := canvas.New(w, h)
	if err != nil {
		return err
	}
	defer composite.Close()

	if *opts.GPU {
		img, err := composeGPU(p, w, h)
		if err != nil {
			return err
		}
		composite.DrawImage(img)
	} else if err := p.Compose(composite); err != nil {
		return err
	}
	if err := writePNG(filepath.Join(*opts.OutputDir, "composite.png"), composite); err != nil {
		return err
	}

	if p.Manager.Len() < 2 {
		log.Printf("Skipping thumbnails: document has %d layer", p.Manager.Len())
		return nil
	}
	targets := thumbnail.Targets{}
	for _, id := range thumbnail.IDs {
		c, err := canvas.New(thumbnail.Size, thumbnail.Size)
		if err != nil {
			return err
		}
		defer c.Close()
		targets[id] = c
	}
	if err := p.Manager.Thumbnails(targets); err != nil {
		return err
	}
	for _, id := range thumbnail.IDs {
		if err := writePNG(filepath.Join(*opts.OutputDir, id+".png"), targets[id].(*canvas.Canvas)); err != nil {
			return err
		}
	}
	return nil
}

func composeGPU(p *paint.Painter, w, h int) (image.Image, error) {
	ctx, err := headless.NewHeadless(w, h)
	if err != nil {
		return nil, err
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Shutdown()
	return r.RenderOffscreen(scene(p), w, h)
}

func scene(p *paint.Painter) renderer.Scene {
	s := renderer.Scene{CellSize: p.CheckerCell() * p.Scale()}
	for _, l := range p.Manager.Layers() {
		s.Layers = append(s.Layers, l.Canvas().Image())
	}
	return s
}

func writePNG(path string, c *canvas.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	log.Printf("Wrote %s", path)
	return f.Close()
}

// picker routes the next click to the color wheel instead of the painter.
type picker struct {
	*paint.Painter
	active bool
	x, y   float64
}

func (k *picker) MouseDown(x, y float64) error {
	if !k.active {
		return k.Painter.MouseDown(x, y)
	}
	col, _ := palette.PickHSV(mgl64.Vec2{x - k.x, y - k.y}.Mul(1.0 / wheelRadius))
	pal := k.Palette()
	pal.Main = col
	k.SetPalette(pal)
	k.active = false
	return nil
}

func (k *picker) MouseUp(x, y float64) error {
	if !k.Stroking() {
		return nil
	}
	return k.Painter.MouseUp(x, y)
}

func runInteractive(p *paint.Painter) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	w, h := p.Manager.Size()
	ctx, err := glfwcontext.New(w, h, "golayers", true)
	if err != nil {
		return err
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	k := &picker{Painter: p}
	ctx.SetPointerHandler(k)
	ctx.OnZoom(func() {
		s := p.Scale()
		ctx.SetSize(int(math.Round(float64(w)*s)), int(math.Round(float64(h)*s)))
	})
	ctx.RegisterKeyCallback(glfw.KeyTab, func() {
		if err := p.Manager.SelectNext(); err != nil {
			log.Printf("Select: %v", err)
		}
	})
	ctx.RegisterKeyCallback(glfw.KeyS, p.SwapColors)
	ctx.RegisterKeyCallback(glfw.KeyD, func() { p.SetPalette(palette.Default()) })
	ctx.RegisterKeyCallback(glfw.KeyC, func() {
		fw, fh := ctx.GetFramebufferSize()
		k.active = !k.active
		k.x, k.y = float64(fw)/2, float64(fh)/2
	})

	log.Println("Starting interactive loop...")
	for !ctx.ShouldClose() {
		if !k.active {
			r.Present(scene(p))
		} else {
			fw, fh := ctx.GetFramebufferSize()
			r.Draw(scene(p), fw, fh)
			r.DrawHSVCircle(int(k.x), int(k.y), wheelRadius, fh)
			ctx.EndFrame()
		}
	}
	return nil
}
