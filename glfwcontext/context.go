package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/golayers/graphics"
)

// PointerHandler receives pointer events in window coordinates.
type PointerHandler interface {
	MouseDown(x, y float64) error
	MouseMove(x, y float64) error
	MouseUp(x, y float64) error
	// Wheel reports whether the scroll was consumed.
	Wheel(ctrl bool, dy float64) bool
}

// Context wraps a GLFW window and forwards its input.
type Context struct {
	window  *glfw.Window
	pointer PointerHandler
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
	// onZoom is called after the pointer handler consumed a scroll.
	onZoom func()
}

var _ graphics.Context = (*Context)(nil)

// New creates and initializes a new GLFW window and returns a Context object.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetScrollCallback(c.glfwScrollCallback)

	return c, nil
}

// SetPointerHandler routes mouse input to h.
func (c *Context) SetPointerHandler(h PointerHandler) {
	c.pointer = h
}

// OnZoom registers f to run after a scroll the pointer handler consumed.
func (c *Context) OnZoom(f func()) {
	c.onZoom = f
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if c.pointer == nil || button != glfw.MouseButtonLeft {
		return
	}
	x, y := w.GetCursorPos()
	var err error
	switch action {
	case glfw.Press:
		err = c.pointer.MouseDown(x, y)
	case glfw.Release:
		err = c.pointer.MouseUp(x, y)
	}
	if err != nil {
		log.Printf("Pointer: %v", err)
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	if c.pointer == nil {
		return
	}
	if err := c.pointer.MouseMove(x, y); err != nil {
		log.Printf("Pointer: %v", err)
	}
}

func (c *Context) glfwScrollCallback(w *glfw.Window, xoff, yoff float64) {
	if c.pointer == nil {
		return
	}
	ctrl := w.GetKey(glfw.KeyLeftControl) == glfw.Press || w.GetKey(glfw.KeyRightControl) == glfw.Press
	// GLFW reports scrolling up as positive; wheel deltas grow downwards.
	if c.pointer.Wheel(ctrl, -yoff) && c.onZoom != nil {
		c.onZoom()
	}
}

// SetSize resizes the window in screen coordinates.
func (c *Context) SetSize(width, height int) {
	c.window.SetSize(width, height)
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
