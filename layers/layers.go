// Package layers keeps the ordered stack of paint layers and tells
// subscribers when one of them changes.
package layers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/richinsley/golayers/canvas"
	"github.com/richinsley/golayers/thumbnail"
)

// ErrNoLayer is returned for an unknown layer id.
var ErrNoLayer = errors.New("no such layer")

// Kind says what happened to a layer.
type Kind int

const (
	Changed Kind = iota
	Selected
	Added
)

func (k Kind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Selected:
		return "selected"
	case Added:
		return "added"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Notification is delivered to subscribers after a layer mutation.
type Notification struct {
	Kind Kind
	ID   int
}

// Layer is one paintable surface in the stack.
type Layer struct {
	id     int
	canvas *canvas.Canvas
}

func (l *Layer) ID() int { return l.id }

// Canvas returns the layer's drawing surface.
func (l *Layer) Canvas() *canvas.Canvas { return l.canvas }

type subscriber struct {
	id int
	fn func(Notification)
}

// Manager owns the layers of one document. All layers share the document
// size.
type Manager struct {
	mu          sync.Mutex
	width       int
	height      int
	layers      []*Layer
	nextID      int
	selected    int
	subscribers []subscriber
	nextSubID   int
}

func NewManager(width, height int) (*Manager, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid document size %dx%d", width, height)
	}
	return &Manager{width: width, height: height, selected: -1}, nil
}

func (m *Manager) Size() (int, int) {
	return m.width, m.height
}

// PushLayer appends a transparent layer on top of the stack and returns its
// id. The first layer pushed becomes the selected one.
func (m *Manager) PushLayer() (int, error) {
	c, err := canvas.New(m.width, m.height)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.layers = append(m.layers, &Layer{id: id, canvas: c})
	if m.selected < 0 {
		m.selected = id
	}
	subs := m.subscribersLocked()
	m.mu.Unlock()

	notify(subs, Notification{Kind: Added, ID: id})
	return id, nil
}

// Layer returns the layer with the given id.
func (m *Manager) Layer(id int) (*Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.layerLocked(id)
	return l, l != nil
}

// Layers returns the layers bottom to top.
func (m *Manager) Layers() []*Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.layers)
}

// Select makes id the layer DrawSelected paints into.
func (m *Manager) Select(id int) error {
	m.mu.Lock()
	if m.layerLocked(id) == nil {
		m.mu.Unlock()
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	m.selected = id
	subs := m.subscribersLocked()
	m.mu.Unlock()

	notify(subs, Notification{Kind: Selected, ID: id})
	return nil
}

// Selected returns the selected layer, if any layer exists.
func (m *Manager) Selected() (*Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.layerLocked(m.selected)
	return l, l != nil
}

// SelectNext moves the selection one layer up, wrapping to the bottom.
func (m *Manager) SelectNext() error {
	m.mu.Lock()
	if len(m.layers) == 0 {
		m.mu.Unlock()
		return ErrNoLayer
	}
	next := m.layers[0].id
	for i, l := range m.layers {
		if l.id == m.selected && i+1 < len(m.layers) {
			next = m.layers[i+1].id
			break
		}
	}
	m.mu.Unlock()
	return m.Select(next)
}

// DrawInContext runs fn against the canvas of layer id and then notifies
// subscribers that the layer changed. The manager lock is held while fn
// runs, so fn must not call back into the manager.
func (m *Manager) DrawInContext(id int, fn func(*canvas.Canvas) error) error {
	m.mu.Lock()
	l := m.layerLocked(id)
	if l == nil {
		m.mu.Unlock()
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	err := fn(l.canvas)
	subs := m.subscribersLocked()
	m.mu.Unlock()

	notify(subs, Notification{Kind: Changed, ID: id})
	return err
}

// DrawSelected is DrawInContext for the selected layer.
func (m *Manager) DrawSelected(fn func(*canvas.Canvas) error) error {
	m.mu.Lock()
	id := m.selected
	m.mu.Unlock()
	if id < 0 {
		return fmt.Errorf("nothing selected: %w", ErrNoLayer)
	}
	return m.DrawInContext(id, fn)
}

// Subscribe registers fn for notifications and returns a handle for
// Unsubscribe. Callbacks run on the goroutine that made the change.
func (m *Manager) Subscribe(fn func(Notification)) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	return id
}

func (m *Manager) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subscribers {
		if s.id == id {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			return
		}
	}
}

// Thumbnails renders the two bottom layers into the debug thumbnail targets
// resolved from r.
func (m *Manager) Thumbnails(r thumbnail.Resolver) error {
	ls := m.Layers()
	if len(ls) < 2 {
		return fmt.Errorf("need two layers for thumbnails, have %d: %w", len(ls), ErrNoLayer)
	}
	return thumbnail.RenderDebug(r, ls[0].canvas, ls[1].canvas)
}

func (m *Manager) layerLocked(id int) *Layer {
	for _, l := range m.layers {
		if l.id == id {
			return l
		}
	}
	return nil
}

func (m *Manager) subscribersLocked() []subscriber {
	subs := make([]subscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	return subs
}

func notify(subs []subscriber, n Notification) {
	for _, s := range subs {
		s.fn(n)
	}
}
