package layers

import (
	"errors"
	"image/color"
	"testing"

	"github.com/richinsley/golayers/canvas"
	"github.com/richinsley/golayers/palette"
	"github.com/richinsley/golayers/thumbnail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, n int) *Manager {
	t.Helper()
	m, err := NewManager(200, 100)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := m.PushLayer()
		require.NoError(t, err)
	}
	return m
}

func TestPushLayerIDs(t *testing.T) {
	m := newManager(t, 3)
	ls := m.Layers()
	require.Len(t, ls, 3)
	for i, l := range ls {
		assert.Equal(t, i, l.ID())
		assert.Equal(t, 200, l.Canvas().Width())
		assert.Equal(t, 100, l.Canvas().Height())
	}

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel.ID())
}

func TestNewManagerInvalid(t *testing.T) {
	_, err := NewManager(0, 10)
	assert.Error(t, err)
}

func TestDrawInContextNotifies(t *testing.T) {
	m := newManager(t, 2)
	var got []Notification
	m.Subscribe(func(n Notification) { got = append(got, n) })

	err := m.DrawInContext(1, func(c *canvas.Canvas) error {
		return c.FillCircle(10, 10, 5, palette.Black)
	})
	require.NoError(t, err)
	assert.Equal(t, []Notification{{Kind: Changed, ID: 1}}, got)

	err = m.DrawInContext(7, func(*canvas.Canvas) error { return nil })
	assert.ErrorIs(t, err, ErrNoLayer)
	assert.Len(t, got, 1)
}

func TestDrawInContextReturnsDrawError(t *testing.T) {
	m := newManager(t, 1)
	boom := errors.New("boom")
	err := m.DrawInContext(0, func(*canvas.Canvas) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSelectAndDrawSelected(t *testing.T) {
	m := newManager(t, 3)
	var got []Notification
	m.Subscribe(func(n Notification) { got = append(got, n) })

	require.NoError(t, m.Select(2))
	var drawn *canvas.Canvas
	require.NoError(t, m.DrawSelected(func(c *canvas.Canvas) error {
		drawn = c
		return nil
	}))
	l, _ := m.Layer(2)
	assert.Same(t, l.Canvas(), drawn)
	assert.Equal(t, []Notification{{Selected, 2}, {Changed, 2}}, got)

	assert.ErrorIs(t, m.Select(9), ErrNoLayer)
}

func TestSelectNextWraps(t *testing.T) {
	m := newManager(t, 3)
	for _, want := range []int{1, 2, 0} {
		require.NoError(t, m.SelectNext())
		l, ok := m.Selected()
		require.True(t, ok)
		assert.Equal(t, want, l.ID())
	}

	empty, err := NewManager(1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, empty.SelectNext(), ErrNoLayer)
	assert.ErrorIs(t, empty.DrawSelected(func(*canvas.Canvas) error { return nil }), ErrNoLayer)
}

func TestUnsubscribe(t *testing.T) {
	m := newManager(t, 1)
	calls := 0
	id := m.Subscribe(func(Notification) { calls++ })
	other := 0
	m.Subscribe(func(Notification) { other++ })

	require.NoError(t, m.DrawSelected(func(*canvas.Canvas) error { return nil }))
	m.Unsubscribe(id)
	require.NoError(t, m.DrawSelected(func(*canvas.Canvas) error { return nil }))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestSubscriberMayReadManager(t *testing.T) {
	m := newManager(t, 2)
	var seen int
	m.Subscribe(func(n Notification) {
		l, ok := m.Layer(n.ID)
		if ok {
			seen = l.ID()
		}
	})
	require.NoError(t, m.DrawInContext(1, func(*canvas.Canvas) error { return nil }))
	assert.Equal(t, 1, seen)
}

func TestThumbnails(t *testing.T) {
	m := newManager(t, 2)
	require.NoError(t, m.DrawInContext(0, func(c *canvas.Canvas) error {
		c.Clear(palette.New(255, 0, 0, 255))
		return nil
	}))
	require.NoError(t, m.DrawInContext(1, func(c *canvas.Canvas) error {
		c.Clear(palette.New(0, 255, 0, 255))
		return nil
	}))

	a, b := thumbnail.NewRaster(), thumbnail.NewRaster()
	require.NoError(t, m.Thumbnails(thumbnail.Targets{
		"layer-canvas-1": a,
		"layer-canvas-2": b,
	}))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, a.RGBA().RGBAAt(50, 50))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, b.RGBA().RGBAAt(50, 50))

	err := m.Thumbnails(thumbnail.Targets{"layer-canvas-1": a})
	assert.ErrorIs(t, err, thumbnail.ErrMissingTarget)

	single := newManager(t, 1)
	assert.ErrorIs(t, single.Thumbnails(thumbnail.Targets{}), ErrNoLayer)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
