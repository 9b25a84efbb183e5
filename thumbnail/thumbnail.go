// Package thumbnail renders the two debug layer previews: each source surface
// is scaled to fit a fixed Size×Size target.
//
// Targets are passed in explicitly. Resolve and RenderDebug keep the fixed
// "layer-canvas-N" identifiers available for hosts that look targets up by
// name, such as a browser document.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
)

// Size is the width and height of every thumbnail target, in pixels.
const Size = 100

// IDs are the thumbnail identifiers in source order: source 0 is always drawn
// into IDs[0] and source 1 into IDs[1].
var IDs = [2]string{"layer-canvas-1", "layer-canvas-2"}

var (
	// ErrMissingTarget is returned when a thumbnail target is absent.
	ErrMissingTarget = errors.New("thumbnail target not found")
	// ErrDegenerateSource is returned for sources with no area.
	ErrDegenerateSource = errors.New("source surface has zero width or height")
)

// Source is a drawable image with intrinsic pixel dimensions.
type Source interface {
	Width() int
	Height() int
	Image() image.Image
}

// Target is a surface the thumbnail is drawn into.
type Target interface {
	// SetSize resizes the backing surface and discards its previous contents.
	SetSize(width, height int) error
	// DrawScaled draws the whole of src at the origin with s applied.
	DrawScaled(src Source, s Scale) error
}

// Resolver finds a target by identifier.
type Resolver interface {
	Lookup(id string) (Target, bool)
}

// Scale is a per-axis scale transform.
type Scale struct {
	X, Y float64
}

// Apply maps a point in source space to target space.
func (s Scale) Apply(x, y float64) (float64, float64) {
	return x * s.X, y * s.Y
}

// Fit returns the scale that stretches src over a width×height area.
func Fit(width, height int, src Source) (Scale, error) {
	if src == nil {
		return Scale{}, fmt.Errorf("nil source: %w", ErrDegenerateSource)
	}
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return Scale{}, fmt.Errorf("source is %dx%d: %w", w, h, ErrDegenerateSource)
	}
	return Scale{
		X: float64(width) / float64(w),
		Y: float64(height) / float64(h),
	}, nil
}

// Render draws sources[i] into targets[i]. Every precondition is checked
// before any target is touched, so a failed call leaves both targets as they
// were.
func Render(sources [2]Source, targets [2]Target) error {
	var scales [2]Scale
	for i := range sources {
		if targets[i] == nil {
			return fmt.Errorf("%s: %w", IDs[i], ErrMissingTarget)
		}
		s, err := Fit(Size, Size, sources[i])
		if err != nil {
			return fmt.Errorf("%s: %w", IDs[i], err)
		}
		scales[i] = s
	}

	// Sizing first: it resets whatever the target held, including any
	// transform a previous call left behind.
	for i, t := range targets {
		if err := t.SetSize(Size, Size); err != nil {
			return fmt.Errorf("failed to size %s: %w", IDs[i], err)
		}
	}
	for i, t := range targets {
		if err := t.DrawScaled(sources[i], scales[i]); err != nil {
			return fmt.Errorf("failed to draw %s: %w", IDs[i], err)
		}
	}
	return nil
}

// Resolve looks up both thumbnail targets, in IDs order.
func Resolve(r Resolver) ([2]Target, error) {
	var targets [2]Target
	for i, id := range IDs {
		t, ok := r.Lookup(id)
		if !ok || t == nil {
			return targets, fmt.Errorf("#%s: %w", id, ErrMissingTarget)
		}
		targets[i] = t
	}
	return targets, nil
}

// RenderDebug resolves the two thumbnail targets from r and renders src1 and
// src2 into them.
func RenderDebug(r Resolver, src1, src2 Source) error {
	targets, err := Resolve(r)
	if err != nil {
		return err
	}
	return Render([2]Source{src1, src2}, targets)
}

// Targets is a Resolver over a fixed map of identifiers.
type Targets map[string]Target

func (t Targets) Lookup(id string) (Target, bool) {
	target, ok := t[id]
	return target, ok
}
