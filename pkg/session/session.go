// Package session ties the state, geometry, render and filter layers together
// for one editing session.
//
// A Session is the single logical owner of its Assignment: the editing
// surface routes every slider, toggle and drag gesture through it. Each
// mutation re-arms a debounce timer (about one display frame) so that rapid
// continuous input produces one composed frame for the latest state instead
// of one per event. A frame that was scheduled and then superseded is never
// delivered; last write wins.
package session

import (
	"image"
	"sync"
	"time"

	"github.com/ironsheep/slot-compose/pkg/crop"
	"github.com/ironsheep/slot-compose/pkg/filter"
	"github.com/ironsheep/slot-compose/pkg/geom"
	"github.com/ironsheep/slot-compose/pkg/render"
	"github.com/ironsheep/slot-compose/pkg/state"
)

// DefaultDebounce is the re-render coalescing interval, roughly one frame at
// 60 Hz.
const DefaultDebounce = 16 * time.Millisecond

// FrameFunc receives composed frames from debounced re-renders.
type FrameFunc func(image.Image)

// Session owns one image assignment and produces composed frames for it.
type Session struct {
	mu       sync.Mutex
	mgr      *state.Manager
	src      image.Image
	cache    *render.Cache
	debounce *Debouncer
	gen      uint64
	lastKey  string
	onFrame  FrameFunc
}

// New creates a session for a decoded source image placed into a slot with
// the given aspect ratio. onFrame may be nil when the caller only uses the
// synchronous Render and Export paths.
func New(sourceID string, src image.Image, slotAspect float64, onFrame FrameFunc) *Session {
	b := src.Bounds()
	return &Session{
		mgr:      state.NewManager(sourceID, float64(b.Dx()), float64(b.Dy()), slotAspect),
		src:      src,
		cache:    render.NewCache(),
		debounce: NewDebouncer(DefaultDebounce),
		onFrame:  onFrame,
	}
}

// Assignment returns a copy of the current assignment state.
func (s *Session) Assignment() state.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Assignment()
}

// Chain returns the current ordered filter-operation list, for surfaces that
// apply the chain themselves at render or export time.
func (s *Session) Chain() []filter.Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Chain(s.mgr.Assignment())
}

// PixelCrop returns the display-space crop rectangle for drawing handles.
func (s *Session) PixelCrop() (x, y, w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.mgr.Cropper().PixelCrop()
	return r.X, r.Y, r.Width, r.Height
}

// SetValue updates one filter slider and schedules a re-render.
func (s *Session) SetValue(name state.FilterName, v float64) {
	s.mutate(func() { s.mgr.SetValue(name, v) })
}

// SetRotation updates the rotation, re-deriving the crop, and schedules a
// re-render.
func (s *Session) SetRotation(deg float64) {
	s.mutate(func() { s.mgr.SetRotation(deg) })
}

// SetMirror toggles the presentation flip and schedules a re-render.
func (s *Session) SetMirror(on bool) {
	s.mutate(func() { s.mgr.SetMirror(on) })
}

// ToggleFilter flips one filter's enable flag and schedules a re-render.
func (s *Session) ToggleFilter(name state.FilterName) {
	s.mutate(func() { s.mgr.ToggleFilter(name) })
}

// SetEnabled sets the master toggle and schedules a re-render.
func (s *Session) SetEnabled(on bool) {
	s.mutate(func() { s.mgr.SetEnabled(on) })
}

// SetPreset selects a preset (radio semantics) and schedules a re-render.
func (s *Session) SetPreset(kind state.PresetKind, color string) {
	s.mutate(func() { s.mgr.SetPreset(kind, color) })
}

// ResetAll restores the assignment to its initial state and schedules a
// re-render.
func (s *Session) ResetAll() {
	s.mutate(func() { s.mgr.ResetAll() })
}

// SetCrop replaces the percentage crop, e.g. when restoring a persisted
// assignment. The rect is re-fit to the slot aspect and constrained into the
// current footprint.
func (s *Session) SetCrop(x, y, w, h float64) {
	s.mutate(func() {
		s.mgr.Cropper().SetCrop(geom.Rect{X: x, Y: y, Width: w, Height: h})
		s.mgr.SyncCrop()
	})
}

// Move translates the crop by a pointer delta in display pixels.
func (s *Session) Move(dx, dy float64) {
	s.mutate(func() {
		s.mgr.Cropper().Move(dx, dy)
		s.mgr.SyncCrop()
	})
}

// Resize drags a crop corner to the pointer position in display pixels.
func (s *Session) Resize(h crop.Handle, px, py float64) {
	s.mutate(func() {
		s.mgr.Cropper().Resize(h, px, py)
		s.mgr.SyncCrop()
	})
}

// Zoom scales the crop from its center by wheel steps.
func (s *Session) Zoom(steps int) {
	s.mutate(func() {
		s.mgr.Cropper().Zoom(steps)
		s.mgr.SyncCrop()
	})
}

func (s *Session) mutate(apply func()) {
	s.mu.Lock()
	apply()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	if s.onFrame == nil {
		return
	}
	s.debounce.Trigger(func() { s.deliver(gen) })
}

// deliver composes and emits a frame unless a newer mutation superseded the
// one that scheduled it.
func (s *Session) deliver(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	frame, err := s.composeLocked(0, 0)
	s.mu.Unlock()
	if err != nil {
		return
	}
	s.onFrame(frame)
}

// Render composes the current frame synchronously at native crop resolution.
func (s *Session) Render() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composeLocked(0, 0)
}

// Export composes the current frame synchronously at an explicit output
// size, bypassing the debounce and the frame cache. This is the final
// high-resolution export pass.
func (s *Session) Export(w, h int) (image.Image, error) {
	s.mu.Lock()
	a := s.mgr.Assignment()
	s.mu.Unlock()
	return compose(s.src, a, w, h)
}

// Close stops the debounce timer. No frame is delivered afterwards.
func (s *Session) Close() {
	s.debounce.Stop()
}

func (s *Session) composeLocked(w, h int) (image.Image, error) {
	a := s.mgr.Assignment()
	key := render.Key(a, w, h)
	if frame, ok := s.cache.Get(key); ok {
		return frame, nil
	}
	frame, err := compose(s.src, a, w, h)
	if err != nil {
		return nil, err
	}
	// Superseded states are never revisited, so drop the previous frame
	// instead of letting entries pile up over a long editing session.
	if s.lastKey != "" && s.lastKey != key {
		s.cache.Evict(s.lastKey)
	}
	s.lastKey = key
	s.cache.Put(key, frame)
	return frame, nil
}

// compose runs the full pipeline for one assignment: rotate-then-crop
// rasterization, the ordered filter chain, then the presentation mirror.
func compose(src image.Image, a state.Assignment, w, h int) (image.Image, error) {
	raster, err := render.TransformSized(src, a.Rotation, a.Crop, w, h)
	if err != nil {
		return nil, err
	}
	out := image.Image(raster)
	if ops := filter.Chain(a); len(ops) > 0 {
		out = filter.Apply(out, ops)
	}
	if a.Mirror {
		out = render.Mirror(out)
	}
	return out, nil
}
