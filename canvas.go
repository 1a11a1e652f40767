package canvas

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/BeatGlow/canvas/pixel"
)

// Strategy is the buffering strategy of a canvas.
type Strategy uint8

// Supported strategies.
const (
	SingleBuffered Strategy = iota // Draw and flush from one buffer
	DoubleBuffered                 // Draw to back, diff against front on flush
)

func (s Strategy) String() string {
	switch s {
	case SingleBuffered:
		return "single"
	case DoubleBuffered:
		return "double"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Config is the canvas configuration.
type Config struct {
	// Width of the canvas in pixels.
	Width int

	// Height of the canvas in pixels.
	Height int

	// Strategy selects single (default) or double buffering.
	Strategy Strategy
}

// state is the part of a canvas that surfaces write to.
type state[C comparable] struct {
	buf   *Buffer[C]
	clip  image.Rectangle
	dirty image.Rectangle
	busy  bool
}

// mark records r as touched since the last flush.
func (s *state[C]) mark(r image.Rectangle) {
	if s.dirty.Empty() {
		s.dirty = r
		return
	}
	s.dirty = s.dirty.Union(r)
}

func (s *state[C]) markPoint(x, y int) {
	d := &s.dirty
	if d.Empty() {
		*d = image.Rect(x, y, x+1, y+1)
		return
	}
	if x < d.Min.X {
		d.Min.X = x
	} else if x >= d.Max.X {
		d.Max.X = x + 1
	}
	if y < d.Min.Y {
		d.Min.Y = y
	} else if y >= d.Max.Y {
		d.Max.Y = y + 1
	}
}

func (s *state[C]) in(x, y int) bool {
	return x >= s.clip.Min.X && y >= s.clip.Min.Y && x < s.clip.Max.X && y < s.clip.Max.Y
}

// Canvas owns a display target and the buffers holding its pixels.
type Canvas[C comparable, M pixel.ChannelModel[C]] struct {
	state[C]
	target   Target[C]
	model    M
	strategy Strategy
	front    *Buffer[C]
	full     bool
}

// NewSingleBuffered returns a canvas that draws into pix and forwards the
// touched region to target on each flush.
func NewSingleBuffered[C comparable, M pixel.ChannelModel[C]](target Target[C], model M, pix []C, width, height int) (*Canvas[C, M], error) {
	buf, err := NewBuffer(pix, width, height)
	if err != nil {
		return nil, err
	}
	return newCanvas(target, model, SingleBuffered, buf, nil)
}

// NewDoubleBuffered returns a canvas that draws into back and on each flush
// forwards the cells that differ from front. The storages must be distinct.
func NewDoubleBuffered[C comparable, M pixel.ChannelModel[C]](target Target[C], model M, back, front []C, width, height int) (*Canvas[C, M], error) {
	b, err := NewBuffer(back, width, height)
	if err != nil {
		return nil, err
	}
	f, err := NewBuffer(front, width, height)
	if err != nil {
		return nil, err
	}
	if overlaps(back, front) {
		return nil, fmt.Errorf("canvas: %w: back and front share storage", ErrConfiguration)
	}
	return newCanvas(target, model, DoubleBuffered, b, f)
}

// New returns a canvas as described by config. Single buffering takes one
// storage slice, double buffering takes two (back and front).
func New[C comparable, M pixel.ChannelModel[C]](target Target[C], model M, config *Config, storage ...[]C) (*Canvas[C, M], error) {
	if config == nil {
		return nil, fmt.Errorf("canvas: %w: no config", ErrConfiguration)
	}
	switch config.Strategy {
	case SingleBuffered:
		if len(storage) != 1 {
			return nil, fmt.Errorf("canvas: %w: single buffering takes 1 storage, got %d", ErrConfiguration, len(storage))
		}
		return NewSingleBuffered(target, model, storage[0], config.Width, config.Height)
	case DoubleBuffered:
		if len(storage) != 2 {
			return nil, fmt.Errorf("canvas: %w: double buffering takes 2 storages, got %d", ErrConfiguration, len(storage))
		}
		return NewDoubleBuffered(target, model, storage[0], storage[1], config.Width, config.Height)
	default:
		return nil, fmt.Errorf("canvas: %w: unknown strategy %s", ErrConfiguration, config.Strategy)
	}
}

func newCanvas[C comparable, M pixel.ChannelModel[C]](target Target[C], model M, strategy Strategy, back, front *Buffer[C]) (*Canvas[C, M], error) {
	if target == nil {
		return nil, fmt.Errorf("canvas: %w: no target", ErrConfiguration)
	}
	c := &Canvas[C, M]{
		state: state[C]{
			buf:  back,
			clip: back.Bounds().Intersect(target.Bounds()),
		},
		target:   target,
		model:    model,
		strategy: strategy,
		front:    front,
	}
	if l := Logger(); debugEnabled(l) {
		l.Debug("canvas: new", "strategy", strategy, "size", back.Bounds().Size(), "clip", c.clip)
	}
	return c, nil
}

// Bounds is the drawable area: the buffer extent clipped to the target bounds.
func (c *Canvas[C, M]) Bounds() image.Rectangle {
	return c.clip
}

// Strategy is the buffering strategy.
func (c *Canvas[C, M]) Strategy() Strategy {
	return c.strategy
}

// Model is the channel model used for blending.
func (c *Canvas[C, M]) Model() M {
	return c.model
}

// At returns the color at (x, y) in the buffer being drawn to.
func (c *Canvas[C, M]) At(x, y int) C {
	return c.buf.At(x, y)
}

// Draw calls f with a surface that writes opaque colors into the buffer being
// drawn to. The surface must not be used after f returns. Draw returns the
// error returned by f, or ErrBusy if another surface is in use.
func (c *Canvas[C, M]) Draw(f func(*Surface[C]) error) error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	s := &Surface[C]{s: &c.state}
	defer func() {
		s.s = nil
		c.busy = false
	}()
	return f(s)
}

// DrawAlpha calls f with a surface that composites translucent colors onto
// the buffer being drawn to. The surface must not be used after f returns.
// DrawAlpha returns the error returned by f, or ErrBusy if another surface is
// in use.
func (c *Canvas[C, M]) DrawAlpha(f func(*AlphaSurface[C, M]) error) error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	s := &AlphaSurface[C, M]{s: &c.state, m: c.model}
	defer func() {
		s.s = nil
		c.busy = false
	}()
	return f(s)
}

// Clear fills the target with color and resets all buffers to it, so that the
// buffers match what the display shows. Pending draws are discarded. If the
// target fails, its error is returned and the buffers are left as they were.
func (c *Canvas[C, M]) Clear(color C) error {
	if c.busy {
		return ErrBusy
	}
	if err := c.target.Clear(color); err != nil {
		return err
	}
	c.buf.Fill(color)
	if c.front != nil {
		c.front.Fill(color)
	}
	c.dirty = image.Rectangle{}
	c.full = false
	return nil
}

// Invalidate marks the whole canvas as changed, the next flush forwards every
// cell regardless of what the display is believed to show.
func (c *Canvas[C, M]) Invalidate() {
	c.full = true
}

// overlaps reports whether a and b share any element of their backing arrays.
func overlaps[C any](a, b []C) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	size := unsafe.Sizeof(a[0])
	if size == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}
