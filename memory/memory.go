// Package memory implements an in-memory display target that records every
// write it receives.
package memory

import (
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

// Errors
var (
	ErrBounds   = errors.New("memory: write out of bounds")
	ErrInjected = errors.New("memory: injected failure")
)

// Target is a display held in memory. It records the writes it receives, and
// can be told to fail part way through a write.
//
// The zero value is not usable, see New.
type Target[C comparable] struct {
	rect   image.Rectangle
	pix    []C
	writes []canvas.Pixel[C]

	// Calls counts DrawPixels and DrawRun calls.
	Calls int

	// Fills counts FillRect calls.
	Fills int

	// Clears counts Clear calls.
	Clears int

	failAfter int
	failErr   error
}

// New returns a target of w by h pixels, all set to the zero color.
func New[C comparable](w, h int) *Target[C] {
	return &Target[C]{
		rect:      image.Rect(0, 0, w, h),
		pix:       make([]C, w*h),
		failAfter: -1,
	}
}

// FailAfter arms a one-shot failure: the write that would store pixel n+1
// (counting from now) fails with err, or ErrInjected if err is nil.
func (t *Target[C]) FailAfter(n int, err error) {
	if err == nil {
		err = ErrInjected
	}
	t.failAfter, t.failErr = n, err
}

// Reset forgets the recorded writes and counters. The pixels are kept.
func (t *Target[C]) Reset() {
	t.writes = t.writes[:0]
	t.Calls, t.Fills, t.Clears = 0, 0, 0
}

// Writes are the pixels received through DrawPixels and DrawRun since the last
// Reset, in order.
func (t *Target[C]) Writes() []canvas.Pixel[C] {
	return t.writes
}

func (t *Target[C]) Bounds() image.Rectangle {
	return t.rect
}

// At returns the color of the pixel at (x, y).
func (t *Target[C]) At(x, y int) C {
	if !image.Pt(x, y).In(t.rect) {
		var zero C
		return zero
	}
	return t.pix[y*t.rect.Dx()+x]
}

func (t *Target[C]) store(x, y int, c C) error {
	if !image.Pt(x, y).In(t.rect) {
		return fmt.Errorf("%w: (%d,%d) not in %s", ErrBounds, x, y, t.rect)
	}
	if t.failAfter == 0 {
		t.failAfter = -1
		return t.failErr
	} else if t.failAfter > 0 {
		t.failAfter--
	}
	t.pix[y*t.rect.Dx()+x] = c
	t.writes = append(t.writes, canvas.Pixel[C]{Point: image.Pt(x, y), Color: c})
	return nil
}

func (t *Target[C]) DrawPixels(pixels iter.Seq[canvas.Pixel[C]]) error {
	t.Calls++
	for p := range pixels {
		if err := t.store(p.Point.X, p.Point.Y, p.Color); err != nil {
			return err
		}
	}
	return nil
}

func (t *Target[C]) FillRect(r image.Rectangle, c C) error {
	t.Fills++
	if !r.In(t.rect) {
		return fmt.Errorf("%w: %s not in %s", ErrBounds, r, t.rect)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.pix[y*t.rect.Dx()+x] = c
		}
	}
	return nil
}

func (t *Target[C]) Clear(c C) error {
	t.Clears++
	for i := range t.pix {
		t.pix[i] = c
	}
	return nil
}

// RunTarget is a Target that also accepts horizontal runs.
type RunTarget[C comparable] struct {
	*Target[C]

	// Runs are the lengths of the runs received since the last Reset.
	Runs []int
}

// NewRuns returns a run accepting target of w by h pixels.
func NewRuns[C comparable](w, h int) *RunTarget[C] {
	return &RunTarget[C]{Target: New[C](w, h)}
}

func (t *RunTarget[C]) Reset() {
	t.Target.Reset()
	t.Runs = t.Runs[:0]
}

func (t *RunTarget[C]) DrawRun(p image.Point, colors []C) error {
	t.Calls++
	t.Runs = append(t.Runs, len(colors))
	for i, c := range colors {
		if err := t.store(p.X+i, p.Y, c); err != nil {
			return err
		}
	}
	return nil
}

// Image renders the target contents as an RGBA image.
func Image[C comparable, M pixel.ChannelModel[C]](t *Target[C], m M) *image.RGBA {
	i := image.NewRGBA(t.rect)
	for y := t.rect.Min.Y; y < t.rect.Max.Y; y++ {
		for x := t.rect.Min.X; x < t.rect.Max.X; x++ {
			i.SetRGBA(x, y, pixel.RGBA(m, t.At(x, y)))
		}
	}
	return i
}

// Interface checks.
var (
	_ canvas.Target[pixel.CRGB16]    = (*Target[pixel.CRGB16])(nil)
	_ canvas.RunDrawer[pixel.CRGB16] = (*RunTarget[pixel.CRGB16])(nil)
)
