package canvas

import (
	"image"
	"iter"

	"github.com/BeatGlow/canvas/pixel"
)

const errScope = "canvas: surface used outside of its draw callback"

// Surface writes opaque colors into a canvas buffer. It is only valid inside
// the callback passed to [Canvas.Draw].
//
// All writes are clipped to [Surface.Bounds]. Later writes to the same
// coordinate replace earlier ones.
type Surface[C comparable] struct {
	s *state[C]
}

func (s *Surface[C]) state() *state[C] {
	if s.s == nil {
		panic(errScope)
	}
	return s.s
}

// Bounds is the drawable area.
func (s *Surface[C]) Bounds() image.Rectangle {
	return s.state().clip
}

// At returns the color at (x, y).
func (s *Surface[C]) At(x, y int) C {
	return s.state().buf.At(x, y)
}

// Set the color at (x, y).
func (s *Surface[C]) Set(x, y int, c C) {
	st := s.state()
	if !st.in(x, y) {
		return
	}
	st.buf.pix[y*st.buf.width+x] = c
	st.markPoint(x, y)
}

// DrawPixels writes a sequence of pixels.
func (s *Surface[C]) DrawPixels(pixels iter.Seq[Pixel[C]]) {
	for p := range pixels {
		s.Set(p.Point.X, p.Point.Y, p.Color)
	}
}

// FillRect fills r with c.
func (s *Surface[C]) FillRect(r image.Rectangle, c C) {
	st := s.state()
	r = r.Intersect(st.clip)
	if r.Empty() {
		return
	}
	st.buf.FillRect(r, c)
	st.mark(r)
}

// FillContiguous fills r with colors in row-major order. Colors are consumed
// for every cell of r, including those that are clipped, so the sequence
// lines up with the unclipped rectangle. Filling stops when colors runs out.
func (s *Surface[C]) FillContiguous(r image.Rectangle, colors iter.Seq[C]) {
	st := s.state()
	fillContiguous(st, r, colors, func(i int, c C) {
		st.buf.pix[i] = c
	})
}

// Fill the drawable area with c.
func (s *Surface[C]) Fill(c C) {
	s.FillRect(s.state().clip, c)
}

// AlphaSurface composites translucent colors onto a canvas buffer. Every write
// reads the current cell as background and stores the blended result. It is
// only valid inside the callback passed to [Canvas.DrawAlpha].
//
// All writes are clipped to [AlphaSurface.Bounds].
type AlphaSurface[C comparable, M pixel.ChannelModel[C]] struct {
	s *state[C]
	m M
}

func (s *AlphaSurface[C, M]) state() *state[C] {
	if s.s == nil {
		panic(errScope)
	}
	return s.s
}

// Bounds is the drawable area.
func (s *AlphaSurface[C, M]) Bounds() image.Rectangle {
	return s.state().clip
}

// Model is the channel model colors are blended with.
func (s *AlphaSurface[C, M]) Model() M {
	return s.m
}

// At returns the opaque color at (x, y).
func (s *AlphaSurface[C, M]) At(x, y int) C {
	return s.state().buf.At(x, y)
}

// Set blends t onto the color at (x, y).
func (s *AlphaSurface[C, M]) Set(x, y int, t pixel.Translucent[C]) {
	st := s.state()
	if t.IsTransparent() || !st.in(x, y) {
		return
	}
	i := y*st.buf.width + x
	st.buf.pix[i] = pixel.Blend(s.m, st.buf.pix[i], t)
	st.markPoint(x, y)
}

// DrawPixels blends a sequence of translucent pixels.
func (s *AlphaSurface[C, M]) DrawPixels(pixels iter.Seq[Pixel[pixel.Translucent[C]]]) {
	for p := range pixels {
		s.Set(p.Point.X, p.Point.Y, p.Color)
	}
}

// FillRect blends t onto every cell of r. Transparent colors are skipped and
// opaque colors overwrite without blending. Runs of cells sharing the same
// background are blended once.
func (s *AlphaSurface[C, M]) FillRect(r image.Rectangle, t pixel.Translucent[C]) {
	st := s.state()
	r = r.Intersect(st.clip)
	if r.Empty() || t.IsTransparent() {
		return
	}
	if t.IsOpaque() {
		st.buf.FillRect(r, t.Color)
		st.mark(r)
		return
	}

	var (
		bg, out C
		cached  bool
	)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := st.buf.Row(y, r.Min.X, r.Max.X)
		for i, c := range row {
			if !cached || c != bg {
				bg, out, cached = c, pixel.Blend(s.m, c, t), true
			}
			row[i] = out
		}
	}
	st.mark(r)
}

// FillContiguous blends colors onto r in row-major order. Colors are consumed
// for every cell of r, including those that are clipped. Filling stops when
// colors runs out.
func (s *AlphaSurface[C, M]) FillContiguous(r image.Rectangle, colors iter.Seq[pixel.Translucent[C]]) {
	st := s.state()
	fillContiguous(st, r, colors, func(i int, t pixel.Translucent[C]) {
		st.buf.pix[i] = pixel.Blend(s.m, st.buf.pix[i], t)
	})
}

// Fill blends t onto the drawable area.
func (s *AlphaSurface[C, M]) Fill(t pixel.Translucent[C]) {
	s.FillRect(s.state().clip, t)
}

// fillContiguous walks the unclipped rectangle r in row-major order, pulling one
// value per cell, and calls set with the buffer index of each cell inside the
// clip region.
func fillContiguous[C comparable, V any](st *state[C], r image.Rectangle, values iter.Seq[V], set func(int, V)) {
	if r.Empty() {
		return
	}
	var (
		clip    = r.Intersect(st.clip)
		x, y    = r.Min.X, r.Min.Y
		touched bool
	)
	if clip.Empty() {
		return
	}
	for v := range values {
		if x >= clip.Min.X && x < clip.Max.X && y >= clip.Min.Y && y < clip.Max.Y {
			set(y*st.buf.width+x, v)
			touched = true
		}
		if x++; x == r.Max.X {
			x = r.Min.X
			if y++; y == r.Max.Y || y >= clip.Max.Y {
				break
			}
		}
	}
	if touched {
		st.mark(clip)
	}
}
