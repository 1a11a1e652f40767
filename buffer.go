package canvas

import (
	"fmt"
	"image"
	"iter"
)

// Buffer is a fixed size, row-major pixel buffer over caller-owned storage.
//
// Coordinates outside of the buffer are ignored by all methods.
type Buffer[C comparable] struct {
	pix    []C
	width  int
	height int
}

// NewBuffer wraps pix as a width by height buffer. The storage is used as is
// and never reallocated; its length must be exactly width*height.
func NewBuffer[C comparable](pix []C, width, height int) (*Buffer[C], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: %w: size %dx%d", ErrConfiguration, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("canvas: %w: storage holds %d pixels, %dx%d needs %d",
			ErrConfiguration, len(pix), width, height, width*height)
	}
	return &Buffer[C]{
		pix:    pix,
		width:  width,
		height: height,
	}, nil
}

// Bounds is the buffer extent, anchored at the origin.
func (b *Buffer[C]) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Pix returns the underlying storage.
func (b *Buffer[C]) Pix() []C {
	return b.pix
}

func (b *Buffer[C]) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// At returns the color at (x, y), or the zero color if (x, y) is out of bounds.
func (b *Buffer[C]) At(x, y int) C {
	if !b.in(x, y) {
		var zero C
		return zero
	}
	return b.pix[y*b.width+x]
}

// Set the color at (x, y).
func (b *Buffer[C]) Set(x, y int, c C) {
	if b.in(x, y) {
		b.pix[y*b.width+x] = c
	}
}

// Row returns the cells of row y between x0 and x1 (exclusive). The slice
// aliases the storage. The range must be within bounds.
func (b *Buffer[C]) Row(y, x0, x1 int) []C {
	off := y * b.width
	return b.pix[off+x0 : off+x1]
}

// FillRect fills the part of r that overlaps the buffer with c.
func (b *Buffer[C]) FillRect(r image.Rectangle, c C) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.Row(y, r.Min.X, r.Max.X)
		for i := range row {
			row[i] = c
		}
	}
}

// Fill the whole buffer with c.
func (b *Buffer[C]) Fill(c C) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// CopyFrom copies the contents of other, which must have the same size.
func (b *Buffer[C]) CopyFrom(other *Buffer[C]) {
	copy(b.pix, other.pix)
}

// Changed yields, in row-major order, the cells of b that differ from other.
// Both buffers must have the same size.
func (b *Buffer[C]) Changed(other *Buffer[C]) iter.Seq[Pixel[C]] {
	return func(yield func(Pixel[C]) bool) {
		for i, c := range b.pix {
			if c == other.pix[i] {
				continue
			}
			if !yield(Pixel[C]{Point: image.Pt(i%b.width, i/b.width), Color: c}) {
				return
			}
		}
	}
}

// ChangedRuns yields the horizontal runs of cells of b that differ from other,
// as the position of the first cell and the run colors. The run slices alias
// the storage of b. Both buffers must have the same size.
func (b *Buffer[C]) ChangedRuns(other *Buffer[C]) iter.Seq2[image.Point, []C] {
	return func(yield func(image.Point, []C) bool) {
		for y := 0; y < b.height; y++ {
			var (
				row   = b.Row(y, 0, b.width)
				prev  = other.Row(y, 0, b.width)
				start = -1
			)
			for x := range row {
				if row[x] != prev[x] {
					if start < 0 {
						start = x
					}
					continue
				}
				if start >= 0 {
					if !yield(image.Pt(start, y), row[start:x]) {
						return
					}
					start = -1
				}
			}
			if start >= 0 {
				if !yield(image.Pt(start, y), row[start:]) {
					return
				}
			}
		}
	}
}

// Pixels yields every cell of r that lies within the buffer, row-major.
func (b *Buffer[C]) Pixels(r image.Rectangle) iter.Seq[Pixel[C]] {
	r = r.Intersect(b.Bounds())
	return func(yield func(Pixel[C]) bool) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if !yield(Pixel[C]{Point: image.Pt(x, y), Color: b.pix[y*b.width+x]}) {
					return
				}
			}
		}
	}
}
