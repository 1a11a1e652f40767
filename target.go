package canvas

import (
	"image"
	"iter"
)

// Pixel is a color at a point.
type Pixel[C any] struct {
	Point image.Point
	Color C
}

// Target is a physical display that accepts opaque pixel writes.
//
// Errors returned by a Target are passed back to the caller of
// [Canvas.Flush] and [Canvas.Clear] unchanged.
type Target[C any] interface {
	// Bounds of the display. Writes outside of it are never issued.
	Bounds() image.Rectangle

	// DrawPixels writes a batch of pixels.
	DrawPixels(iter.Seq[Pixel[C]]) error

	// FillRect fills the rectangle with a single color.
	FillRect(image.Rectangle, C) error

	// Clear fills the whole display with a single color.
	Clear(C) error
}

// RunDrawer is implemented by targets that can write a horizontal run of
// pixels more efficiently than individual pixels, such as displays that
// accept an address window followed by a stream of pixel data.
//
// The colors slice is only valid for the duration of the call.
type RunDrawer[C any] interface {
	DrawRun(p image.Point, colors []C) error
}
