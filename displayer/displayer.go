// Package displayer connects canvases to TinyGo display drivers.
//
// A [Target] pushes canvas pixels to any [drivers.Displayer], and a [Surface]
// presents an alpha surface as a [drivers.Displayer] so that TinyGo renderers
// such as tinyfont can draw translucent content into a canvas.
package displayer

import (
	"image"
	"image/color"
	"iter"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// filler is implemented by drivers that can fill a rectangle in one go.
type filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Target is a canvas target backed by a TinyGo display driver. Every batch of
// writes ends with a call to Display.
type Target[C any, M pixel.ChannelModel[C]] struct {
	d drivers.Displayer
	m M
}

// New returns a target that converts colors for d with m.
func New[C any, M pixel.ChannelModel[C]](d drivers.Displayer, m M) *Target[C, M] {
	return &Target[C, M]{d: d, m: m}
}

func (t *Target[C, M]) Bounds() image.Rectangle {
	w, h := t.d.Size()
	return image.Rect(0, 0, int(w), int(h))
}

func (t *Target[C, M]) DrawPixels(pixels iter.Seq[canvas.Pixel[C]]) error {
	for p := range pixels {
		t.d.SetPixel(int16(p.Point.X), int16(p.Point.Y), pixel.RGBA(t.m, p.Color))
	}
	return t.d.Display()
}

func (t *Target[C, M]) FillRect(r image.Rectangle, c C) error {
	r = r.Intersect(t.Bounds())
	if r.Empty() {
		return nil
	}
	rgba := pixel.RGBA(t.m, c)
	if f, ok := t.d.(filler); ok {
		if err := f.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), rgba); err != nil {
			return err
		}
		return t.d.Display()
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.d.SetPixel(int16(x), int16(y), rgba)
		}
	}
	return t.d.Display()
}

func (t *Target[C, M]) Clear(c C) error {
	return t.FillRect(t.Bounds(), c)
}

// Surface is a [drivers.Displayer] that blends everything drawn on it onto an
// alpha surface. The alpha of the colors it receives is taken as straight
// (not premultiplied) alpha.
//
// A Surface is only usable while the alpha surface it wraps is.
type Surface[C comparable, M pixel.Model[C]] struct {
	s *canvas.AlphaSurface[C, M]
}

// NewSurface wraps s.
func NewSurface[C comparable, M pixel.Model[C]](s *canvas.AlphaSurface[C, M]) *Surface[C, M] {
	return &Surface[C, M]{s: s}
}

func (d *Surface[C, M]) Size() (x, y int16) {
	b := d.s.Bounds()
	return int16(b.Max.X), int16(b.Max.Y)
}

func (d *Surface[C, M]) SetPixel(x, y int16, c color.RGBA) {
	d.s.Set(int(x), int(y), pixel.FromRGBA[C](d.s.Model(), c))
}

// Display is a no-op: pixels become visible when the canvas is flushed.
func (d *Surface[C, M]) Display() error {
	return nil
}

func (d *Surface[C, M]) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.s.FillRect(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), pixel.FromRGBA[C](d.s.Model(), c))
	return nil
}

// WriteLine renders str with a tinyfont font onto s, the baseline starting at (x, y).
func WriteLine[C comparable, M pixel.Model[C]](s *canvas.AlphaSurface[C, M], font tinyfont.Fonter, x, y int16, str string, c color.RGBA) {
	tinyfont.WriteLine(NewSurface(s), font, x, y, str, c)
}

// Interface checks.
var (
	_ canvas.Target[pixel.CRGB16] = (*Target[pixel.CRGB16, pixel.CRGB16Channels])(nil)
	_ drivers.Displayer           = (*Surface[pixel.CRGB16, pixel.CRGB16Channels])(nil)
	_ filler                      = (*Surface[pixel.CRGB16, pixel.CRGB16Channels])(nil)
)
