// Package draw rasterizes shapes, images and text onto canvas surfaces.
//
// Every function writes through a [Setter], so the same shape can be drawn
// opaque on a canvas Surface or translucent on a canvas AlphaSurface.
// Shapes write each covered pixel exactly once, which keeps translucent
// outlines from blending twice where segments meet.
package draw

import (
	"image"
	"image/color"

	"github.com/BeatGlow/canvas/pixel"
)

// Setter is a surface that accepts pixel writes and rectangle fills of values V.
type Setter[V any] interface {
	Set(x, y int, v V)
	FillRect(r image.Rectangle, v V)
}

// Image composites the rectangle r of dst with src aligned so that r.Min in
// dst matches sp in src. The alpha of src is honoured.
func Image[C any, M pixel.Model[C]](dst Setter[pixel.Translucent[C]], m M, r image.Rectangle, src image.Image, sp image.Point) {
	off := sp.Sub(r.Min)
	r = r.Intersect(src.Bounds().Sub(off))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x+off.X, y+off.Y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dst.Set(x, y, pixel.FromRGBA[C](m, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}))
		}
	}
}
