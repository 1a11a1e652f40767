package draw

import (
	"image"

	"github.com/BeatGlow/canvas/pixel"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// GoRegular returns the Go Regular typeface at size points, rendered at 72 DPI
// so that one point is one pixel.
func GoRegular(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Text draws s with face, the baseline starting at dot. Glyph coverage scales
// the alpha of c, so text is anti-aliased against whatever dst holds. The
// returned point is the dot after the last glyph.
func Text[C any](dst Setter[pixel.Translucent[C]], face font.Face, dot image.Point, s string, c pixel.Translucent[C]) image.Point {
	var (
		d    = fixed.P(dot.X, dot.Y)
		prev = rune(-1)
	)
	for _, r := range s {
		if prev >= 0 {
			d.X += face.Kern(prev, r)
		}
		dr, mask, mp, advance, ok := face.Glyph(d, r)
		if !ok {
			continue
		}
		Mask(dst, dr, mask, mp, c)
		d.X += advance
		prev = r
	}
	return image.Pt(d.X.Round(), dot.Y)
}

// Mask blends c onto r, with the alpha of c scaled by the alpha of mask,
// aligning r.Min with mp in mask.
func Mask[C any](dst Setter[pixel.Translucent[C]], r image.Rectangle, mask image.Image, mp image.Point, c pixel.Translucent[C]) {
	alpha, _ := mask.(*image.Alpha)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			var (
				mx, my = mp.X + x - r.Min.X, mp.Y + y - r.Min.Y
				ma     uint32
			)
			if alpha != nil {
				ma = uint32(alpha.AlphaAt(mx, my).A)
			} else {
				_, _, _, a := mask.At(mx, my).RGBA()
				ma = a >> 8
			}
			if a := (ma*uint32(c.A) + 127) / 255; a != 0 {
				dst.Set(x, y, pixel.WithAlpha(c.Color, uint8(a)))
			}
		}
	}
}

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}
