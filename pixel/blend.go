package pixel

import "image/color"

// Alpha levels.
const (
	Transparent uint8 = 0x00
	Opaque      uint8 = 0xff
)

// Translucent is an opaque color paired with an 8-bit alpha level. An alpha of [Opaque]
// passes the color through unchanged, an alpha of [Transparent] has no visible effect.
type Translucent[C any] struct {
	Color C
	A     uint8
}

// WithAlpha pairs c with alpha level a.
func WithAlpha[C any](c C, a uint8) Translucent[C] {
	return Translucent[C]{Color: c, A: a}
}

// Solid returns c as a fully opaque translucent color.
func Solid[C any](c C) Translucent[C] {
	return Translucent[C]{Color: c, A: Opaque}
}

// IsTransparent reports whether drawing t has no visible effect.
func (t Translucent[C]) IsTransparent() bool {
	return t.A == Transparent
}

// IsOpaque reports whether drawing t replaces the background.
func (t Translucent[C]) IsOpaque() bool {
	return t.A == Opaque
}

// FromRGBA quantizes a straight (non-premultiplied) color.RGBA into a translucent color
// of the model's encoding.
func FromRGBA[C any, M Model[C]](m M, c color.RGBA) Translucent[C] {
	return Translucent[C]{
		Color: m.Convert(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
		A:     c.A,
	}
}

// Blend composites foreground over the opaque background and returns the opaque result.
//
// Every channel is computed as round((fg*a + bg*(255-a)) / 255) in integer arithmetic,
// rounding half up, and clamped to the channel's range. An opaque foreground yields its
// color exactly, a transparent one yields background exactly.
func Blend[C any, M ChannelModel[C]](m M, background C, foreground Translucent[C]) C {
	switch foreground.A {
	case Transparent:
		return background
	case Opaque:
		return foreground.Color
	}

	var (
		fg  = m.Channels(foreground.Color)
		bg  = m.Channels(background)
		a   = uint32(foreground.A)
		out = bg
	)
	for i := 0; i < bg.Len; i++ {
		v := div255(uint32(fg.C[i].Value)*a + uint32(bg.C[i].Value)*(0xff-a))
		if top := uint32(bg.C[i].Max()); v > top {
			v = top
		}
		out.C[i].Value = uint8(v)
	}
	return m.Color(out)
}

// div255 divides x by 255 rounding half up, exact for x in [0, 65535].
//
// Formula: t = x + 128; (t + (t >> 8)) >> 8
//
// See Hacker's Delight 10-16.
func div255(x uint32) uint32 {
	t := x + 0x80
	return (t + (t >> 8)) >> 8
}
