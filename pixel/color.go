package pixel

import "image/color"

// Models for the standard color types.
var (
	MonoModel   color.Model = color.ModelFunc(monoModel)
	Gray2Model  color.Model = color.ModelFunc(gray2Model)
	Gray4Model  color.Model = color.ModelFunc(gray4Model)
	CRGB15Model color.Model = color.ModelFunc(crgb15Model)
	CRGB16Model color.Model = color.ModelFunc(crgb16Model)
	RGB666Model color.Model = color.ModelFunc(rgb666Model)
	RGB888Model color.Model = color.ModelFunc(rgb888Model)
)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	return Mono{On: luma(c)&0x80 != 0}
}

// luma returns the 8-bit luminance of c, with the JFIF weights that
// color.GrayModel uses (19595 + 38470 + 7471 = 1<<16).
func luma(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	return uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 24)
}

// Gray2 represents a 2-bit grayscale color, Y is in [0, 3].
type Gray2 struct {
	Y uint8
}

func (c Gray2) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 0x3)
	y |= y << 2
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

func gray2Model(c color.Color) color.Color {
	if _, ok := c.(Gray2); ok {
		return c
	}
	return Gray2{Y: luma(c) >> 6}
}

// Gray4 represents a 4-bit grayscale color, Y is in [0, 15].
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 0xf)
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

func gray4Model(c color.Color) color.Color {
	if _, ok := c.(Gray4); ok {
		return c
	}
	return Gray4{Y: luma(c) >> 4}
}

// CRGB15 represents a 15-bit 5-5-5 RGB color.
type CRGB15 struct {
	// CIgnore, 1, CRed, 5, CGreen, 5, CBlue, 5
	V uint16
}

func (c CRGB15) RGBA() (r, g, b, a uint32) {
	return expand5(c.V >> 10), expand5(c.V >> 5), expand5(c.V), 0xffff
}

// expand5 widens the low 5 bits of v to 16 bits by bit replication.
func expand5(v uint16) uint32 {
	x := uint32(v&0x1f) << 11
	return x | x>>5 | x>>10 | x>>15
}

// expand6 widens the low 6 bits of v to 16 bits by bit replication.
func expand6(v uint16) uint32 {
	x := uint32(v&0x3f) << 10
	return x | x>>6 | x>>12
}

func crgb15Model(c color.Color) color.Color {
	if _, ok := c.(CRGB15); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return CRGB15{uint16(r>>11)<<10 | uint16(g>>11)<<5 | uint16(b>>11)}
}

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	return expand5(c.V >> 11), expand6(c.V >> 5), expand5(c.V), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case Mono:
		if c.On {
			return CRGB16{0xffff}
		}
		return CRGB16{}
	case CRGB16:
		return c
	default:
		r, g, b, _ := c.RGBA()
		return CRGB16{uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)}
	}
}

// RGB666 represents an 18-bit color as used by ILI9488 class panels, each component is
// in [0, 63].
type RGB666 struct {
	R, G, B uint8
}

func (c RGB666) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R&0x3f) << 2
	g = uint32(c.G&0x3f) << 2
	b = uint32(c.B&0x3f) << 2
	r |= r >> 6
	g |= g >> 6
	b |= b >> 6
	r |= r << 8
	g |= g << 8
	b |= b << 8
	return r, g, b, 0xffff
}

func rgb666Model(c color.Color) color.Color {
	if _, ok := c.(RGB666); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB666{R: uint8(r >> 10), G: uint8(g >> 10), B: uint8(b >> 10)}
}

// RGB888 represents a 24-bit true color.
type RGB888 struct {
	R, G, B uint8
}

func (c RGB888) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	g = uint32(c.G)
	b = uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

func rgb888Model(c color.Color) color.Color {
	if _, ok := c.(RGB888); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB888{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
