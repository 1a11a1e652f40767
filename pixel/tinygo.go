package pixel

import (
	"image/color"
	"math/bits"

	tinypixel "tinygo.org/x/drivers/pixel"
)

// Channel models for the pixel formats of the TinyGo display drivers, so buffers can be
// kept in the exact encoding the driver streams to the panel.

// RGB565BEChannels is the channel model of the byte swapped 5-6-5 format used by most
// TinyGo SPI display drivers.
type RGB565BEChannels struct{}

func (RGB565BEChannels) Channels(c tinypixel.RGB565BE) Channels {
	v := bits.ReverseBytes16(uint16(c))
	return Channels{Len: 3, C: [MaxChannels]Channel{
		field(v, 11, 5),
		field(v, 5, 6),
		field(v, 0, 5),
	}}
}

func (RGB565BEChannels) Color(cs Channels) tinypixel.RGB565BE {
	v := put(cs.C[0], 11) | put(cs.C[1], 5) | put(cs.C[2], 0)
	return tinypixel.RGB565BE(bits.ReverseBytes16(v))
}

func (RGB565BEChannels) Convert(c color.Color) tinypixel.RGB565BE {
	r, g, b := rgb8(c)
	return tinypixel.NewRGB565BE(r, g, b)
}

// RGB555Channels is the channel model of the 0bbbbbgg_gggrrrrr format.
type RGB555Channels struct{}

func (RGB555Channels) Channels(c tinypixel.RGB555) Channels {
	v := uint16(c)
	return Channels{Len: 3, C: [MaxChannels]Channel{
		field(v, 0, 5),
		field(v, 5, 5),
		field(v, 10, 5),
	}}
}

func (RGB555Channels) Color(cs Channels) tinypixel.RGB555 {
	return tinypixel.RGB555(put(cs.C[0], 0) | put(cs.C[1], 5) | put(cs.C[2], 10))
}

func (RGB555Channels) Convert(c color.Color) tinypixel.RGB555 {
	r, g, b := rgb8(c)
	return tinypixel.NewRGB555(r, g, b)
}

// RGB444BEChannels is the channel model of the 12-bit 0000rrrr_ggggbbbb format.
type RGB444BEChannels struct{}

func (RGB444BEChannels) Channels(c tinypixel.RGB444BE) Channels {
	v := uint16(c)
	return Channels{Len: 3, C: [MaxChannels]Channel{
		field(v, 8, 4),
		field(v, 4, 4),
		field(v, 0, 4),
	}}
}

func (RGB444BEChannels) Color(cs Channels) tinypixel.RGB444BE {
	return tinypixel.RGB444BE(put(cs.C[0], 8) | put(cs.C[1], 4) | put(cs.C[2], 0))
}

func (RGB444BEChannels) Convert(c color.Color) tinypixel.RGB444BE {
	r, g, b := rgb8(c)
	return tinypixel.NewRGB444BE(r, g, b)
}

// TinyRGB888Channels is the channel model of the TinyGo 24-bit format.
type TinyRGB888Channels struct{}

func (TinyRGB888Channels) Channels(c tinypixel.RGB888) Channels {
	return Channels{Len: 3, C: [MaxChannels]Channel{
		{Value: c.R, Bits: 8},
		{Value: c.G, Bits: 8},
		{Value: c.B, Bits: 8},
	}}
}

func (TinyRGB888Channels) Color(cs Channels) tinypixel.RGB888 {
	return tinypixel.NewRGB888(cs.C[0].Value, cs.C[1].Value, cs.C[2].Value)
}

func (TinyRGB888Channels) Convert(c color.Color) tinypixel.RGB888 {
	r, g, b := rgb8(c)
	return tinypixel.NewRGB888(r, g, b)
}

// MonochromeChannels is the channel model of the TinyGo 1-bit format.
type MonochromeChannels struct{}

func (MonochromeChannels) Channels(c tinypixel.Monochrome) Channels {
	var v uint8
	if c {
		v = 1
	}
	return Channels{Len: 1, C: [MaxChannels]Channel{{Value: v, Bits: 1}}}
}

func (MonochromeChannels) Color(cs Channels) tinypixel.Monochrome {
	return tinypixel.Monochrome(cs.C[0].Value&1 != 0)
}

func (MonochromeChannels) Convert(c color.Color) tinypixel.Monochrome {
	r, g, b := rgb8(c)
	return tinypixel.NewMonochrome(r, g, b)
}

func rgb8(c color.Color) (r, g, b uint8) {
	v := color.RGBAModel.Convert(c).(color.RGBA)
	return v.R, v.G, v.B
}

var (
	_ Model[tinypixel.RGB565BE]   = RGB565BEChannels{}
	_ Model[tinypixel.RGB555]     = RGB555Channels{}
	_ Model[tinypixel.RGB444BE]   = RGB444BEChannels{}
	_ Model[tinypixel.RGB888]     = TinyRGB888Channels{}
	_ Model[tinypixel.Monochrome] = MonochromeChannels{}
)
