package pixel

import "image/color"

// MaxChannels is the largest number of channels an encoding may have.
const MaxChannels = 4

// Channel is the intensity of one color component.
type Channel struct {
	// Value is the intensity, in [0, Max()].
	Value uint8

	// Bits is the width of the component, between 1 and 8.
	Bits uint8
}

// Max is the largest intensity the channel can hold.
func (c Channel) Max() uint8 {
	return uint8(uint16(1)<<c.Bits - 1)
}

// Channels is the decomposed view of an opaque color. The layout (number of channels
// and their widths) is fixed per encoding.
type Channels struct {
	Len int
	C   [MaxChannels]Channel
}

// NewChannels builds a channel set from the given channels. Values are masked to their
// bit width.
func NewChannels(channels ...Channel) Channels {
	var cs Channels
	for _, c := range channels {
		if cs.Len == MaxChannels {
			break
		}
		c.Value &= c.Max()
		cs.C[cs.Len] = c
		cs.Len++
	}
	return cs
}

// At returns channel i.
func (cs Channels) At(i int) Channel {
	return cs.C[i]
}

// ChannelModel extracts and reconstructs the channels of an opaque color encoding.
//
// The round trip must be lossless: Color(Channels(c)) == c for every value c the model
// itself produces.
type ChannelModel[C any] interface {
	Channels(C) Channels
	Color(Channels) C
}

// Model is a ChannelModel that can also quantize arbitrary [color.Color] values.
type Model[C any] interface {
	ChannelModel[C]
	Convert(color.Color) C
}

// RGBA expands c to a straight 8-bit color. One-channel encodings are treated as gray.
func RGBA[C any, M ChannelModel[C]](m M, c C) color.RGBA {
	cs := m.Channels(c)
	switch cs.Len {
	case 0:
		return color.RGBA{A: 0xff}
	case 1, 2:
		y := scale8(cs.C[0])
		return color.RGBA{R: y, G: y, B: y, A: 0xff}
	default:
		return color.RGBA{R: scale8(cs.C[0]), G: scale8(cs.C[1]), B: scale8(cs.C[2]), A: 0xff}
	}
}

// scale8 maps the channel intensity onto [0, 255], rounding to nearest.
func scale8(c Channel) uint8 {
	top := uint32(c.Max())
	if top == 0xff || top == 0 {
		return c.Value
	}
	return uint8((uint32(c.Value)*0xff + top/2) / top)
}

// field returns n bits of v starting at shift as a channel.
func field(v uint16, shift, n uint8) Channel {
	c := Channel{Bits: n}
	c.Value = uint8(v>>shift) & c.Max()
	return c
}

// put places the intensity of c at shift, truncated to its bit width.
func put(c Channel, shift uint8) uint16 {
	return uint16(c.Value&c.Max()) << shift
}

// MonoChannels is the channel model of [Mono]: one 1-bit channel.
type MonoChannels struct{}

func (MonoChannels) Channels(c Mono) Channels {
	var v uint8
	if c.On {
		v = 1
	}
	return Channels{Len: 1, C: [MaxChannels]Channel{{Value: v, Bits: 1}}}
}

func (MonoChannels) Color(cs Channels) Mono {
	return Mono{On: cs.C[0].Value&1 != 0}
}

func (MonoChannels) Convert(c color.Color) Mono {
	return monoModel(c).(Mono)
}

// Gray2Channels is the channel model of [Gray2]: one 2-bit channel.
type Gray2Channels struct{}

func (Gray2Channels) Channels(c Gray2) Channels {
	return Channels{Len: 1, C: [MaxChannels]Channel{{Value: c.Y & 0x3, Bits: 2}}}
}

func (Gray2Channels) Color(cs Channels) Gray2 {
	return Gray2{Y: cs.C[0].Value & 0x3}
}

func (Gray2Channels) Convert(c color.Color) Gray2 {
	return gray2Model(c).(Gray2)
}

// Gray4Channels is the channel model of [Gray4]: one 4-bit channel.
type Gray4Channels struct{}

func (Gray4Channels) Channels(c Gray4) Channels {
	return Channels{Len: 1, C: [MaxChannels]Channel{{Value: c.Y & 0xf, Bits: 4}}}
}

func (Gray4Channels) Color(cs Channels) Gray4 {
	return Gray4{Y: cs.C[0].Value & 0xf}
}

func (Gray4Channels) Convert(c color.Color) Gray4 {
	return gray4Model(c).(Gray4)
}

// CRGB15Channels is the channel model of [CRGB15]: 5-5-5 bits red, green, blue.
type CRGB15Channels struct{}

func (CRGB15Channels) Channels(c CRGB15) Channels {
	return Channels{Len: 3, C: [MaxChannels]Channel{
		field(c.V, 10, 5),
		field(c.V, 5, 5),
		field(c.V, 0, 5),
	}}
}

func (CRGB15Channels) Color(cs Channels) CRGB15 {
	return CRGB15{V: put(cs.C[0], 10) | put(cs.C[1], 5) | put(cs.C[2], 0)}
}

func (CRGB15Channels) Convert(c color.Color) CRGB15 {
	return crgb15Model(c).(CRGB15)
}

// CRGB16Channels is the channel model of [CRGB16]: 5-6-5 bits red, green, blue.
type CRGB16Channels struct{}

func (CRGB16Channels) Channels(c CRGB16) Channels {
	return Channels{Len: 3, C: [MaxChannels]Channel{
		field(c.V, 11, 5),
		field(c.V, 5, 6),
		field(c.V, 0, 5),
	}}
}

func (CRGB16Channels) Color(cs Channels) CRGB16 {
	return CRGB16{V: put(cs.C[0], 11) | put(cs.C[1], 5) | put(cs.C[2], 0)}
}

func (CRGB16Channels) Convert(c color.Color) CRGB16 {
	return crgb16Model(c).(CRGB16)
}

// RGB666Channels is the channel model of [RGB666]: 6 bits per component.
type RGB666Channels struct{}

func (RGB666Channels) Channels(c RGB666) Channels {
	return Channels{Len: 3, C: [MaxChannels]Channel{
		{Value: c.R & 0x3f, Bits: 6},
		{Value: c.G & 0x3f, Bits: 6},
		{Value: c.B & 0x3f, Bits: 6},
	}}
}

func (RGB666Channels) Color(cs Channels) RGB666 {
	return RGB666{R: cs.C[0].Value & 0x3f, G: cs.C[1].Value & 0x3f, B: cs.C[2].Value & 0x3f}
}

func (RGB666Channels) Convert(c color.Color) RGB666 {
	return rgb666Model(c).(RGB666)
}

// RGB888Channels is the channel model of [RGB888]: 8 bits per component.
type RGB888Channels struct{}

func (RGB888Channels) Channels(c RGB888) Channels {
	return Channels{Len: 3, C: [MaxChannels]Channel{
		{Value: c.R, Bits: 8},
		{Value: c.G, Bits: 8},
		{Value: c.B, Bits: 8},
	}}
}

func (RGB888Channels) Color(cs Channels) RGB888 {
	return RGB888{R: cs.C[0].Value, G: cs.C[1].Value, B: cs.C[2].Value}
}

func (RGB888Channels) Convert(c color.Color) RGB888 {
	return rgb888Model(c).(RGB888)
}

// Interface checks.
var (
	_ Model[Mono]   = MonoChannels{}
	_ Model[Gray2]  = Gray2Channels{}
	_ Model[Gray4]  = Gray4Channels{}
	_ Model[CRGB15] = CRGB15Channels{}
	_ Model[CRGB16] = CRGB16Channels{}
	_ Model[RGB666] = RGB666Channels{}
	_ Model[RGB888] = RGB888Channels{}
)
