package pixel

import (
	"image/color"
	"testing"

	tinypixel "tinygo.org/x/drivers/pixel"
)

func testRoundTrip[C comparable, M ChannelModel[C]](t *testing.T, m M, colors func(yield func(C) bool)) {
	t.Helper()
	for c := range colors {
		if v := m.Color(m.Channels(c)); v != c {
			t.Fatalf("round trip of %#+v returned %#+v", c, v)
		}
	}
}

func each16[C any](n int, f func(uint16) C) func(yield func(C) bool) {
	return func(yield func(C) bool) {
		for v := 0; v < n; v++ {
			if !yield(f(uint16(v))) {
				return
			}
		}
	}
}

func TestChannelRoundTrip(t *testing.T) {
	t.Run("mono", func(it *testing.T) {
		testRoundTrip(it, MonoChannels{}, each16(2, func(v uint16) Mono { return Mono{On: v == 1} }))
	})
	t.Run("gray2", func(it *testing.T) {
		testRoundTrip(it, Gray2Channels{}, each16(4, func(v uint16) Gray2 { return Gray2{Y: uint8(v)} }))
	})
	t.Run("gray4", func(it *testing.T) {
		testRoundTrip(it, Gray4Channels{}, each16(16, func(v uint16) Gray4 { return Gray4{Y: uint8(v)} }))
	})
	t.Run("crgb15", func(it *testing.T) {
		testRoundTrip(it, CRGB15Channels{}, each16(1<<15, func(v uint16) CRGB15 { return CRGB15{V: v} }))
	})
	t.Run("crgb16", func(it *testing.T) {
		testRoundTrip(it, CRGB16Channels{}, each16(1<<16, func(v uint16) CRGB16 { return CRGB16{V: v} }))
	})
	t.Run("rgb666", func(it *testing.T) {
		testRoundTrip(it, RGB666Channels{}, each16(1<<12, func(v uint16) RGB666 {
			return RGB666{R: uint8(v & 0x3f), G: uint8(v >> 6), B: uint8(v*7) & 0x3f}
		}))
	})
	t.Run("rgb888", func(it *testing.T) {
		testRoundTrip(it, RGB888Channels{}, each16(1<<16, func(v uint16) RGB888 {
			return RGB888{R: uint8(v), G: uint8(v >> 8), B: uint8(v>>4) ^ uint8(v)}
		}))
	})
	t.Run("rgb565be", func(it *testing.T) {
		testRoundTrip(it, RGB565BEChannels{}, each16(1<<16, func(v uint16) tinypixel.RGB565BE { return tinypixel.RGB565BE(v) }))
	})
	t.Run("rgb555", func(it *testing.T) {
		testRoundTrip(it, RGB555Channels{}, each16(1<<15, func(v uint16) tinypixel.RGB555 { return tinypixel.RGB555(v) }))
	})
	t.Run("rgb444be", func(it *testing.T) {
		testRoundTrip(it, RGB444BEChannels{}, each16(1<<12, func(v uint16) tinypixel.RGB444BE { return tinypixel.RGB444BE(v) }))
	})
	t.Run("monochrome", func(it *testing.T) {
		testRoundTrip(it, MonochromeChannels{}, each16(2, func(v uint16) tinypixel.Monochrome { return tinypixel.Monochrome(v == 1) }))
	})
}

func TestChannelLayout(t *testing.T) {
	tests := []struct {
		name string
		cs   Channels
		want []uint8
	}{
		{"mono", MonoChannels{}.Channels(On), []uint8{1}},
		{"gray4", Gray4Channels{}.Channels(Gray4{Y: 9}), []uint8{4}},
		{"crgb15", CRGB15Channels{}.Channels(CRGB15{}), []uint8{5, 5, 5}},
		{"crgb16", CRGB16Channels{}.Channels(CRGB16{}), []uint8{5, 6, 5}},
		{"rgb666", RGB666Channels{}.Channels(RGB666{}), []uint8{6, 6, 6}},
		{"rgb888", RGB888Channels{}.Channels(RGB888{}), []uint8{8, 8, 8}},
		{"rgb565be", RGB565BEChannels{}.Channels(0), []uint8{5, 6, 5}},
		{"rgb444be", RGB444BEChannels{}.Channels(0), []uint8{4, 4, 4}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if test.cs.Len != len(test.want) {
				it.Fatalf("expected %d channels, got %d", len(test.want), test.cs.Len)
			}
			for i, bits := range test.want {
				if v := test.cs.At(i).Bits; v != bits {
					it.Errorf("channel %d: expected %d bits, got %d", i, bits, v)
				}
			}
		})
	}
}

func TestCRGB16Channels(t *testing.T) {
	cs := CRGB16Channels{}.Channels(CRGB16{V: 0xF800 | 0x0400 | 0x0003})
	if r, g, b := cs.At(0).Value, cs.At(1).Value, cs.At(2).Value; r != 31 || g != 32 || b != 3 {
		t.Errorf("expected (31, 32, 3), got (%d, %d, %d)", r, g, b)
	}
}

func TestNewChannels(t *testing.T) {
	cs := NewChannels(
		Channel{Value: 0xff, Bits: 5},
		Channel{Value: 7, Bits: 3},
		Channel{Value: 1, Bits: 1},
		Channel{Value: 2, Bits: 2},
		Channel{Value: 3, Bits: 2},
	)
	if cs.Len != MaxChannels {
		t.Fatalf("expected %d channels, got %d", MaxChannels, cs.Len)
	}
	if v := cs.At(0).Value; v != 31 {
		t.Errorf("expected value to be masked to 31, got %d", v)
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		name string
		got  color.RGBA
		want color.RGBA
	}{
		{"crgb16 white", RGBA(CRGB16Channels{}, CRGB16{V: 0xffff}), color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"crgb16 red", RGBA(CRGB16Channels{}, CRGB16{V: 0xF800}), color.RGBA{0xff, 0, 0, 0xff}},
		{"gray4", RGBA(Gray4Channels{}, Gray4{Y: 8}), color.RGBA{0x88, 0x88, 0x88, 0xff}},
		{"mono", RGBA(MonoChannels{}, On), color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"rgb888", RGBA(RGB888Channels{}, RGB888{1, 2, 3}), color.RGBA{1, 2, 3, 0xff}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if test.got != test.want {
				it.Errorf("expected %v, got %v", test.want, test.got)
			}
		})
	}
}

func TestTinyConvert(t *testing.T) {
	c := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	if v, want := (RGB565BEChannels{}).Convert(c), tinypixel.NewRGB565BE(0x12, 0x34, 0x56); v != want {
		t.Errorf("expected %#04x, got %#04x", want, v)
	}
	if v, want := (RGB444BEChannels{}).Convert(c), tinypixel.NewRGB444BE(0x12, 0x34, 0x56); v != want {
		t.Errorf("expected %#04x, got %#04x", want, v)
	}
	red := (RGB565BEChannels{}).Channels(tinypixel.NewRGB565BE(0xff, 0, 0))
	if v := red.At(0).Value; v != 31 {
		t.Errorf("expected red channel 31, got %d", v)
	}
}
