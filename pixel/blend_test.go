package pixel

import (
	"image/color"
	"testing"
)

// TestDiv255 tests the division against round-half-up over every blend input.
func TestDiv255(t *testing.T) {
	for x := uint32(0); x <= 0xffff; x++ {
		want := (x + 127) / 255
		if got := div255(x); got != want {
			t.Fatalf("div255(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestBlendOpaquePassThrough(t *testing.T) {
	bg := CRGB16{V: 0x1234}
	for v := 0; v < 1<<16; v++ {
		c := CRGB16{V: uint16(v)}
		if got := Blend(CRGB16Channels{}, bg, WithAlpha(c, Opaque)); got != c {
			t.Fatalf("blend of opaque %#04x returned %#04x", c.V, got.V)
		}
	}
}

func TestBlendTransparentIdentity(t *testing.T) {
	fg := WithAlpha(CRGB16{V: 0xffff}, Transparent)
	for v := 0; v < 1<<16; v++ {
		bg := CRGB16{V: uint16(v)}
		if got := Blend(CRGB16Channels{}, bg, fg); got != bg {
			t.Fatalf("blend of transparent over %#04x returned %#04x", bg.V, got.V)
		}
	}
}

func TestBlendRGB888(t *testing.T) {
	m := RGB888Channels{}
	for a := 0; a < 256; a++ {
		for f := 0; f < 256; f += 5 {
			for b := 0; b < 256; b += 5 {
				fg := WithAlpha(RGB888{R: uint8(f), G: uint8(255 - f), B: uint8(f / 2)}, uint8(a))
				bg := RGB888{R: uint8(b), G: uint8(b / 3), B: uint8(255 - b)}
				got := Blend(m, bg, fg)
				want := RGB888{
					R: mix(fg.Color.R, bg.R, a),
					G: mix(fg.Color.G, bg.G, a),
					B: mix(fg.Color.B, bg.B, a),
				}
				if got != want {
					t.Fatalf("blend %v over %v = %v, want %v", fg, bg, got, want)
				}
			}
		}
	}
}

func mix(f, b uint8, a int) uint8 {
	return uint8((int(f)*a + int(b)*(255-a) + 127) / 255)
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
	}{
		{
			"white half over red",
			Blend(RGB888Channels{}, RGB888{R: 255}, WithAlpha(RGB888{255, 255, 255}, 128)),
			RGB888{R: 255, G: 128, B: 128},
		},
		{
			"white half over red 565",
			Blend(CRGB16Channels{}, CRGB16{V: 0xF800}, WithAlpha(CRGB16{V: 0xffff}, 128)),
			CRGB16{V: 31<<11 | 32<<5 | 16},
		},
		{
			"mono rounds up at 128",
			Blend(MonoChannels{}, Off, WithAlpha(On, 128)),
			On,
		},
		{
			"mono rounds down at 127",
			Blend(MonoChannels{}, Off, WithAlpha(On, 127)),
			Off,
		},
		{
			"gray4 quarter",
			Blend(Gray4Channels{}, Gray4{Y: 0}, WithAlpha(Gray4{Y: 15}, 64)),
			Gray4{Y: 4},
		},
		{
			"rgb666 black over white",
			Blend(RGB666Channels{}, RGB666{63, 63, 63}, WithAlpha(RGB666{}, 191)),
			RGB666{16, 16, 16},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if test.got != test.want {
				it.Errorf("expected %#+v, got %#+v", test.want, test.got)
			}
		})
	}
}

func TestTranslucent(t *testing.T) {
	if !Solid(On).IsOpaque() {
		t.Error("expected solid color to be opaque")
	}
	if !WithAlpha(On, 0).IsTransparent() {
		t.Error("expected zero alpha to be transparent")
	}
	v := FromRGBA(CRGB16Channels{}, color.RGBA{R: 0xff, A: 0x80})
	if v.Color.V != 0xF800 || v.A != 0x80 {
		t.Errorf("expected red at alpha 0x80, got %#+v", v)
	}
}

func BenchmarkBlendCRGB16(b *testing.B) {
	var (
		m  = CRGB16Channels{}
		bg = CRGB16{V: 0x1234}
		fg = WithAlpha(CRGB16{V: 0xBEEF}, 0x80)
	)
	for i := 0; i < b.N; i++ {
		bg = Blend(m, bg, fg)
	}
}
