package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			want := uint32(y * 0xffff)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestGray2(t *testing.T) {
	for y := 0; y < 4; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray2{Y: uint8(y)}
			r, g, b, _ := c.RGBA()
			want := uint32(y * 0x5555)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestGray4(t *testing.T) {
	for y := 0; y < 16; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray4{Y: uint8(y)}
			r, g, b, _ := c.RGBA()
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestModelConvert(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.RGBA{A: 0xff}
	tests := []struct {
		name         string
		model        color.Model
		white, black color.Color
	}{
		{"mono", MonoModel, On, Off},
		{"gray2", Gray2Model, Gray2{Y: 3}, Gray2{}},
		{"gray4", Gray4Model, Gray4{Y: 15}, Gray4{}},
		{"crgb15", CRGB15Model, CRGB15{V: 0x7fff}, CRGB15{}},
		{"crgb16", CRGB16Model, CRGB16{V: 0xffff}, CRGB16{}},
		{"rgb666", RGB666Model, RGB666{R: 63, G: 63, B: 63}, RGB666{}},
		{"rgb888", RGB888Model, RGB888{R: 255, G: 255, B: 255}, RGB888{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := test.model.Convert(white); v != test.white {
				it.Errorf("expected white to convert to %#+v, got %#+v", test.white, v)
			}
			if v := test.model.Convert(black); v != test.black {
				it.Errorf("expected black to convert to %#+v, got %#+v", test.black, v)
			}
			if v := test.model.Convert(test.white); v != test.white {
				it.Errorf("expected %#+v to convert to itself, got %#+v", test.white, v)
			}
		})
	}
}
