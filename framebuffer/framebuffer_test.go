package framebuffer

import (
	"encoding/binary"
	"errors"
	"image"
	"testing"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

func TestParseFormat(t *testing.T) {
	rgb565 := varScreenInfo{
		BitsPerPixel: 16,
		Red:          bitField{Offset: 11, Length: 5},
		Green:        bitField{Offset: 5, Length: 6},
		Blue:         bitField{Offset: 0, Length: 5},
	}
	bgr565 := rgb565
	bgr565.Red, bgr565.Blue = rgb565.Blue, rgb565.Red
	rgba := varScreenInfo{
		BitsPerPixel: 32,
		Red:          bitField{Offset: 16, Length: 8},
		Green:        bitField{Offset: 8, Length: 8},
		Blue:         bitField{Offset: 0, Length: 8},
		Alpha:        bitField{Offset: 24, Length: 8},
	}

	tests := []struct {
		name string
		info varScreenInfo
		ok   bool
	}{
		{"rgb565", rgb565, true},
		{"bgr565", bgr565, false},
		{"rgba8888", rgba, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			order, err := parseFormat(&test.info, binary.LittleEndian)
			if test.ok {
				if err != nil {
					it.Fatalf("unexpected error: %v", err)
				}
				if order != binary.LittleEndian {
					it.Errorf("expected native order, got %v", order)
				}
				return
			}
			if !errors.Is(err, ErrFormat) {
				it.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	const width, height = 4, 2

	img := pixel.NewCRGB16Image(width, height)
	img.Order = binary.LittleEndian

	var (
		target      = NewTarget(img)
		back, front [width * height]pixel.CRGB16
		red         = pixel.CRGB16{V: 0xF800}
		green       = pixel.CRGB16{V: 0x07E0}
	)
	c, err := canvas.NewDoubleBuffered[pixel.CRGB16](target, pixel.CRGB16Channels{}, back[:], front[:], width, height)
	if err != nil {
		t.Fatal(err)
	}
	if err = c.Clear(green); err != nil {
		t.Fatal(err)
	}
	if err = c.Draw(func(s *canvas.Surface[pixel.CRGB16]) error {
		s.FillRect(image.Rect(1, 1, 3, 2), red)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err = c.Flush(); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			want := green
			if y == 1 && (x == 1 || x == 2) {
				want = red
			}
			if v := img.CRGB16At(x, y); v != want {
				t.Errorf("(%d,%d): expected %#04x, got %#04x", x, y, want.V, v.V)
			}
		}
	}
	// Little endian red at (1,1).
	if off := img.PixOffset(1, 1); img.Pix[off] != 0x00 || img.Pix[off+1] != 0xF8 {
		t.Errorf("expected little endian bytes, got %#v", img.Pix[off:off+2])
	}
}
