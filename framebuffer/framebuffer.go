// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The framebuffer
// can be opened with the [Open] call, and is used as the target of a canvas:
//
//	fb, err := framebuffer.Open("/dev/fb0")
//	if err != nil {
//		return err
//	}
//	defer fb.Close()
//
//	c, err := canvas.NewSingleBuffered(fb, pixel.CRGB16Channels{}, pix[:], width, height)
//
// Only 16-bit 5-6-5 framebuffers are supported.
package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported pixel format")
)

// Target writes canvas pixels into a memory mapped CRGB16 image.
type Target struct {
	img *pixel.CRGB16Image
}

// NewTarget returns a target drawing into img.
func NewTarget(img *pixel.CRGB16Image) *Target {
	return &Target{img: img}
}

// Image is the image backing the target.
func (t *Target) Image() *pixel.CRGB16Image {
	return t.img
}

func (t *Target) Bounds() image.Rectangle {
	return t.img.Bounds()
}

func (t *Target) DrawPixels(pixels iter.Seq[canvas.Pixel[pixel.CRGB16]]) error {
	for p := range pixels {
		t.img.SetCRGB16(p.Point.X, p.Point.Y, p.Color)
	}
	return nil
}

func (t *Target) DrawRun(p image.Point, colors []pixel.CRGB16) error {
	off := t.img.PixOffset(p.X, p.Y)
	for i, c := range colors {
		t.img.Order.PutUint16(t.img.Pix[off+i*2:], c.V)
	}
	return nil
}

func (t *Target) FillRect(r image.Rectangle, c pixel.CRGB16) error {
	r = r.Intersect(t.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.img.SetCRGB16(x, y, c)
		}
	}
	return nil
}

func (t *Target) Clear(c pixel.CRGB16) error {
	return t.FillRect(t.img.Bounds(), c)
}

// Device is an opened framebuffer device.
type Device struct {
	*Target
	close func() error
}

// Close the framebuffer device.
func (d *Device) Close() error {
	return d.close()
}

// bitField describes where a color component lives in a pixel.
type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo contains device independent changeable information about a frame buffer
// device and a specific video mode.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// parseFormat checks that the screen holds native endian 5-6-5 pixels.
func parseFormat(info *varScreenInfo, order binary.ByteOrder) (binary.ByteOrder, error) {
	if info.BitsPerPixel == 16 &&
		info.Red.Offset == 11 && info.Red.Length == 5 &&
		info.Green.Offset == 5 && info.Green.Length == 6 &&
		info.Blue.Offset == 0 && info.Blue.Length == 5 &&
		info.Alpha.Length == 0 {
		return order, nil
	}
	return nil, fmt.Errorf("%w: %d bpp, red %d@%d, green %d@%d, blue %d@%d",
		ErrFormat, info.BitsPerPixel,
		info.Red.Length, info.Red.Offset,
		info.Green.Length, info.Green.Offset,
		info.Blue.Length, info.Blue.Offset)
}

// Interface checks.
var (
	_ canvas.Target[pixel.CRGB16]    = (*Target)(nil)
	_ canvas.RunDrawer[pixel.CRGB16] = (*Target)(nil)
)
