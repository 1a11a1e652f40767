package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

// Image is a packed pixel image, laid out the way a display controller expects its RAM.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by the packed image
// formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image organised in pages of eight
// rows, one byte per column per page with the top row in the least significant bit.
//
// This is mostly used by SSD1xxx OLED displays.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	bands := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, bands*w),
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// Pages is the number of eight row pages.
func (p *MonoVerticalLSBImage) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// Page returns the bytes of page n.
func (p *MonoVerticalLSBImage) Page(n int) []byte {
	off := n * p.Stride
	return p.Pix[off : off+p.Stride]
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.MonoAt(x, y)
}

// MonoAt returns the pixel at (x, y), which must be in bounds.
func (p *MonoVerticalLSBImage) MonoAt(x, y int) Mono {
	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return Mono{On: p.Pix[pos]&bit != 0}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.SetMono(x, y, monoModel(c).(Mono))
}

// SetMono sets the pixel at (x, y), which must be in bounds.
func (p *MonoVerticalLSBImage) SetMono(x, y int, c Mono) {
	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	if c.On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.CRGB16At(x, y)
}

// CRGB16At returns the pixel at (x, y), which must be in bounds.
func (p *CRGB16Image) CRGB16At(x, y int) CRGB16 {
	return CRGB16{p.Order.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.SetCRGB16(x, y, crgb16Model(c).(CRGB16))
}

// SetCRGB16 sets the pixel at (x, y), which must be in bounds.
func (p *CRGB16Image) SetCRGB16(x, y int, c CRGB16) {
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], c.V)
}

func (p *CRGB16Image) Fill(c color.Color) {
	fill16(p.Pix, p.Order, crgb16Model(c).(CRGB16).V)
}

func fill16(pix []byte, order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	for i, l := 0, len(pix)-1; i < l; i += 2 {
		pix[i], pix[i+1] = b[0], b[1]
	}
}

// Interface checks.
var (
	_ Image = (*MonoVerticalLSBImage)(nil)
	_ Image = (*CRGB16Image)(nil)
)
