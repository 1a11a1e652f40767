package display

import (
	"fmt"
	"image"
	"iter"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
)

// SSD1xxx commands.
const (
	ssd1xxxSetLowColumn          = 0x00
	ssd1xxxSetHighColumn         = 0x10
	ssd1xxxSetMemoryMode         = 0x20
	ssd1xxxSetColumnAddr         = 0x21
	ssd1xxxSetPageAddr           = 0x22
	ssd1xxxSetStartLine          = 0x40
	ssd1xxxSetContrast           = 0x81
	ssd1xxxSetChargePump         = 0x8D
	ssd1xxxSetSegmentRemap       = 0xA1
	ssd1xxxSetDisplayAllOnResume = 0xA4
	ssd1xxxSetNormalDisplay      = 0xA6
	ssd1xxxSetMultiplexRatio     = 0xA8
	ssd1xxxSetDisplayOff         = 0xAE
	ssd1xxxSetDisplayOn          = 0xAF
	ssd1xxxSetPage               = 0xB0 // page addressing mode only
	ssd1xxxSetComScanDec         = 0xC8
	ssd1xxxSetDisplayOffset      = 0xD3
	ssd1xxxSetDisplayClockDiv    = 0xD5
	ssd1xxxSetPrecharge          = 0xD9
	ssd1xxxSetComPins            = 0xDA
	ssd1xxxSetVCOMDeselect       = 0xDB
)

// span is a half open column range.
type span struct {
	x0, x1 int
}

func (s *span) add(x0, x1 int) {
	if s.x0 == s.x1 {
		s.x0, s.x1 = x0, x1
		return
	}
	s.x0, s.x1 = min(s.x0, x0), max(s.x1, x1)
}

// pageDisplay is a monochrome OLED controller with page organised RAM.
type pageDisplay struct {
	name     string
	c        Conn
	img      *pixel.MonoVerticalLSBImage
	dirty    []span
	colStart int
	paged    bool // page addressing only, no column/page range commands
	halted   bool
}

func newPageDisplay(name string, c Conn, width, height int) *pageDisplay {
	d := &pageDisplay{
		name: name,
		c:    c,
		img:  pixel.NewMonoVerticalLSBImage(width, height),
	}
	d.dirty = make([]span, d.img.Pages())
	return d
}

// SSD1306 initialises a SSD1306 OLED controller. The controller RAM is
// mirrored, every call writes back only the part of the pages it touched.
func SSD1306(c Conn, config *Config) (Display[pixel.Mono], error) {
	if config == nil {
		config = new(Config)
	}
	width, height := config.Width, config.Height
	if width == 0 {
		width = ssd1306DefaultWidth
	}
	if height == 0 {
		height = ssd1306DefaultHeight
	}

	var displayClockDiv, comPins, colStart byte
	switch {
	case width == 64 && height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case width == 64 && height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case width == 96 && height == 16:
		displayClockDiv, comPins = 0x60, 0x02
	case width == 128 && height == 32:
		displayClockDiv, comPins = 0x80, 0x02
	case width == 128 && height == 64:
		displayClockDiv, comPins = 0x80, 0x12
	default:
		return nil, fmt.Errorf("%w: ssd1306 %dx%d", ErrSize, width, height)
	}
	d := newPageDisplay("SSD1306 OLED", c, width, height)
	d.colStart = int(colStart)

	if err := reset(c); err != nil {
		return nil, err
	}
	if err := d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetDisplayClockDiv, displayClockDiv,
		ssd1xxxSetMultiplexRatio, byte(height-1),
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetStartLine,
		ssd1xxxSetChargePump, 0x14,
		ssd1xxxSetMemoryMode, 0x00, // horizontal addressing
		ssd1xxxSetSegmentRemap,
		ssd1xxxSetComScanDec,
		ssd1xxxSetComPins, comPins,
		ssd1xxxSetPrecharge, 0xF1,
		ssd1xxxSetVCOMDeselect, 0x40,
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetNormalDisplay,
	); err != nil {
		return nil, err
	}
	if err := d.start(0xCF); err != nil {
		return nil, err
	}
	return d, nil
}

// start clears the controller RAM and turns the display on.
func (d *pageDisplay) start(contrast uint8) (err error) {
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	if err = d.Clear(pixel.Off); err != nil {
		return
	}
	return d.Show(true)
}

func (d *pageDisplay) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("%s %dx%d", d.name, bounds.Dx(), bounds.Dy())
}

// command sends each byte in command mode; these controllers expect
// parameters on the command channel too.
func (d *pageDisplay) command(bytes ...byte) (err error) {
	for _, b := range bytes {
		if err = d.c.Command(b); err != nil {
			return
		}
	}
	return
}

func (d *pageDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *pageDisplay) Show(show bool) error {
	if show {
		return d.command(ssd1xxxSetDisplayOn)
	}
	return d.command(ssd1xxxSetDisplayOff)
}

func (d *pageDisplay) SetContrast(level uint8) error {
	return d.command(ssd1xxxSetContrast, level)
}

func (d *pageDisplay) Bounds() image.Rectangle {
	return d.img.Bounds()
}

func (d *pageDisplay) mark(r image.Rectangle) {
	for page := r.Min.Y / 8; page <= (r.Max.Y-1)/8; page++ {
		d.dirty[page].add(r.Min.X, r.Max.X)
	}
}

func (d *pageDisplay) window(page int, s span) error {
	if d.paged {
		col := d.colStart + s.x0
		return d.command(
			ssd1xxxSetPage|byte(page&0x0f),
			ssd1xxxSetLowColumn|byte(col&0x0f),
			ssd1xxxSetHighColumn|byte(col>>4),
		)
	}
	return d.command(
		ssd1xxxSetColumnAddr, byte(d.colStart+s.x0), byte(d.colStart+s.x1-1),
		ssd1xxxSetPageAddr, byte(page), byte(page),
	)
}

// refresh writes the dirty part of every touched page back to the controller.
func (d *pageDisplay) refresh() error {
	for page, s := range d.dirty {
		if s.x0 == s.x1 {
			continue
		}
		if err := d.window(page, s); err != nil {
			return err
		}
		if err := d.c.Data(d.img.Page(page)[s.x0:s.x1]...); err != nil {
			return err
		}
		d.dirty[page] = span{}
	}
	return nil
}

func (d *pageDisplay) DrawPixels(pixels iter.Seq[canvas.Pixel[pixel.Mono]]) error {
	bounds := d.Bounds()
	for p := range pixels {
		if !p.Point.In(bounds) {
			return outOfBounds(p.Point, bounds)
		}
		d.img.SetMono(p.Point.X, p.Point.Y, p.Color)
		d.dirty[p.Point.Y/8].add(p.Point.X, p.Point.X+1)
	}
	return d.refresh()
}

func (d *pageDisplay) FillRect(r image.Rectangle, c pixel.Mono) error {
	if r.Empty() {
		return nil
	}
	if !r.In(d.Bounds()) {
		return outOfBounds(r.Min, d.Bounds())
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.img.SetMono(x, y, c)
		}
	}
	d.mark(r)
	return d.refresh()
}

func (d *pageDisplay) Clear(c pixel.Mono) error {
	d.img.Fill(c)
	d.mark(d.Bounds())
	return d.refresh()
}

var _ Display[pixel.Mono] = (*pageDisplay)(nil)
