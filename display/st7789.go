package display

import (
	"fmt"
	"image"
	"iter"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

const (
	st7789DefaultWidth  = 240
	st7789DefaultHeight = 240
	st7789MaxWidth      = 240
	st7789MaxHeight     = 320
	st77xxBatchSize     = 4096
)

// Registers shared by the ST77xx family.
const (
	st77xxSWRESET = 0x01 // Software Reset
	st77xxSLPOUT  = 0x11 // Sleep Out
	st77xxNORON   = 0x13 // Normal Display Mode On
	st77xxINVON   = 0x21 // Display Inversion On
	st77xxDISPOFF = 0x28 // Display Off
	st77xxDISPON  = 0x29 // Display On
	st77xxCASET   = 0x2A // Column Address Set
	st77xxRASET   = 0x2B // Row Address Set
	st77xxRAMWR   = 0x2C // Memory Write
	st77xxMADCTL  = 0x36 // Memory Data Access Control
	st77xxCOLMOD  = 0x3A // Interface Pixel Format
)

// Registers (from st7789.pdf).
const (
	st7789PORCTRL   = 0xB2 // Porch Setting
	st7789GCTRL     = 0xB7 // Gate Control
	st7789VCOMS     = 0xBB // VCOM Setting
	st7789LCMCTRL   = 0xC0 // LCM Control
	st7789VDVVRHEN  = 0xC2 // VDV and VRH Command Enable
	st7789VRHS      = 0xC3 // VRH Set
	st7789VDVSET    = 0xC4 // VDV Set
	st7789FRCTR2    = 0xC6 // Frame Rate Control in Normal Mode
	st7789PWCTRL1   = 0xD0 // Power Control 1
	st7789PVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789NVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	st77xxPageColumnOrder    byte = 1 << 5 // MV
	st77xxColumnAddressOrder byte = 1 << 6 // MX
	st77xxPageAddressOrder   byte = 1 << 7 // MY
)

// st77xx is a TFT controller of the ST77xx family, which all take big endian
// RGB 5-6-5 pixels through column/row address windows.
type st77xx struct {
	name      string
	c         Conn
	width     int
	height    int
	maxWidth  int // controller RAM size at no rotation
	maxHeight int
	rotation  Rotation
	colOffset int
	rowOffset int
	backlight gpio.PinOut
	buf       []byte
}

func newST77xx(name string, c Conn, config *Config, width, height, maxWidth, maxHeight int) (*st77xx, error) {
	if config == nil {
		config = new(Config)
	}
	d := &st77xx{
		name:      name,
		c:         c,
		width:     config.Width,
		height:    config.Height,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		rotation:  config.Rotation & 3,
		backlight: config.Backlight,
		buf:       make([]byte, st77xxBatchSize),
	}
	if d.rotation == Rotate90 || d.rotation == Rotate270 {
		width, height = height, width
		maxWidth, maxHeight = maxHeight, maxWidth
	}
	if d.width == 0 {
		d.width = width
	}
	if d.height == 0 {
		d.height = height
	}
	if d.width > maxWidth || d.height > maxHeight {
		return nil, fmt.Errorf("%w: %s %dx%d, maximum is %dx%d at %s rotation",
			ErrSize, name, d.width, d.height, maxWidth, maxHeight, d.rotation)
	}
	return d, nil
}

// ST7789 initialises a ST7789 TFT controller. The returned display also
// implements canvas.RunDrawer.
func ST7789(c Conn, config *Config) (Display[pixel.CRGB16], error) {
	d, err := newST77xx("ST7789", c, config, st7789DefaultWidth, st7789DefaultHeight, st7789MaxWidth, st7789MaxHeight)
	if err != nil {
		return nil, err
	}
	if err = d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *st77xx) String() string {
	return fmt.Sprintf("%s %dx%d", d.name, d.width, d.height)
}

func (d *st77xx) Close() error {
	if err := d.Show(false); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

func (d *st77xx) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *st77xx) init() (err error) {
	if err = reset(d.c); err != nil {
		return
	}

	if err = d.c.Command(st77xxSLPOUT); err != nil {
		return
	}
	sleep(150 * time.Millisecond)

	if err = d.commands(
		[]byte{st77xxCOLMOD, 0x05},        // 16-bit/pixel (RGB 5-6-5-bit input)
		[]byte{st7789PORCTRL, 0x0C, 0x0C}, // default
		[]byte{st7789GCTRL, 0x35},         // 13.26V / -10.43V
		[]byte{st7789VCOMS, 0x1A},         // 0.75V
		[]byte{st7789LCMCTRL, 0x2C},
		[]byte{st7789VDVVRHEN, 0x01},
		[]byte{st7789VRHS, 0x0B},
		[]byte{st7789VDVSET, 0x20},
		[]byte{st7789FRCTR2, 0x0F}, // 60Hz
		[]byte{st7789PWCTRL1, 0xA4, 0xA1},
		[]byte{st77xxINVON},
		[]byte{st7789PVGAMCTRL, 0x00, 0x19, 0x1E, 0x0A, 0x09, 0x15, 0x3D, 0x44, 0x51, 0x12, 0x03, 0x00, 0x3F, 0x3F},
		[]byte{st7789NVGAMCTRL, 0x00, 0x18, 0x1E, 0x0A, 0x09, 0x25, 0x3F, 0x43, 0x52, 0x33, 0x03, 0x00, 0x3F, 0x3F},
	); err != nil {
		return
	}
	return d.start()
}

// start finishes the initialisation common to the family.
func (d *st77xx) start() (err error) {
	if err = d.setRotation(); err != nil {
		return
	}
	if err = d.Show(true); err != nil {
		return
	}
	sleep(100 * time.Millisecond)
	return d.SetContrast(0xff)
}

func (d *st77xx) setRotation() error {
	// Panels smaller than the controller RAM sit at its far end when mirrored.
	var madctl byte
	d.colOffset, d.rowOffset = 0, 0
	switch d.rotation {
	case Rotate90:
		madctl = st77xxColumnAddressOrder | st77xxPageColumnOrder
	case Rotate180:
		madctl = st77xxColumnAddressOrder | st77xxPageAddressOrder
		d.colOffset = d.maxWidth - d.width
		d.rowOffset = d.maxHeight - d.height
	case Rotate270:
		madctl = st77xxPageAddressOrder | st77xxPageColumnOrder
		d.colOffset = d.maxHeight - d.width
		d.rowOffset = d.maxWidth - d.height
	}
	return d.c.Command(st77xxMADCTL, madctl)
}

func (d *st77xx) Show(show bool) error {
	var command byte = st77xxDISPOFF
	if show {
		command = st77xxDISPON
	}
	return d.c.Command(command)
}

// SetContrast sets the backlight duty cycle, if there is a backlight pin.
func (d *st77xx) SetContrast(level uint8) error {
	if d.backlight == nil {
		return nil
	}
	duty := gpio.Duty(int64(gpio.DutyMax) * int64(level) / 0xFF)
	return d.backlight.PWM(duty, 2*physic.KiloHertz)
}

func (d *st77xx) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// window selects r (which must be in bounds) as the target of the next memory write.
func (d *st77xx) window(r image.Rectangle) error {
	var (
		x0 = r.Min.X + d.colOffset
		y0 = r.Min.Y + d.rowOffset
		x1 = r.Max.X - 1 + d.colOffset
		y1 = r.Max.Y - 1 + d.rowOffset
	)
	return d.commands(
		[]byte{st77xxCASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)},
		[]byte{st77xxRASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)},
		[]byte{st77xxRAMWR},
	)
}

// DrawPixels writes horizontally adjacent pixels through a single window.
func (d *st77xx) DrawPixels(pixels iter.Seq[canvas.Pixel[pixel.CRGB16]]) error {
	var (
		bounds = d.Bounds()
		start  image.Point
		n      int
	)
	flush := func() error {
		if n == 0 {
			return nil
		}
		if err := d.window(image.Rect(start.X, start.Y, start.X+n, start.Y+1)); err != nil {
			return err
		}
		err := d.c.Data(d.buf[:n*2]...)
		n = 0
		return err
	}
	for p := range pixels {
		if !p.Point.In(bounds) {
			return outOfBounds(p.Point, bounds)
		}
		if n > 0 && (p.Point != image.Pt(start.X+n, start.Y) || n*2 == len(d.buf)) {
			if err := flush(); err != nil {
				return err
			}
		}
		if n == 0 {
			start = p.Point
		}
		d.buf[n*2] = byte(p.Color.V >> 8)
		d.buf[n*2+1] = byte(p.Color.V)
		n++
	}
	return flush()
}

// DrawRun writes a horizontal run of colors starting at p.
func (d *st77xx) DrawRun(p image.Point, colors []pixel.CRGB16) error {
	r := image.Rect(p.X, p.Y, p.X+len(colors), p.Y+1)
	if !r.In(d.Bounds()) {
		return outOfBounds(p, d.Bounds())
	}
	if err := d.window(r); err != nil {
		return err
	}
	for len(colors) > 0 {
		n := min(len(colors), len(d.buf)/2)
		for i, c := range colors[:n] {
			d.buf[i*2] = byte(c.V >> 8)
			d.buf[i*2+1] = byte(c.V)
		}
		if err := d.c.Data(d.buf[:n*2]...); err != nil {
			return err
		}
		colors = colors[n:]
	}
	return nil
}

// FillRect streams c over r through the batch buffer.
func (d *st77xx) FillRect(r image.Rectangle, c pixel.CRGB16) error {
	if r.Empty() {
		return nil
	}
	if !r.In(d.Bounds()) {
		return outOfBounds(r.Min, d.Bounds())
	}
	if err := d.window(r); err != nil {
		return err
	}
	size := r.Dx() * r.Dy() * 2
	fill := d.buf[:min(size, len(d.buf))]
	for i := 0; i < len(fill); i += 2 {
		fill[i] = byte(c.V >> 8)
		fill[i+1] = byte(c.V)
	}
	for size > 0 {
		n := min(size, len(fill))
		if err := d.c.Data(fill[:n]...); err != nil {
			return err
		}
		size -= n
	}
	return nil
}

func (d *st77xx) Clear(c pixel.CRGB16) error {
	return d.FillRect(d.Bounds(), c)
}

var (
	_ Display[pixel.CRGB16]          = (*st77xx)(nil)
	_ canvas.RunDrawer[pixel.CRGB16] = (*st77xx)(nil)
)
