package display

import (
	"fmt"

	"github.com/BeatGlow/canvas/pixel"
)

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64
	sh1106ColumnOffset  = 2 // 132 column RAM, centred 128 column panel
)

// SH1106 initialises a Sino Wealth SH1106 OLED controller. It only supports
// page addressing, so each dirty page gets its own page and column setup.
func SH1106(c Conn, config *Config) (Display[pixel.Mono], error) {
	if config == nil {
		config = new(Config)
	}
	width, height := config.Width, config.Height
	if width == 0 {
		width = sh1106DefaultWidth
	}
	if height == 0 {
		height = sh1106DefaultHeight
	}

	var displayOffset byte
	switch {
	case width == 128 && height == 32:
		displayOffset = 0x0f
	case width == 128 && height == 64:
		displayOffset = 0x00
	case width == 128 && height == 128:
		displayOffset = 0x02
	default:
		return nil, fmt.Errorf("%w: sh1106 %dx%d", ErrSize, width, height)
	}
	d := newPageDisplay("SH1106", c, width, height)
	d.colStart = sh1106ColumnOffset
	d.paged = true

	if err := reset(c); err != nil {
		return nil, err
	}
	if err := d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetStartLine,
		ssd1xxxSetSegmentRemap,
		ssd1xxxSetComScanDec,
		ssd1xxxSetNormalDisplay,
		ssd1xxxSetMultiplexRatio, byte(height-1),
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetDisplayOffset, displayOffset,
		ssd1xxxSetDisplayClockDiv, 0xF0,
		ssd1xxxSetPrecharge, 0x22,
		ssd1xxxSetComPins, 0x12,
		ssd1xxxSetVCOMDeselect, 0x20,
		ssd1xxxSetChargePump, 0x14,
	); err != nil {
		return nil, err
	}
	if err := d.start(0x7F); err != nil {
		return nil, err
	}
	return d, nil
}
