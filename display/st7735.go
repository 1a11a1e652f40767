package display

import (
	"time"

	"github.com/BeatGlow/canvas/pixel"
)

const (
	st7735DefaultWidth  = 128
	st7735DefaultHeight = 160
	st7735MaxWidth      = 132
	st7735MaxHeight     = 162
)

// Registers (from st7735.pdf).
const (
	st7735FRMCTR1 = 0xB1 // Frame Rate Control (normal mode)
	st7735FRMCTR2 = 0xB2 // Frame Rate Control (idle mode)
	st7735FRMCTR3 = 0xB3 // Frame Rate Control (partial mode)
	st7735INVCTR  = 0xB4 // Display Inversion Control
	st7735PWCTR1  = 0xC0 // Power Control 1
	st7735PWCTR2  = 0xC1 // Power Control 2
	st7735PWCTR3  = 0xC2 // Power Control 3 (normal mode)
	st7735PWCTR4  = 0xC3 // Power Control 4 (idle mode)
	st7735PWCTR5  = 0xC4 // Power Control 5 (partial mode)
	st7735VMCTR1  = 0xC5 // VCOM Control 1
	st7735GMCTRP1 = 0xE0 // Gamma (positive polarity)
	st7735GMCTRN1 = 0xE1 // Gamma (negative polarity)
)

// ST7735 initialises a ST7735 TFT controller. The returned display also
// implements canvas.RunDrawer.
func ST7735(c Conn, config *Config) (Display[pixel.CRGB16], error) {
	d, err := newST77xx("ST7735", c, config, st7735DefaultWidth, st7735DefaultHeight, st7735MaxWidth, st7735MaxHeight)
	if err != nil {
		return nil, err
	}

	if err = reset(c); err != nil {
		return nil, err
	}
	if err = c.Command(st77xxSWRESET); err != nil {
		return nil, err
	}
	sleep(150 * time.Millisecond)
	if err = c.Command(st77xxSLPOUT); err != nil {
		return nil, err
	}
	sleep(150 * time.Millisecond)

	if err = d.commands(
		[]byte{st7735FRMCTR1, 0x01, 0x2C, 0x2D},
		[]byte{st7735FRMCTR2, 0x01, 0x2C, 0x2D},
		[]byte{st7735FRMCTR3, 0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D},
		[]byte{st7735INVCTR, 0x07},
		[]byte{st7735PWCTR1, 0xA2, 0x02, 0x84},
		[]byte{st7735PWCTR2, 0xC5},
		[]byte{st7735PWCTR3, 0x0A, 0x00},
		[]byte{st7735PWCTR4, 0x8A, 0x2A},
		[]byte{st7735PWCTR5, 0x8A, 0xEE},
		[]byte{st7735VMCTR1, 0x0E},
		[]byte{st77xxCOLMOD, 0x05},
		[]byte{st7735GMCTRP1, 0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D, 0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10},
		[]byte{st7735GMCTRN1, 0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D, 0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10},
		[]byte{st77xxNORON},
	); err != nil {
		return nil, err
	}
	if err = d.start(); err != nil {
		return nil, err
	}
	return d, nil
}
