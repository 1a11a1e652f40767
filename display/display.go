// Package display contains canvas targets for hardware display controllers
// attached over SPI or I²C.
package display

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/canvas"
)

// Errors
var (
	ErrBounds = errors.New("display: out of display bounds")
	ErrSize   = errors.New("display: unsupported size")
)

// sleep is replaced in tests.
var sleep = time.Sleep

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Display is a canvas target backed by a display controller.
type Display[C any] interface {
	canvas.Target[C]

	String() string

	// Close turns the display off and closes the connection.
	Close() error

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// Backlight pin, optional.
	Backlight gpio.PinOut
}

// outOfBounds wraps ErrBounds with the offending point.
func outOfBounds(p image.Point, r image.Rectangle) error {
	return fmt.Errorf("%w: %s not in %s", ErrBounds, p, r)
}

// reset pulses the reset line of the controller.
func reset(c Conn) (err error) {
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err = c.Reset(level); err != nil {
			return
		}
		sleep(100 * time.Millisecond)
	}
	return
}
