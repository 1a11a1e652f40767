package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/canvas"
)

// Conn errors.
var (
	ErrResetPin = errors.New("display: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("display: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional parameters.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// tx is the part of a periph connection we write to.
type tx interface {
	Tx(w, r []byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint8

	// Reset pin, optional.
	Reset gpio.PinOut
}

var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

type i2cConn struct {
	dev   *i2c.Dev
	bus   io.Closer
	reset gpio.PinOut
}

// OpenI2C opens an I²C connection, a nil config uses DefaultI2CConfig.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}

	var name string
	if config.Device >= 0 {
		name = strconv.Itoa(config.Device)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}

	return &i2cConn{
		dev:   &i2c.Dev{Bus: bus, Addr: uint16(config.Addr)},
		bus:   bus,
		reset: config.Reset,
	}, nil
}

func (c *i2cConn) String() string {
	return fmt.Sprintf("I²C %s", c.dev)
}

func (c *i2cConn) Close() error {
	if c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

func (c *i2cConn) Reset(level gpio.Level) error {
	if c.reset == nil {
		return nil
	}
	return c.reset.Out(level)
}

// Command sends a control byte of 0x00 followed by the command and its parameters.
func (c *i2cConn) Command(cmnd byte, args ...byte) error {
	return c.dev.Tx(append([]byte{0x00, cmnd}, args...), nil)
}

// Data sends a control byte of 0x40 followed by the data.
func (c *i2cConn) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	return c.dev.Tx(append([]byte{0x40}, data...), nil)
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      spi.Mode
	Speed     physic.Frequency
	DataLow   bool
	BatchSize int

	// Reset and DC default to GPIO25 and GPIO24 when nil.
	Reset gpio.PinOut
	DC    gpio.PinOut

	// CE is driven by hand when set, otherwise the bus handles chip enable.
	CE gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      spi.Mode0,
	Speed:     8 * physic.MegaHertz,
	BatchSize: 4096,
}

// Default GPIO pins, resolved when the connection is opened.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []physic.Frequency{
	500 * physic.KiloHertz,
	1 * physic.MegaHertz,
	2 * physic.MegaHertz,
	4 * physic.MegaHertz,
	8 * physic.MegaHertz,
	16 * physic.MegaHertz,
	20 * physic.MegaHertz,
	24 * physic.MegaHertz,
	28 * physic.MegaHertz,
	32 * physic.MegaHertz,
	36 * physic.MegaHertz,
	40 * physic.MegaHertz,
	48 * physic.MegaHertz,
	50 * physic.MegaHertz,
	52 * physic.MegaHertz,
}

type spiConn struct {
	name      string
	bus       tx
	closer    io.Closer
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcValid   bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// OpenSPI opens a SPI connection, a nil config uses DefaultSPIConfig. The
// host must be initialised (periph.io/x/host/v3) before opening.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	var (
		resetPin = config.Reset
		dcPin    = config.DC
	)
	if resetPin == nil {
		resetPin = gpioreg.ByName(DefaultResetPin)
	}
	if dcPin == nil {
		dcPin = gpioreg.ByName(DefaultDCPin)
	}
	if resetPin == nil || resetPin == gpio.INVALID {
		return nil, ErrResetPin
	}
	if dcPin == nil || dcPin == gpio.INVALID {
		return nil, ErrDCPin
	}

	speed := config.Speed
	if speed == 0 {
		speed = DefaultSPIConfig.Speed
	}
	if !slices.Contains(ValidSPISpeeds, speed) {
		return nil, fmt.Errorf("display: invalid SPI speed %s", speed)
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultSPIConfig.BatchSize
	}

	name := fmt.Sprintf("SPI%d.%d", config.Bus, config.Device)
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}
	c, err := port.Connect(speed, config.Mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	if l, ok := c.(conn.Limits); ok {
		if n := l.MaxTxSize(); n > 0 && n < batchSize {
			batchSize = n
		}
	}

	return &spiConn{
		name:      fmt.Sprintf("%s at %s", name, speed),
		bus:       c,
		closer:    port,
		reset:     resetPin,
		dc:        dcPin,
		cs:        config.CE,
		dataLow:   config.DataLow,
		batchSize: batchSize,
	}, nil
}

func (c *spiConn) String() string {
	return "SPI bus " + c.name
}

func (c *spiConn) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcValid || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel, c.dcValid = level, true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

// Command sends cmnd with DC in command mode, and its parameters in data mode.
func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmnd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) error {
	if len(data) <= c.batchSize {
		return c.bus.Tx(data, nil)
	}

	if l := canvas.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("display: chunked write",
			"bytes", len(data),
			"chunks", (len(data)+c.batchSize-1)/c.batchSize)
	}
	for chunk := range slices.Chunk(data, c.batchSize) {
		if err := c.bus.Tx(chunk, nil); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Conn = (*i2cConn)(nil)
	_ Conn = (*spiConn)(nil)
	_ tx   = (spi.Conn)(nil)
)
