package display

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

type write struct {
	dc gpio.Level
	b  []byte
}

// fakeBus records writes along with the level of the DC pin.
type fakeBus struct {
	dc     *gpiotest.Pin
	writes []write
}

func (b *fakeBus) Tx(w, r []byte) error {
	b.writes = append(b.writes, write{b.dc.L, slices.Clone(w)})
	return nil
}

func newTestSPI(batchSize int) (*spiConn, *fakeBus, *gpiotest.Pin) {
	var (
		dc  = &gpiotest.Pin{N: "DC"}
		ce  = &gpiotest.Pin{N: "CE"}
		bus = &fakeBus{dc: dc}
	)
	return &spiConn{
		name:      "test",
		bus:       bus,
		reset:     &gpiotest.Pin{N: "RESET"},
		dc:        dc,
		cs:        ce,
		batchSize: batchSize,
	}, bus, ce
}

func TestSPICommand(t *testing.T) {
	c, bus, ce := newTestSPI(16)
	if err := c.Command(0x2A, 0x01, 0x02); err != nil {
		t.Fatal(err)
	}
	want := []write{
		{gpio.Low, []byte{0x2A}},
		{gpio.High, []byte{0x01, 0x02}},
	}
	if len(bus.writes) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(bus.writes))
	}
	for i, w := range want {
		if v := bus.writes[i]; v.dc != w.dc || !bytes.Equal(v.b, w.b) {
			t.Errorf("write %d: expected %v, got %v", i, w, v)
		}
	}
	if ce.L != gpio.High {
		t.Error("expected chip enable to be released")
	}
}

func TestSPIDataChunked(t *testing.T) {
	c, bus, _ := newTestSPI(4)
	if err := c.Data(make([]byte, 10)...); err != nil {
		t.Fatal(err)
	}
	var sizes []int
	for _, w := range bus.writes {
		if w.dc != gpio.High {
			t.Error("expected data mode")
		}
		sizes = append(sizes, len(w.b))
	}
	if want := []int{4, 4, 2}; !slices.Equal(sizes, want) {
		t.Errorf("expected chunks %v, got %v", want, sizes)
	}

	bus.writes = nil
	if err := c.Data(); err != nil || len(bus.writes) != 0 {
		t.Errorf("expected empty data to be a no-op, got %d writes (%v)", len(bus.writes), err)
	}
}

func TestSPIDataLow(t *testing.T) {
	c, bus, _ := newTestSPI(16)
	c.dataLow = true
	if err := c.Command(0x01, 0x02); err != nil {
		t.Fatal(err)
	}
	if bus.writes[0].dc != gpio.High || bus.writes[1].dc != gpio.Low {
		t.Errorf("expected inverted DC levels, got %v", bus.writes)
	}
}

func TestOpenSPIConfig(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO"}
	tests := []struct {
		name   string
		config SPIConfig
		err    error
		msg    string
	}{
		{"invalid reset", SPIConfig{Reset: gpio.INVALID, DC: pin}, ErrResetPin, ""},
		{"invalid dc", SPIConfig{Reset: pin, DC: gpio.INVALID}, ErrDCPin, ""},
		{"invalid speed", SPIConfig{Reset: pin, DC: pin, Speed: 3 * physic.MegaHertz}, nil, "invalid SPI speed"},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			_, err := OpenSPI(&test.config)
			if err == nil {
				it.Fatal("expected error")
			}
			if test.err != nil && !errors.Is(err, test.err) {
				it.Errorf("expected %v, got %v", test.err, err)
			}
			if test.msg != "" && !strings.Contains(err.Error(), test.msg) {
				it.Errorf("expected %q in %q", test.msg, err)
			}
		})
	}
}

func TestI2C(t *testing.T) {
	var (
		rec = new(i2ctest.Record)
		c   = &i2cConn{dev: &i2c.Dev{Bus: rec, Addr: 0x3c}}
	)
	if err := c.Command(0xAE, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := c.Data(0x01, 0x02); err != nil {
		t.Fatal(err)
	}
	if err := c.Data(); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(gpio.Low); err != nil {
		t.Errorf("expected reset without a pin to be a no-op, got %v", err)
	}

	want := [][]byte{
		{0x00, 0xAE, 0x01},
		{0x40, 0x01, 0x02},
	}
	if len(rec.Ops) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(rec.Ops))
	}
	for i, w := range want {
		if v := rec.Ops[i]; v.Addr != 0x3c || !bytes.Equal(v.W, w) {
			t.Errorf("transaction %d: expected % x to 0x3c, got % x to %#x", i, w, v.W, v.Addr)
		}
	}
}
