// Command canvas-demo draws an animated scene with translucent overlays onto a
// display, the Linux framebuffer or a PNG preview.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/display"
	"github.com/BeatGlow/canvas/displayer"
	"github.com/BeatGlow/canvas/draw"
	"github.com/BeatGlow/canvas/framebuffer"
	"github.com/BeatGlow/canvas/memory"
	"github.com/BeatGlow/canvas/pixel"
)

type options struct {
	strategy canvas.Strategy
	frames   int
	interval time.Duration
}

func main() {
	widthFlag := flag.Int("width", 0, "Display width (default: driver default)")
	heightFlag := flag.Int("height", 0, "Display height (default: driver default)")
	busFlag := flag.String("bus", "", "Bus type: spi or i2c (default: spi for TFT, i2c for OLED drivers)")
	i2cDeviceFlag := flag.Int("i2c-dev", display.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(display.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", display.DefaultResetPin, "Reset GPIO pin")
	dcPinFlag := flag.String("dc", display.DefaultDCPin, "Data/Command GPIO pin (DC)")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	fbFlag := flag.String("fb", "/dev/fb0", "Framebuffer device")
	outFlag := flag.String("out", "canvas.png", "PNG output file")
	scaleFlag := flag.Int("scale", 4, "PNG upscale factor")
	strategyFlag := flag.String("strategy", "double", "Buffering strategy: single or double")
	framesFlag := flag.Int("frames", 0, "Number of frames to draw (default: until interrupted, 1 for png)")
	intervalFlag := flag.Duration("interval", 50*time.Millisecond, "Frame interval")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <st7735|st7789|sh1106|ssd1306|fb|png>\n", os.Args[0])
		os.Exit(1)
	}
	if *debugFlag {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := options{frames: *framesFlag, interval: *intervalFlag}
	switch *strategyFlag {
	case "single":
		opts.strategy = canvas.SingleBuffered
	case "double":
		opts.strategy = canvas.DoubleBuffered
	default:
		fatal(fmt.Errorf("invalid strategy %q", *strategyFlag))
	}

	var rotation display.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = display.NoRotation
	case "90", "right", "cw":
		rotation = display.Rotate90
	case "180", "flip":
		rotation = display.Rotate180
	case "270", "left", "ccw":
		rotation = display.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := strings.ToLower(flag.Arg(0))
	switch driver {
	case "st7735", "st7789", "sh1106", "ssd1306":
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
	}

	openConn := func(busType string) (display.Conn, error) {
		switch busType {
		case "i2c":
			return display.OpenI2C(&display.I2CConfig{
				Device: *i2cDeviceFlag,
				Addr:   uint8(*i2cAddrFlag),
				Reset:  pin(*resetPinFlag),
			})
		case "spi":
			config := display.DefaultSPIConfig
			config.Bus = *spiBusFlag
			config.Device = *spiDeviceFlag
			config.Reset = pin(*resetPinFlag)
			config.DC = pin(*dcPinFlag)
			if strings.HasPrefix(driver, "st77") {
				config.Mode = spi.Mode3
				config.Speed = 40 * physic.MegaHertz
			}
			return display.OpenSPI(&config)
		default:
			return nil, fmt.Errorf("unsupported bus type %q", busType)
		}
	}
	config := &display.Config{
		Width:     *widthFlag,
		Height:    *heightFlag,
		Rotation:  rotation,
		Backlight: pin(*blPinFlag),
	}

	var err error
	switch driver {
	case "st7735", "st7789":
		var conn display.Conn
		if conn, err = openConn(orDefault(*busFlag, "spi")); err != nil {
			fatal(err)
		}
		fmt.Printf("using connection: %s\n", conn)
		open := display.ST7789
		if driver == "st7735" {
			open = display.ST7735
		}
		var output display.Display[pixel.CRGB16]
		if output, err = open(conn, config); err != nil {
			_ = conn.Close()
			fatal(err)
		}
		defer output.Close()
		fmt.Printf("using driver: %s\n", output)
		err = run[pixel.CRGB16](ctx, output, pixel.CRGB16Channels{}, opts)

	case "sh1106", "ssd1306":
		var conn display.Conn
		if conn, err = openConn(orDefault(*busFlag, "i2c")); err != nil {
			fatal(err)
		}
		fmt.Printf("using connection: %s\n", conn)
		open := display.SSD1306
		if driver == "sh1106" {
			open = display.SH1106
		}
		var output display.Display[pixel.Mono]
		if output, err = open(conn, config); err != nil {
			_ = conn.Close()
			fatal(err)
		}
		defer output.Close()
		fmt.Printf("using driver: %s\n", output)
		err = run[pixel.Mono](ctx, output, pixel.MonoChannels{}, opts)

	case "fb":
		var dev *framebuffer.Device
		if dev, err = framebuffer.Open(*fbFlag); err != nil {
			fatal(err)
		}
		defer dev.Close()
		fmt.Printf("using framebuffer: %s %s\n", *fbFlag, dev.Bounds().Size())
		err = run[pixel.CRGB16](ctx, dev, pixel.CRGB16Channels{}, opts)

	case "png":
		width, height := orDefault(*widthFlag, 128), orDefault(*heightFlag, 64)
		if opts.frames == 0 {
			opts.frames = 1
		}
		target := memory.New[pixel.CRGB16](width, height)
		if err = run[pixel.CRGB16](ctx, target, pixel.CRGB16Channels{}, opts); err != nil {
			fatal(err)
		}
		err = writePNG(*outFlag, memory.Image(target, pixel.CRGB16Channels{}), *scaleFlag)
		if err == nil {
			fmt.Printf("wrote %s\n", *outFlag)
		}

	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		fatal(err)
	}
}

// run animates the scene on target until ctx is done or the frame count is reached.
func run[C comparable, M pixel.Model[C]](ctx context.Context, target canvas.Target[C], m M, opts options) error {
	var (
		size    = target.Bounds().Size()
		storage = [][]C{make([]C, size.X*size.Y)}
	)
	if opts.strategy == canvas.DoubleBuffered {
		storage = append(storage, make([]C, size.X*size.Y))
	}
	c, err := canvas.New(target, m, &canvas.Config{
		Width:    size.X,
		Height:   size.Y,
		Strategy: opts.strategy,
	}, storage...)
	if err != nil {
		return err
	}
	fmt.Printf("using %s buffered %s canvas\n", c.Strategy(), c.Bounds().Size())

	face, err := draw.GoRegular(float64(max(8, size.Y/4)))
	if err != nil {
		return err
	}
	defer face.Close()

	var zero C
	if err = c.Clear(zero); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for frame := 0; opts.frames == 0 || frame < opts.frames; frame++ {
		if err = c.DrawAlpha(func(s *canvas.AlphaSurface[C, M]) error {
			scene(s, face, frame)
			return nil
		}); err != nil {
			return err
		}
		if err = c.Flush(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// scene paints a scrolling hue gradient, a translucent panel with text and a
// frame counter.
func scene[C comparable, M pixel.Model[C]](s *canvas.AlphaSurface[C, M], face font.Face, frame int) {
	var (
		m      = s.Model()
		bounds = s.Bounds()
		w, h   = bounds.Dx(), bounds.Dy()
		white  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	)
	for y := 0; y < h; y++ {
		v := 1 - float64(y)/float64(h)
		for x := 0; x < w; x++ {
			hue := float64((x*360/w+frame*4)%360)
			r, g, b := colorful.Hsv(hue, 1, v).RGB255()
			s.Set(x, y, pixel.Solid(m.Convert(color.RGBA{R: r, G: g, B: b, A: 0xff})))
		}
	}

	panel := bounds.Inset(max(2, h/8))
	draw.RoundedBox(s, panel, max(2, h/10), pixel.FromRGBA[C](m, color.RGBA{A: 0xa0}))
	draw.RoundedRectangle(s, panel, max(2, h/10), pixel.FromRGBA[C](m, white))

	const label = "canvas"
	var (
		metrics = face.Metrics()
		dot     = image.Pt(
			panel.Min.X+(panel.Dx()-draw.Measure(face, label))/2,
			panel.Min.Y+(panel.Dy()+metrics.Ascent.Round()-metrics.Descent.Round())/2,
		)
	)
	draw.Text(s, face, dot, label, pixel.FromRGBA[C](m, white))

	displayer.WriteLine(s, &tinyfont.TomThumb, 2, int16(h-2), fmt.Sprintf("%d", frame), color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0})
}

func writePNG(name string, src image.Image, scale int) error {
	var (
		b   = src.Bounds()
		dst = image.NewRGBA(image.Rect(0, 0, b.Dx()*max(1, scale), b.Dy()*max(1, scale)))
	)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, dst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func pin(name string) gpio.PinIO {
	if name == "" {
		return nil
	}
	return gpioreg.ByName(name)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
