package framebuffer

import (
	"bytes"
	"encoding/binary"
	"image"
	"os"
	"syscall"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/internal/ioctl"
	"github.com/BeatGlow/canvas/pixel"
)

// From <linux/fb.h>, which predates the direction and size fields.
var (
	fbioGetVScreenInfo = uintptr(ioctl.Encode(ioctl.None, 0, 0x4600))
	fbioGetFScreenInfo = uintptr(ioctl.Encode(ioctl.None, 0, 0x4602))
)

type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		fd     = f.Fd()
		fix    fixScreenInfo
		screen varScreenInfo
		order  binary.ByteOrder
	)
	if err = ioctl.Get(fd, fbioGetFScreenInfo, &fix); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Get(fd, fbioGetVScreenInfo, &screen); err != nil {
		_ = f.Close()
		return nil, err
	}
	if order, err = parseFormat(&screen, binary.NativeEndian); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	mem, err := syscall.Mmap(int(fd), 0, int(fix.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	img := &pixel.CRGB16Image{
		Buffer: pixel.Buffer{
			Rect:   image.Rect(0, 0, int(screen.Xres), int(screen.Yres)),
			Pix:    mem,
			Stride: int(fix.LineLength),
		},
		Order: order,
	}
	canvas.Logger().Debug("framebuffer: open",
		"name", name,
		"id", string(bytes.TrimRight(fix.ID[:], "\x00")),
		"size", img.Rect.Size(),
		"stride", img.Stride)

	return &Device{
		Target: NewTarget(img),
		close: func() error {
			if err := syscall.Munmap(mem); err != nil {
				return err
			}
			return f.Close()
		},
	}, nil
}
