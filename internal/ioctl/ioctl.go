// Package ioctl encodes and issues ioctl requests.
package ioctl

import "fmt"

// Mode is the direction of the data transfer, as seen from user space.
type Mode uint8

// Modes, as in <asm-generic/ioctl.h>.
const (
	None  Mode = 0
	Write Mode = 1
	Read  Mode = 2
)

func (m Mode) String() string {
	switch m & (Read | Write) {
	case Read:
		return "read"
	case Write:
		return "write"
	case Read | Write:
		return "read/write"
	default:
		return "none"
	}
}

// Command is an encoded ioctl request number.
type Command uintptr

// Encode an ioctl command.
func Encode(mode Mode, size uint16, nr uintptr) Command {
	return Command(mode&3)<<30 | Command(size&0x3fff)<<16 | Command(nr&0xffff)
}

// Mode is the transfer direction of the command.
func (c Command) Mode() Mode { return Mode(c>>30) & 3 }

// Size of the argument in bytes.
func (c Command) Size() int { return int(c>>16) & 0x3fff }

// Nr is the type and number of the command.
func (c Command) Nr() uintptr { return uintptr(c) & 0xffff }

func (c Command) String() string {
	return fmt.Sprintf("ioctl %#04x %s (%d bytes)", c.Nr(), c.Mode(), c.Size())
}
