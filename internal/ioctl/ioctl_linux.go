package ioctl

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Get issues command with a pointer to v, for the driver to fill in.
func Get[T any](fd uintptr, command uintptr, v *T) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, command, uintptr(unsafe.Pointer(v)))
	return check(command, errno)
}

func check(command uintptr, errno syscall.Errno) error {
	if errno != 0 {
		return fmt.Errorf("ioctl %s failed: %w", Command(command), errno)
	}
	return nil
}
