//go:build !linux

package framebuffer

// Open is not supported on this platform.
func Open(_ string) (*Device, error) {
	return nil, ErrNotSupported
}
