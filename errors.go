package canvas

import "errors"

// Errors
var (
	ErrConfiguration = errors.New("canvas: invalid configuration")
	ErrBusy          = errors.New("canvas: surface is in use")
)
