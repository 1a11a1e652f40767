// Package canvas is a framebuffer layer for displays without an alpha channel.
//
// A [Canvas] keeps the pixels of a display in caller-owned storage and pushes
// them to a physical [Target] on [Canvas.Flush]. Pixels are drawn through
// callback-scoped surfaces: [Canvas.Draw] writes opaque colors, while
// [Canvas.DrawAlpha] composites translucent colors onto whatever the buffer
// already holds, using [pixel.Blend] in the native channel depth of the
// display encoding.
//
// Two buffering strategies are supported. A single buffered canvas draws
// into its only buffer and forwards the region touched since the previous
// flush. A double buffered canvas draws into a back buffer, and each flush
// sends only the cells that differ from the front buffer (the state last
// pushed to the display), then copies back into front.
//
// Storage is never allocated by this package. Declare it with a size that
// is known at compile time:
//
//	const width, height = 240, 240
//
//	var back, front [width * height]pixel.CRGB16
//
//	// Fails to compile if the storage does not match the panel.
//	const capacity = len(back)
//	var (
//		_ [capacity - width*height]struct{}
//		_ [width*height - capacity]struct{}
//	)
//
//	c, err := canvas.NewDoubleBuffered(target, pixel.CRGB16Channels{}, back[:], front[:], width, height)
package canvas
