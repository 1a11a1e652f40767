// Package pixel implements the opaque color encodings used by OLED and LCD pixel displays,
// the channel model used to take them apart, and alpha compositing on top of them.
//
// The colors in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces. A [ChannelModel] describes how to extract the
// per-channel intensities of an encoding and how to put them back together; [Blend] is
// written once against that contract and works for every encoding.
package pixel
