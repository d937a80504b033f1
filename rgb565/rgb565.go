/*
Package rgb565 implements the 16-bit packed color format used by the pixel
table, with 5 bits of red, 6 bits of green and 5 bits of blue:

	RRRRRRRR GGGGGGGG BBBBBBBB -> RRRRRGGG GGGBBBBB
*/
package rgb565

import (
	"image/color"
)

const (
	rMask = 0b1111100000000000
	gMask = 0b0000011111100000
	bMask = 0b0000000000011111
)

// Color is a packed RGB565 color.
type Color uint16

// Pack quantizes an 8-bit per channel color, keeping the top 5 bits of red
// and blue and the top 6 bits of green.
func Pack(r, g, b uint8) Color {
	return Color(uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3)
}

// Components returns the channels of c shifted back into the top bits of an
// 8-bit value; the discarded low bits are zero.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c & rMask >> 8), uint8(c & gMask >> 3), uint8(c & bMask << 3)
}

// RGBA implements color.Color. The low bits of each channel are filled by
// replicating the high bits so that full intensity maps to 0xffff.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()

	r = uint32(r8 | r8>>5)
	g = uint32(g8 | g8>>6)
	b = uint32(b8 | b8>>5)

	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// Model converts any color to Color. Alpha is discarded without
// premultiplying, the same as flattening an image to plain RGB.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	return Convert(c)
})

// Convert returns the packed form of c.
func Convert(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B)
}
