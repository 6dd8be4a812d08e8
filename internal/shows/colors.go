package shows

import "image/color"

// Hex parses a #RRGGBB color. Panics on malformed input, which for the
// hand-written palette below is a programming error.
func Hex(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		panic("bad hex color: " + s)
	}

	nib := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		panic("bad hex color: " + s)
	}

	return color.RGBA{
		R: nib(s[1])<<4 | nib(s[2]),
		G: nib(s[3])<<4 | nib(s[4]),
		B: nib(s[5])<<4 | nib(s[6]),
		A: 255,
	}
}

// Shared palette.
var (
	colorBackground = Hex("#101418")
	colorPanel      = Hex("#1d2733")
	colorStroke     = Hex("#3c4d60")
	colorText       = Hex("#e8ecf1")
	colorMuted      = Hex("#7a8694")
	colorAccent     = Hex("#4aa3ff")
	colorCurrent    = Hex("#f2c037")
	colorGood       = Hex("#3ecf6f")
	colorBad        = Hex("#e25555")
	colorDim        = Hex("#2a2f36")
)
