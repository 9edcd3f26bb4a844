package css

import (
	"strings"
)

// 16 HTML 4 colors followed by the names understood by the Flex style
// manager. Theme colors must match the runtime table.
var namedColors = map[string]string{
	"black":   "0x000000",
	"blue":    "0x0000FF",
	"green":   "0x008000",
	"gray":    "0x808080",
	"silver":  "0xC0C0C0",
	"lime":    "0x00FF00",
	"olive":   "0x808000",
	"white":   "0xFFFFFF",
	"yellow":  "0xFFFF00",
	"maroon":  "0x800000",
	"navy":    "0x000080",
	"red":     "0xFF0000",
	"purple":  "0x800080",
	"teal":    "0x008080",
	"fuchsia": "0xFF00FF",
	"aqua":    "0x00FFFF",

	"magenta": "0xFF00FF",
	"cyan":    "0x00FFFF",

	"halogreen":  "0x80FF4D",
	"haloblue":   "0x009DFF",
	"haloorange": "0xFFB600",
	"halosilver": "0xAECAD9",
}

// ColorName converts color name (case insensitive) to 0xRRGGBB form.
func ColorName(name string) (string, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}
