package gfx

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/textimg/core"
	"golang.org/x/image/colornames"
)

// Color is a fill color with non-premultiplied 8-bit channels.
//
// Color implements color.Color.
type Color struct {
	R, G, B, A uint8
}

// Black is the default fill color.
var Black = Color{A: 0xff}

// RGBA returns the alpha-premultiplied channels, as required by color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Channels returns the four channels as normalized floats in blue, green,
// red, alpha order.
func (c Color) Channels() (b, g, r, a float64) {
	return float64(c.B) / 255, float64(c.G) / 255, float64(c.R) / 255, float64(c.A) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor reads a color from one of
//
//	#RRGGBBAA
//	#RRGGBB    (opaque)
//	#RGB       (opaque)
//	name       (an SVG 1.1 color name, e.g. "black" or "tomato")
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Black, nil
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
		return Color{}, core.Error(core.EINVALID, "unknown color name %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, core.Error(core.EINVALID, "malformed color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, core.WrapError(err, core.EINVALID, "malformed color %q", s)
	}
	return Color{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}
