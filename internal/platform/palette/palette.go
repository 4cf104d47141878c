// Package palette turns piece color specs into RGB values for pixel
// renderers. A spec is a hex triplet ("#f00", "#ff0000") or an xterm-256
// color number ("196").
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is used for specs that cannot be parsed.
var Fallback = colorful.Color{R: 0x88 / 255.0, G: 0x88 / 255.0, B: 0x88 / 255.0}

// ansi16 holds the xterm defaults for the first 16 color numbers.
var ansi16 = [16]string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

// Parse converts a color spec to a colorful.Color.
func Parse(spec string) (colorful.Color, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(spec)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("palette: %q: %w", spec, err)
		}
		return c, nil
	}

	n, err := strconv.Atoi(spec)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}, fmt.Errorf("palette: %q is not a hex or xterm color", spec)
	}
	return xterm(n), nil
}

// xterm returns the standard RGB value of an xterm-256 color number.
func xterm(n int) colorful.Color {
	switch {
	case n < 16:
		c, _ := colorful.Hex(ansi16[n])
		return c
	case n < 232:
		n -= 16
		return colorful.Color{R: cubeLevel(n / 36), G: cubeLevel(n / 6 % 6), B: cubeLevel(n % 6)}
	default:
		v := float64(8+10*(n-232)) / 255
		return colorful.Color{R: v, G: v, B: v}
	}
}

func cubeLevel(v int) float64 {
	if v == 0 {
		return 0
	}
	return float64(55+40*v) / 255
}

// RGBA converts a spec to an opaque color.RGBA, using Fallback for bad specs.
func RGBA(spec string) color.RGBA {
	c, err := Parse(spec)
	if err != nil {
		c = Fallback
	}
	return toRGBA(c)
}

// Highlight returns a lighter variant of spec for rims and glints.
func Highlight(spec string, amount float64) color.RGBA {
	c, err := Parse(spec)
	if err != nil {
		c = Fallback
	}
	return toRGBA(c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped())
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
