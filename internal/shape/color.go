package shape

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// White is the neutral base color; picking a shape while white adopts its theme.
const White = "#ffffff"

// RGB is a color with each channel in [0,1].
type RGB struct {
	R, G, B float64
}

// ParseColor reads a "#rrggbb" or "#rgb" hex string.
func ParseColor(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(hex string) RGB {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor converts any image color, e.g. one returned by a color dialog.
func FromColor(c color.Color) RGB {
	cf, _ := colorful.MakeColor(c)
	return RGB{R: cf.R, G: cf.G, B: cf.B}
}

// Hex formats the color as lower-case "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// RGBA converts to an opaque 8-bit color.
func (c RGB) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// NormalizeHex returns the canonical "#rrggbb" form of hex.
func NormalizeHex(hex string) (string, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
