package game

import (
	"image"
	"image/color"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerpRGBA blends two opaque colors, t in [0,1].
func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// rectf unpacks a rectangle for the vector package.
func rectf(r image.Rectangle) (x, y, w, h float32) {
	return float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
}

// textWidth approximates the width of debug-font text.
func textWidth(s string) int {
	return len(s) * 6
}
