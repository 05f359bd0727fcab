package morph

import (
	"strings"

	"github.com/iburimskiy/gesture-particles/internal/shape"
)

// Selection is the shape and base color picked in the control panel.
type Selection struct {
	Shape shape.Kind
	Color string // "#rrggbb"
}

// WithShape switches to k. While the color is still plain white the shape's
// theme color is adopted as well; any other color is kept.
func (s Selection) WithShape(k shape.Kind) Selection {
	s.Shape = k
	if strings.EqualFold(s.Color, shape.White) {
		s.Color = shape.Theme(k)
	}
	return s
}

// WithColor returns s with a new base color.
func (s Selection) WithColor(hex string) Selection {
	s.Color = hex
	return s
}

func (s Selection) String() string {
	return s.Shape.Label() + " " + s.Color
}
