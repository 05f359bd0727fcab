package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/shape"
)

// shapeKeys[i] selects shape.Kinds()[i]
var shapeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

type hitKind int

const (
	hitNone hitKind = iota
	hitToggle
	hitShape
	hitSwatch
	hitPanel
)

type hitResult struct {
	kind  hitKind
	shape shape.Kind
}

// panelLayout positions the control panel widgets for a screen size.
type panelLayout struct {
	open    bool
	toggle  image.Rectangle
	panel   image.Rectangle
	buttons []image.Rectangle // parallel to shape.Kinds()
	swatch  image.Rectangle
	help    image.Point
}

func newPanelLayout(w, h int, open bool) panelLayout {
	const (
		toggleSize = 32
		columns    = 2
		gap        = 10
		headerH    = 64
	)
	pad := config.PanelPadding
	l := panelLayout{
		open:   open,
		toggle: image.Rect(w-pad-toggleSize, pad, w-pad, pad+toggleSize),
	}
	if !open {
		return l
	}

	l.panel = image.Rect(w-config.PanelWidth, 0, w, h)
	top := l.toggle.Max.Y + pad + headerH
	bw := (config.PanelWidth - 2*pad - gap*(columns-1)) / columns
	for i := range shape.Kinds() {
		col, row := i%columns, i/columns
		x := l.panel.Min.X + pad + col*(bw+gap)
		y := top + row*(config.ButtonHeight+gap)
		l.buttons = append(l.buttons, image.Rect(x, y, x+bw, y+config.ButtonHeight))
	}

	rows := (len(l.buttons) + columns - 1) / columns
	swatchY := top + rows*(config.ButtonHeight+gap) + 2*pad
	sx := l.panel.Min.X + pad
	l.swatch = image.Rect(sx, swatchY, sx+config.SwatchSize, swatchY+config.SwatchSize)
	l.help = image.Pt(sx, swatchY+config.SwatchSize+3*pad)
	return l
}

// hit maps a click position to the widget under it.
func (l panelLayout) hit(x, y int) hitResult {
	p := image.Pt(x, y)
	if p.In(l.toggle) {
		return hitResult{kind: hitToggle}
	}
	if !l.open {
		return hitResult{kind: hitNone}
	}
	kinds := shape.Kinds()
	for i, r := range l.buttons {
		if p.In(r) {
			return hitResult{kind: hitShape, shape: kinds[i]}
		}
	}
	// the whole swatch row, including its hex label, opens the picker
	row := image.Rect(l.swatch.Min.X, l.swatch.Min.Y, l.panel.Max.X-config.PanelPadding, l.swatch.Max.Y)
	if p.In(row) {
		return hitResult{kind: hitSwatch}
	}
	if p.In(l.panel) {
		return hitResult{kind: hitPanel}
	}
	return hitResult{kind: hitNone}
}
