package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/shape"
)

const (
	dotSize = 16
	// brightness boost per unit of chime level
	chimePulse = 0.5
	minRadius  = 0.5
)

var instructions = []string{
	"Allow camera access to enable interaction.",
	"Open/close two hands to expand the universe.",
	"Or pinch index & thumb with one hand.",
	"Drag to rotate the view.",
	"1-6 shape  C color  W white",
	"Space panel  H help  Esc quit",
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawParticles(screen)
	g.drawPanel(screen)
	g.drawStatusPill(screen)
	g.drawStatusLine(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.background == nil || g.background.Bounds().Dx() != w || g.background.Bounds().Dy() != h {
		if g.background != nil {
			g.background.Deallocate()
		}
		g.background = ebiten.NewImage(w, h)
		for y := 0; y < h; y++ {
			c := lerpRGBA(skyTop, skyBottom, float64(y)/float64(h))
			vector.DrawFilledRect(g.background, 0, float32(y), float32(w), 1, c, false)
		}
	}
	screen.DrawImage(g.background, nil)
}

// newDot renders a soft white disc used as the particle sprite.
func newDot() *ebiten.Image {
	img := ebiten.NewImage(dotSize, dotSize)
	r := float32(dotSize) / 2
	// stacked translucent discs approximate a radial falloff
	for i := 4; i >= 1; i-- {
		vector.DrawFilledCircle(img, r, r, r*float32(i)/4, color.RGBA{R: 64, G: 64, B: 64, A: 64}, true)
	}
	return img
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	if g.dot == nil {
		g.dot = newDot()
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	frame := g.cam.Frame(w, h, g.spin, g.anim.Scale())

	alpha := g.cfg.Particles.Opacity
	if g.chimes != nil {
		alpha *= 1 + chimePulse*g.chimes.Level()
	}
	a := float32(clamp01(alpha))
	size := float32(g.cfg.Particles.Size)
	half := float64(dotSize) / 2

	pos, col := g.anim.Positions(), g.anim.Colors()
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
	for i := 0; i < len(pos)/3; i++ {
		sx, sy, depth, ok := frame.Project(pos[i*3], pos[i*3+1], pos[i*3+2])
		if !ok {
			continue
		}
		r := frame.PointRadius(size, depth)
		if r < minRadius {
			r = minRadius
		}
		s := float64(r) / half

		op.GeoM.Reset()
		op.GeoM.Translate(-half, -half)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(sx), float64(sy))

		// premultiplied alpha
		op.ColorScale.Reset()
		op.ColorScale.Scale(col[i*3]*a, col[i*3+1]*a, col[i*3+2]*a, a)
		screen.DrawImage(g.dot, op)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	l := newPanelLayout(screen.Bounds().Dx(), screen.Bounds().Dy(), g.panelOpen)

	if l.open {
		x, y, w, h := rectf(l.panel)
		vector.DrawFilledRect(screen, x, y, w, h, panelFill, false)
		vector.StrokeLine(screen, x, y, x, y+h, 1, panelEdge, false)

		left := l.panel.Min.X + config.PanelPadding
		top := l.toggle.Max.Y + config.PanelPadding
		ebitenutil.DebugPrintAt(screen, "Visuals", left, top)
		ebitenutil.DebugPrintAt(screen, "Select a manifestation", left, top+18)

		sel := g.anim.Selection()
		for i, k := range shape.Kinds() {
			g.drawShapeButton(screen, l.buttons[i], i, k, k == sel.Shape)
		}

		ebitenutil.DebugPrintAt(screen, "Energy Color", l.swatch.Min.X, l.swatch.Min.Y-18)
		base := shape.MustParseColor(sel.Color)
		sx, sy, sw, sh := rectf(l.swatch)
		vector.DrawFilledCircle(screen, sx+sw/2, sy+sh/2, sw/2, base.RGBA(), true)
		vector.StrokeCircle(screen, sx+sw/2, sy+sh/2, sw/2, 1, panelEdge, true)
		hint := "C to change"
		if g.picker.waiting {
			hint = "picking..."
		}
		ebitenutil.DebugPrintAt(screen, sel.Color+"  "+hint, l.swatch.Max.X+10, l.swatch.Min.Y+8)

		if g.helpOpen {
			ebitenutil.DebugPrintAt(screen, "Instructions:", l.help.X, l.help.Y)
			for i, line := range instructions {
				ebitenutil.DebugPrintAt(screen, "- "+line, l.help.X, l.help.Y+18*(i+1))
			}
		}
	}

	x, y, w, h := rectf(l.toggle)
	vector.DrawFilledRect(screen, x, y, w, h, buttonFill, false)
	label := "="
	if l.open {
		label = "x"
	}
	ebitenutil.DebugPrintAt(screen, label, l.toggle.Min.X+l.toggle.Dx()/2-3, l.toggle.Min.Y+l.toggle.Dy()/2-8)
}

func (g *Game) drawShapeButton(screen *ebiten.Image, r image.Rectangle, index int, k shape.Kind, active bool) {
	x, y, w, h := rectf(r)
	vector.DrawFilledRect(screen, x, y, w, h, buttonFill, false)
	edge := buttonIdle
	if active {
		edge = buttonActive
	}
	vector.StrokeRect(screen, x, y, w, h, 1, edge, false)

	label := fmt.Sprintf("%d %s", index+1, k.Label())
	tx := r.Min.X + (r.Dx()-textWidth(label))/2
	ty := r.Min.Y + (r.Dy()-16)/2
	ebitenutil.DebugPrintAt(screen, label, tx, ty)
}

func (g *Game) drawStatusPill(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	px := float32(w-config.PillWidth) / 2
	py := float32(h - config.PillHeight - 24)

	fill, edge, text := pillOff, pillOffEdge, "NO SIGNAL"
	if g.detected {
		fill, edge, text = pillOn, pillOnEdge, "HANDS CONNECTED"
	}
	vector.DrawFilledRect(screen, px, py, config.PillWidth, config.PillHeight, fill, false)
	vector.StrokeRect(screen, px, py, config.PillWidth, config.PillHeight, 1, edge, false)
	vector.DrawFilledCircle(screen, px+14, py+config.PillHeight/2, 4, edge, true)
	ebitenutil.DebugPrintAt(screen, text, int(px)+26, int(py)+4)
}

func (g *Game) drawStatusLine(screen *ebiten.Image) {
	status := g.anim.Selection().String()
	if g.statusText != "" {
		status += " | " + g.statusText
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if g.cfg.Verbose {
		status += fmt.Sprintf(" | %.0f fps | scale %.2f", ebiten.ActualFPS(), g.anim.Scale())
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}
