package game

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/gesture"
	"github.com/iburimskiy/gesture-particles/internal/morph"
	"github.com/iburimskiy/gesture-particles/internal/shape"
	"github.com/iburimskiy/gesture-particles/internal/view"
)

// Signal is the gesture feed read once per tick.
type Signal interface {
	Latest() gesture.Sample
	Status() gesture.Status
}

// Chimer plays feedback sounds. *audio.Chimes satisfies it.
type Chimer interface {
	ShapeChanged()
	HandsFound()
	HandsLost()
	Level() float64
}

// Game is the ebiten front end: it feeds input and gesture samples to the
// animator and draws its buffers every frame.
type Game struct {
	cfg    *config.Config
	anim   *morph.Animator
	signal Signal
	chimes Chimer
	cam    *view.Camera

	// viz
	dot        *ebiten.Image
	background *ebiten.Image
	spin       float64
	width      int
	height     int

	// selection requested by input, applied at the start of the next tick
	pending morph.Selection

	// input state
	dragging     bool
	lastX, lastY int
	panelOpen    bool
	helpOpen     bool

	picker *colorPicker
	notify func(msg string)

	// state
	detected   bool
	notified   bool
	lastErr    error
	statusText string
}

// New builds the front end around an animator. signal may be nil when hand
// tracking is disabled; chimes may be nil for silence.
func New(cfg *config.Config, anim *morph.Animator, signal Signal, chimes Chimer) *Game {
	return &Game{
		cfg:       cfg,
		anim:      anim,
		signal:    signal,
		chimes:    chimes,
		cam:       view.NewCamera(cfg.View.Distance, cfg.View.FieldOfView, config.NearPlane, config.FarPlane),
		pending:   anim.Selection(),
		panelOpen: true,
		helpOpen:  true,
		picker:    newColorPicker(),
		notify:    notifyFailure,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.handleKeys()
	g.handleMouse()
	g.collectPicked()
	g.applySelection()

	sample := g.sample()
	g.trackDetection(sample)

	g.anim.Tick(sample)
	g.spin += g.cfg.View.RotationSpeed
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func (g *Game) handleKeys() {
	for i, k := range shapeKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.pending = g.pending.WithShape(shape.Kinds()[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.picker.open(g.pending.Color)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.pending = g.pending.WithColor(shape.White)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.panelOpen = !g.panelOpen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.helpOpen = !g.helpOpen
	}
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	l := newPanelLayout(g.width, g.height, g.panelOpen)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch hit := l.hit(x, y); hit.kind {
		case hitToggle:
			g.panelOpen = !g.panelOpen
		case hitShape:
			g.pending = g.pending.WithShape(hit.shape)
		case hitSwatch:
			g.picker.open(g.pending.Color)
		case hitPanel:
			// clicks on the panel body never start an orbit drag
		default:
			g.dragging = true
			g.lastX, g.lastY = x, y
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		dx, dy := x-g.lastX, y-g.lastY
		g.cam.Orbit(-float64(dx)*config.DragSpeed, float64(dy)*config.DragSpeed)
		g.lastX, g.lastY = x, y
	}
}

func (g *Game) collectPicked() {
	c, ok, err := g.picker.poll()
	if err != nil {
		g.lastErr = err
		return
	}
	if !ok {
		return
	}
	g.pending = g.pending.WithColor(shape.FromColor(c).Hex())
}

func (g *Game) applySelection() {
	prev := g.anim.Selection()
	if err := g.anim.Select(g.pending); err != nil {
		g.lastErr = err
		g.pending = prev
		return
	}
	next := g.anim.Selection()
	g.pending = next
	if next == prev {
		return
	}
	if g.cfg.Verbose {
		log.Printf("selection: %v -> %v", prev, next)
	}
	if next.Shape != prev.Shape && g.chimes != nil {
		g.chimes.ShapeChanged()
	}
}

func (g *Game) sample() gesture.Sample {
	if g.signal == nil {
		return gesture.Sample{}
	}
	return g.signal.Latest()
}

func (g *Game) trackDetection(s gesture.Sample) {
	if s.Detected != g.detected && g.chimes != nil {
		if s.Detected {
			g.chimes.HandsFound()
		} else {
			g.chimes.HandsLost()
		}
	}
	g.detected = s.Detected

	g.statusText = ""
	if g.signal == nil {
		g.statusText = "Hand tracking off"
		return
	}
	st := g.signal.Status()
	switch st.State {
	case gesture.StateLoading:
		g.statusText = st.Message
	case gesture.StateFailed:
		g.statusText = st.Message
		if !g.notified {
			g.notified = true
			g.notify(st.Message)
		}
	}
}

// SetError shows err in the status line, e.g. a failed audio device.
func (g *Game) SetError(err error) {
	if err != nil && !errors.Is(err, ebiten.Termination) {
		g.lastErr = err
	}
}

var (
	pillOn       = color.RGBA{R: 34, G: 197, B: 94, A: 60}
	pillOnEdge   = color.RGBA{R: 34, G: 197, B: 94, A: 140}
	pillOff      = color.RGBA{R: 239, G: 68, B: 68, A: 30}
	pillOffEdge  = color.RGBA{R: 239, G: 68, B: 68, A: 70}
	panelFill    = color.RGBA{R: 0, G: 0, B: 0, A: 110}
	panelEdge    = color.RGBA{R: 255, G: 255, B: 255, A: 26}
	buttonFill   = color.RGBA{R: 255, G: 255, B: 255, A: 26}
	buttonActive = color.RGBA{R: 255, G: 255, B: 255, A: 128}
	buttonIdle   = color.RGBA{R: 255, G: 255, B: 255, A: 26}
	skyTop       = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	skyBottom    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)
