package morph

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/gesture-particles/internal/gesture"
	"github.com/iburimskiy/gesture-particles/internal/shape"
)

type countingGenerator struct {
	inner *shape.Generator
	calls int
	kinds []shape.Kind
}

func (g *countingGenerator) Generate(k shape.Kind, n int, base shape.RGB) shape.Set {
	g.calls++
	g.kinds = append(g.kinds, k)
	return g.inner.Generate(k, n, base)
}

// shortGenerator returns one particle too few.
type shortGenerator struct{}

func (shortGenerator) Generate(k shape.Kind, n int, base shape.RGB) shape.Set {
	return shape.Set{Positions: make([]float32, (n-1)*3), Colors: make([]float32, (n-1)*3)}
}

func newGen(seed int64) *countingGenerator {
	return &countingGenerator{inner: shape.NewGenerator(rand.New(rand.NewSource(seed)))}
}

func mustNew(t *testing.T, n int, sel Selection, gen Generator) *Animator {
	t.Helper()
	a, err := New(n, sel, gen)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewStartsAsSphere(t *testing.T) {
	gen := newGen(1)
	a := mustNew(t, 1000, Selection{Shape: shape.Sphere, Color: "#FFFFFF"}, gen)

	if gen.calls != 1 {
		t.Errorf("Expected a single generation for a sphere start, got %d", gen.calls)
	}
	if a.Count() != 1000 || len(a.Positions()) != 3000 || len(a.Targets()) != 3000 || len(a.Colors()) != 3000 {
		t.Fatalf("Expected 3N buffers, got %d/%d/%d", len(a.Positions()), len(a.Targets()), len(a.Colors()))
	}
	for i := range a.Positions() {
		if a.Positions()[i] != a.Targets()[i] {
			t.Fatalf("Expected current == target at start, index %d differs", i)
		}
	}
	if a.Scale() != 1 {
		t.Errorf("Expected initial scale 1, got %v", a.Scale())
	}
	if got := a.Selection(); got.Shape != shape.Sphere || got.Color != "#ffffff" {
		t.Errorf("Expected normalized sphere selection, got %v", got)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		count int
		color string
	}{
		{"Zero count", 0, "#ffffff"},
		{"Negative count", -3, "#ffffff"},
		{"Bad color", 10, "pink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.count, Selection{Color: tt.color}, newGen(2)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestSelectHeartScenario(t *testing.T) {
	gen := newGen(3)
	a := mustNew(t, 5000, Selection{Shape: shape.Sphere, Color: shape.White}, gen)

	before := append([]float32(nil), a.Positions()...)
	oldTarget := append([]float32(nil), a.Targets()...)

	if err := a.Select(Selection{Shape: shape.Heart, Color: "#ff0066"}); err != nil {
		t.Fatalf("Select: %v", err)
	}

	if gen.calls != 2 || gen.kinds[1] != shape.Heart {
		t.Fatalf("Expected one heart generation, got calls=%d kinds=%v", gen.calls, gen.kinds)
	}

	changed := 0
	for i := range oldTarget {
		if oldTarget[i] != a.Targets()[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("Expected target buffer to be replaced")
	}

	for i := range before {
		if before[i] != a.Positions()[i] {
			t.Fatalf("Expected current positions untouched by Select, index %d moved", i)
		}
	}

	base := shape.MustParseColor("#ff0066")
	channels := []float64{base.R, base.G, base.B}
	for i, c := range a.Colors() {
		if d := math.Abs(float64(c) - channels[i%3]); d > 0.1+1e-6 {
			t.Fatalf("color[%d] = %v deviates %v from base", i, c, d)
		}
	}

	gap := maxGap(a)
	for i := 0; i < 100; i++ {
		a.Tick(gesture.Sample{})
	}
	if after := maxGap(a); after > gap*math.Pow(1-PositionLerp, 100)+1e-4 {
		t.Errorf("Expected gap %v to shrink to ~%v, got %v", gap, gap*math.Pow(1-PositionLerp, 100), after)
	}
}

func TestSelectSameSelectionIsNoop(t *testing.T) {
	gen := newGen(4)
	a := mustNew(t, 100, Selection{Shape: shape.Saturn, Color: "#ffcc00"}, gen)
	calls := gen.calls

	if err := a.Select(Selection{Shape: shape.Saturn, Color: "#FFCC00"}); err != nil {
		t.Fatal(err)
	}
	if err := a.SetShape(shape.Saturn); err != nil {
		t.Fatal(err)
	}
	if gen.calls != calls {
		t.Errorf("Expected no regeneration for an unchanged selection, got %d extra", gen.calls-calls)
	}

	if err := a.SetColor("#00ffcc"); err != nil {
		t.Fatal(err)
	}
	if gen.calls != calls+1 {
		t.Errorf("Expected color change to regenerate, got %d calls", gen.calls)
	}
	if got := a.Selection(); got.Shape != shape.Saturn || got.Color != "#00ffcc" {
		t.Errorf("Expected saturn #00ffcc, got %v", got)
	}
}

func TestSelectBadColorKeepsState(t *testing.T) {
	a := mustNew(t, 10, Selection{Shape: shape.Flower, Color: "#ff66b2"}, newGen(5))
	if err := a.SetColor("#nothex"); err == nil {
		t.Fatal("Expected an error for a bad color")
	}
	if got := a.Selection(); got.Color != "#ff66b2" {
		t.Errorf("Expected selection unchanged, got %v", got)
	}
}

func TestGeneratorCountMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on buffer size mismatch")
		}
	}()
	_, _ = New(10, Selection{Color: shape.White}, shortGenerator{})
}

func TestPositionConvergence(t *testing.T) {
	a := mustNew(t, 500, Selection{Shape: shape.Sphere, Color: shape.White}, newGen(6))
	if err := a.SetShape(shape.FireworkBurst); err != nil {
		t.Fatal(err)
	}
	initial := gaps(a)

	for tick := 0; tick < 100; tick++ {
		a.Tick(gesture.Sample{Detected: true, Expansion: 0.4})
	}

	bound := math.Pow(1-PositionLerp, 100)
	for i, g := range gaps(a) {
		if g > initial[i]*bound+1e-4 {
			t.Fatalf("index %d: expected gap <= %v, got %v", i, initial[i]*bound, g)
		}
	}
}

func TestScaleConvergence(t *testing.T) {
	tests := []struct {
		name   string
		sample gesture.Sample
		want   float64
	}{
		{"Undetected", gesture.Sample{}, 1.0},
		{"Closed pinch", gesture.Sample{Detected: true}, 0.5},
		{"Half open", gesture.Sample{Detected: true, Expansion: 0.5}, 1.5},
		{"Two hands wide", gesture.Sample{Detected: true, Expansion: 2}, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleTarget(tt.sample); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Expected scale target %v, got %v", tt.want, got)
			}

			a := mustNew(t, 4, Selection{Color: shape.White}, newGen(7))
			gap := math.Abs(tt.want - a.Scale())

			a.Tick(tt.sample)
			if got := math.Abs(tt.want - a.Scale()); math.Abs(got-gap*(1-ScaleLerp)) > 1e-12 {
				t.Errorf("Expected one tick to leave %v of the gap, got %v", gap*(1-ScaleLerp), got)
			}

			for i := 1; i < 100; i++ {
				a.Tick(tt.sample)
			}
			if got := math.Abs(tt.want - a.Scale()); got > gap*math.Pow(1-ScaleLerp, 100)+1e-12 {
				t.Errorf("Expected gap <= %v after 100 ticks, got %v", gap*math.Pow(1-ScaleLerp, 100), got)
			}
		})
	}
}

func TestSelectionWithShape(t *testing.T) {
	tests := []struct {
		name  string
		start Selection
		kind  shape.Kind
		want  string
	}{
		{"White adopts theme", Selection{Shape: shape.Sphere, Color: "#ffffff"}, shape.Saturn, "#ffcc00"},
		{"Upper-case white adopts theme", Selection{Shape: shape.Sphere, Color: "#FFFFFF"}, shape.Flower, "#ff66b2"},
		{"Custom color kept", Selection{Shape: shape.Heart, Color: "#123456"}, shape.Saturn, "#123456"},
		{"Sphere theme is white", Selection{Shape: shape.Heart, Color: "#ffffff"}, shape.Sphere, "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.WithShape(tt.kind)
			if got.Shape != tt.kind || got.Color != tt.want {
				t.Errorf("Expected %v %s, got %v", tt.kind, tt.want, got)
			}
		})
	}
}

func gaps(a *Animator) []float64 {
	out := make([]float64, len(a.Positions()))
	for i := range out {
		out[i] = math.Abs(float64(a.Targets()[i] - a.Positions()[i]))
	}
	return out
}

func maxGap(a *Animator) float64 {
	m := 0.0
	for _, g := range gaps(a) {
		m = math.Max(m, g)
	}
	return m
}
