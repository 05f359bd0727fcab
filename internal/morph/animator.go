// Package morph owns the particle buffers and eases them toward the selected
// shape and the gesture-driven scale, one render tick at a time.
package morph

import (
	"fmt"

	"github.com/iburimskiy/gesture-particles/internal/gesture"
	"github.com/iburimskiy/gesture-particles/internal/shape"
)

const (
	// PositionLerp is the fraction of the remaining gap closed per tick by
	// every particle coordinate.
	PositionLerp = 0.08
	// ScaleLerp is the per-tick fraction for the uniform scale; faster than
	// PositionLerp so gestures feel immediate.
	ScaleLerp = 0.15

	baseScale       = 1.0
	minGestureScale = 0.5
	expansionGain   = 2.0
)

// Generator produces a particle set; *shape.Generator satisfies it.
type Generator interface {
	Generate(kind shape.Kind, count int, base shape.RGB) shape.Set
}

// Animator holds the current and target particle buffers for a session.
// Buffer lengths never change after New. It is meant to be driven from a
// single render goroutine.
type Animator struct {
	gen   Generator
	count int

	current []float32
	target  []float32
	colors  []float32
	scale   float64

	sel Selection
}

// New creates an animator whose current and target buffers both hold a
// sphere in sel's color, then applies sel.
func New(count int, sel Selection, gen Generator) (*Animator, error) {
	if count <= 0 {
		return nil, fmt.Errorf("particle count must be positive, got %d", count)
	}
	base, err := shape.ParseColor(sel.Color)
	if err != nil {
		return nil, err
	}

	a := &Animator{
		gen:     gen,
		count:   count,
		current: make([]float32, count*3),
		target:  make([]float32, count*3),
		colors:  make([]float32, count*3),
		scale:   baseScale,
	}

	initial := a.generate(shape.Sphere, base)
	copy(a.current, initial.Positions)
	copy(a.target, initial.Positions)
	copy(a.colors, initial.Colors)
	a.sel = Selection{Shape: shape.Sphere, Color: base.Hex()}

	if err := a.Select(sel); err != nil {
		return nil, err
	}
	return a, nil
}

// Select regenerates the target buffer when the shape or color differs from
// the last generated selection. Colors snap immediately; positions follow on
// subsequent ticks.
func (a *Animator) Select(sel Selection) error {
	base, err := shape.ParseColor(sel.Color)
	if err != nil {
		return err
	}
	sel.Color = base.Hex()
	if sel == a.sel {
		return nil
	}

	set := a.generate(sel.Shape, base)
	copy(a.target, set.Positions)
	copy(a.colors, set.Colors)
	a.sel = sel
	return nil
}

// SetShape is Select with the current color.
func (a *Animator) SetShape(k shape.Kind) error {
	return a.Select(Selection{Shape: k, Color: a.sel.Color})
}

// SetColor is Select with the current shape.
func (a *Animator) SetColor(hex string) error {
	return a.Select(Selection{Shape: a.sel.Shape, Color: hex})
}

// Tick advances positions and scale by one frame.
func (a *Animator) Tick(s gesture.Sample) {
	for i := range a.current {
		a.current[i] += (a.target[i] - a.current[i]) * PositionLerp
	}
	a.scale += (ScaleTarget(s) - a.scale) * ScaleLerp
}

// ScaleTarget maps a gesture sample to the uniform scale the set eases toward.
func ScaleTarget(s gesture.Sample) float64 {
	if !s.Detected {
		return baseScale
	}
	return minGestureScale + s.Expansion*expansionGain
}

func (a *Animator) generate(k shape.Kind, base shape.RGB) shape.Set {
	set := a.gen.Generate(k, a.count, base)
	if len(set.Positions) != a.count*3 || len(set.Colors) != a.count*3 {
		panic(fmt.Sprintf("morph: generator returned %d positions and %d colors for %d particles",
			len(set.Positions), len(set.Colors), a.count))
	}
	return set
}

// Count returns the fixed particle count.
func (a *Animator) Count() int { return a.count }

// Positions returns the live xyz buffer. Callers must not retain it across ticks.
func (a *Animator) Positions() []float32 { return a.current }

// Targets returns the target xyz buffer.
func (a *Animator) Targets() []float32 { return a.target }

// Colors returns the live rgb buffer.
func (a *Animator) Colors() []float32 { return a.colors }

// Scale returns the current uniform scale.
func (a *Animator) Scale() float64 { return a.scale }

// Selection returns the selection the target was generated from.
func (a *Animator) Selection() Selection { return a.sel }
