// Package shape samples particle clouds for the selectable shapes.
package shape

import (
	"math"
	"math/rand"
	"time"
)

const (
	sphereRadius = 5.0
	colorJitter  = 0.1

	ringShare      = 0.6
	ringInner      = 4.0
	ringOuter      = 8.0
	ringHalfHeight = 0.1
	planetRadius   = 3.0

	headShare  = 0.2
	bodyShare  = 0.4
	headRadius = 1.2
	headLift   = 3.5
	bodyRadius = 2.5
	baseInner  = 3.0
	baseOuter  = 5.0
	baseBottom = -2.5

	burstRadius = 8.0
)

// Source is the random source used for sampling. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Set holds parallel xyz position and rgb color buffers, 3 floats per particle.
type Set struct {
	Positions []float32
	Colors    []float32
}

// Len returns the particle count.
func (s Set) Len() int { return len(s.Positions) / 3 }

// Generator samples particle sets. It is not safe for concurrent use
// unless its Source is.
type Generator struct {
	rnd Source
}

// NewGenerator returns a generator drawing from src, or from a
// time-seeded source when src is nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: src}
}

// Generate samples count particles of the given kind tinted around base.
func (g *Generator) Generate(kind Kind, count int, base RGB) Set {
	if count < 0 {
		count = 0
	}
	set := Set{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}

	for i := 0; i < count; i++ {
		i3 := i * 3
		x, y, z := g.point(kind)
		set.Positions[i3] = float32(x)
		set.Positions[i3+1] = float32(y)
		set.Positions[i3+2] = float32(z)

		j := g.between(-colorJitter, colorJitter)
		set.Colors[i3] = float32(clamp01(base.R + j))
		set.Colors[i3+1] = float32(clamp01(base.G + j))
		set.Colors[i3+2] = float32(clamp01(base.B + j))
	}
	return set
}

func (g *Generator) point(kind Kind) (x, y, z float64) {
	switch kind {
	case Heart:
		return g.heart()
	case Flower:
		return g.flower()
	case Saturn:
		return g.saturn()
	case MeditativeFigure:
		return g.figure()
	case FireworkBurst:
		return g.onSphere(g.rnd.Float64() * burstRadius)
	default:
		return g.onSphere(sphereRadius)
	}
}

func (g *Generator) heart() (x, y, z float64) {
	u := g.rnd.Float64() * 2 * math.Pi
	s := g.between(0.15, 0.20)
	sin := math.Sin(u)
	x = 16 * sin * sin * sin * s
	y = (13*math.Cos(u) - 5*math.Cos(2*u) - 2*math.Cos(3*u) - math.Cos(4*u)) * s
	z = g.between(-2.5, 2.5)
	return x, y, z
}

// 4-petal rose, filled by scaling the radius with a uniform draw
func (g *Generator) flower() (x, y, z float64) {
	theta := g.rnd.Float64() * 2 * math.Pi
	r := math.Cos(4*theta) * sphereRadius * g.rnd.Float64()
	x = r * math.Cos(theta)
	y = r * math.Sin(theta)
	z = g.between(-1, 1) + 1.5*math.Sin(4*theta)
	return x, y, z
}

func (g *Generator) saturn() (x, y, z float64) {
	if g.rnd.Float64() >= ringShare {
		return g.onSphere(planetRadius)
	}
	x, z = g.ring(ringInner, ringOuter)
	y = g.between(-ringHalfHeight, ringHalfHeight)
	return x, y, z
}

func (g *Generator) figure() (x, y, z float64) {
	part := g.rnd.Float64()
	switch {
	case part < headShare:
		x, y, z = g.onSphere(headRadius)
		return x, y + headLift, z
	case part < headShare+bodyShare:
		x, y, z = g.onSphere(bodyRadius)
		return x * 1.2, y, z * 0.8
	default:
		x, z = g.ring(baseInner, baseOuter)
		y = baseBottom + g.rnd.Float64()
		return x, y, z
	}
}

// onSphere samples uniformly on a sphere surface by inverse-CDF latitude.
func (g *Generator) onSphere(r float64) (x, y, z float64) {
	theta := 2 * math.Pi * g.rnd.Float64()
	phi := math.Acos(2*g.rnd.Float64() - 1)
	sinPhi := math.Sin(phi)
	return r * sinPhi * math.Cos(theta), r * sinPhi * math.Sin(theta), r * math.Cos(phi)
}

// ring returns a point in the x/z plane with radius uniform in [inner, outer).
func (g *Generator) ring(inner, outer float64) (x, z float64) {
	r := g.between(inner, outer)
	theta := g.rnd.Float64() * 2 * math.Pi
	return r * math.Cos(theta), r * math.Sin(theta)
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}
