// Package gesture turns hand landmarks into the expansion signal that drives
// particle scale, and runs the detector off the render thread.
package gesture

import "math"

// Landmark indices used by the mapper, in the 21-point hand topology.
const (
	Wrist    = 0
	ThumbTip = 4
	IndexTip = 8
)

const (
	twoHandOffset = 0.05
	twoHandGain   = 2.0
	twoHandMax    = 2.0

	pinchOffset = 0.03
	pinchGain   = 5.0
	pinchMax    = 1.5
)

// Point is a landmark in normalized frame coordinates; Z is optional.
type Point struct {
	X, Y, Z float64
}

// Hand is one tracked hand as an ordered landmark list.
type Hand []Point

// Sample is the gesture signal for one detection result.
// Expansion is 0 whenever Detected is false.
type Sample struct {
	Detected  bool
	Expansion float64
}

// Map converts one detection result into a Sample. Two or more hands measure
// the wrist-to-wrist span of the first two; a single hand measures the
// thumb-to-index pinch.
func Map(hands []Hand) Sample {
	switch {
	case len(hands) == 0:
		return Sample{}
	case len(hands) >= 2:
		a, okA := hands[0].at(Wrist)
		b, okB := hands[1].at(Wrist)
		if !okA || !okB {
			return Sample{Detected: true}
		}
		return Sample{Detected: true, Expansion: clamp((planar(a, b)-twoHandOffset)*twoHandGain, 0, twoHandMax)}
	default:
		thumb, okT := hands[0].at(ThumbTip)
		index, okI := hands[0].at(IndexTip)
		if !okT || !okI {
			return Sample{Detected: true}
		}
		return Sample{Detected: true, Expansion: clamp((planar(thumb, index)-pinchOffset)*pinchGain, 0, pinchMax)}
	}
}

func (h Hand) at(i int) (Point, bool) {
	if i < 0 || i >= len(h) {
		return Point{}, false
	}
	return h[i], true
}

// planar ignores Z; monocular depth estimates are too noisy to use.
func planar(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
