// Package view projects particle positions onto the screen from an orbiting
// perspective camera.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maximum pitch keeps the camera off the poles where the up vector degenerates
const maxPitch = math.Pi/2 - 0.01

// Camera orbits the origin at a fixed distance. Yaw and pitch are driven by
// mouse drags; there is no zoom or pan.
type Camera struct {
	Distance float32
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32

	yaw, pitch float32
}

// NewCamera looks at the origin from +Z.
func NewCamera(distance, fovDeg, near, far float64) *Camera {
	return &Camera{
		Distance: float32(distance),
		FOV:      float32(fovDeg),
		Near:     float32(near),
		Far:      float32(far),
	}
}

// Orbit rotates the camera around the origin by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.yaw += float32(dYaw)
	c.pitch = mgl32.Clamp(c.pitch+float32(dPitch), -maxPitch, maxPitch)
}

// Angles returns yaw and pitch in radians.
func (c *Camera) Angles() (yaw, pitch float64) {
	return float64(c.yaw), float64(c.pitch)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(c.yaw))
	sp, cp := math.Sincos(float64(c.pitch))
	d := float64(c.Distance)
	return mgl32.Vec3{float32(d * cp * sy), float32(d * sp), float32(d * cp * cy)}
}

// Frame is a combined model-view-projection for one draw.
type Frame struct {
	mvp        mgl32.Mat4
	halfW      float32
	halfH      float32
	pixelScale float32
}

// Frame builds the transform for a viewport of w×h pixels, applying the
// particle set's spin around Y and its uniform scale.
func (c *Camera) Frame(w, h int, spin, scale float64) Frame {
	aspect := float32(w) / float32(h)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
	look := mgl32.LookAtV(c.Eye(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	s := float32(scale)
	model := mgl32.HomogRotate3DY(float32(spin)).Mul4(mgl32.Scale3D(s, s, s))

	return Frame{
		mvp:   proj.Mul4(look).Mul4(model),
		halfW: float32(w) / 2,
		halfH: float32(h) / 2,
		// pixels per world unit at distance 1
		pixelScale: proj.At(1, 1) * float32(h) / 2,
	}
}

// Project maps a model-space point to screen pixels (y down). depth is the
// clip-space w, the distance along the view axis; ok is false for points
// behind the camera or outside the depth range.
func (f Frame) Project(x, y, z float32) (sx, sy, depth float32, ok bool) {
	clip := f.mvp.Mul4x1(mgl32.Vec4{x, y, z, 1})
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	sx = f.halfW + ndc.X()*f.halfW
	sy = f.halfH - ndc.Y()*f.halfH
	return sx, sy, clip.W(), true
}

// PointRadius returns the on-screen radius in pixels of a point of world
// size at the given depth, so near particles draw larger.
func (f Frame) PointRadius(size, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return size * f.pixelScale / depth / 2
}
