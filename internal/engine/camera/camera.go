// Package camera provides the fixed perspective camera used by the hero scene.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hero3d/pkg/math"
)

// Perspective looks down -Z at a target from a fixed distance.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Distance float32
	Target   math.Vec3
}

// NewPerspective creates a camera with aspect 1. The resize path sets the
// real aspect before the first frame.
func NewPerspective(fov, near, far, distance float32) *Perspective {
	return &Perspective{
		FOV:      fov,
		Aspect:   1,
		Near:     near,
		Far:      far,
		Distance: distance,
	}
}

// Position returns the camera position in world space.
func (c *Perspective) Position() math.Vec3 {
	return c.Target.Add(math.Vec3{Z: c.Distance})
}

// SetAspect updates the width/height ratio. Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	fovY := c.FOV * gomath.Pi / 180
	return math.Perspective(fovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the matrix that unprojects clip space to world space.
func (c *Perspective) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}
