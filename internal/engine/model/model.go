package model

import (
	"github.com/Faultbox/hero3d/pkg/math"
)

// Model is a mesh placed in the scene. Scale is uniform and rotation is
// about the Y axis only.
type Model struct {
	Name        string
	Mesh        *Mesh
	Material    Material
	Placeholder bool

	Position math.Vec3
	Scale    float32
	Rotation float32 // Radians, accumulates without wrapping
}

// New creates a model with identity placement.
func New(name string, mesh *Mesh, material Material) *Model {
	return &Model{
		Name:     name,
		Mesh:     mesh,
		Material: material,
		Scale:    1,
	}
}

// Matrix returns the local-to-world transform: translate, rotate Y, scale.
func (m *Model) Matrix() math.Mat4 {
	return math.Translate(m.Position.X, m.Position.Y, m.Position.Z).
		Mul(math.RotateY(m.Rotation)).
		Mul(math.Scale(m.Scale, m.Scale, m.Scale))
}

// LocalBounds returns the unscaled mesh bounds. A model without geometry has
// an empty box.
func (m *Model) LocalBounds() math.Box3 {
	if m.Mesh == nil {
		return math.EmptyBox3()
	}
	return m.Mesh.Bounds
}

// WorldBounds returns the axis-aligned bounds after the model transform.
func (m *Model) WorldBounds() math.Box3 {
	b := m.LocalBounds()
	if b.IsEmpty() {
		return b
	}
	return b.Transform(m.Matrix())
}
