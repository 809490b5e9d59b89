// Package model provides hero meshes, their materials and frame fitting.
package model

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hero3d/pkg/math"
)

// Vertex represents a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds triangle geometry in model-local space.
// Every three consecutive indices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   math.Box3
}

// Material is the surface description used by the software shader.
type Material struct {
	Color     colorful.Color
	Metalness float32
	Roughness float32
	Opacity   float32
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// Smooth averages normals of coincident vertices.
	Smooth bool
	// ReverseWinding reverses triangle winding order (for negative scale nodes).
	ReverseWinding bool
}

// DefaultMaterial is applied to loaded meshes that carry no material.
func DefaultMaterial() Material {
	return Material{
		Color:     colorful.Color{R: 0.85, G: 0.85, B: 0.88},
		Metalness: 0,
		Roughness: 1,
		Opacity:   1,
	}
}
