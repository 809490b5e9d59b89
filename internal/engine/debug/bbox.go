// Package debug provides debug visualization and capture utilities.
package debug

import (
	"github.com/Faultbox/hero3d/pkg/math"
)

// BoxEdgeCount is the number of edges in a box wireframe.
const BoxEdgeCount = 12

// DefaultBoxPadding expands debug boxes slightly so they do not z-fight the mesh.
const DefaultBoxPadding = 0.01

// BoxEdges returns the 12 edges of b grown by padding on every side.
// An empty box yields no edges.
func BoxEdges(b math.Box3, padding float32) [][2]math.Vec3 {
	if b.IsEmpty() {
		return nil
	}

	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	v := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	return [][2]math.Vec3{
		// Bottom face (4 edges)
		{v(minX, minY, minZ), v(maxX, minY, minZ)},
		{v(maxX, minY, minZ), v(maxX, minY, maxZ)},
		{v(maxX, minY, maxZ), v(minX, minY, maxZ)},
		{v(minX, minY, maxZ), v(minX, minY, minZ)},
		// Top face (4 edges)
		{v(minX, maxY, minZ), v(maxX, maxY, minZ)},
		{v(maxX, maxY, minZ), v(maxX, maxY, maxZ)},
		{v(maxX, maxY, maxZ), v(minX, maxY, maxZ)},
		{v(minX, maxY, maxZ), v(minX, maxY, minZ)},
		// Vertical edges (4 edges)
		{v(minX, minY, minZ), v(minX, maxY, minZ)},
		{v(maxX, minY, minZ), v(maxX, maxY, minZ)},
		{v(maxX, minY, maxZ), v(maxX, maxY, maxZ)},
		{v(minX, minY, maxZ), v(minX, maxY, maxZ)},
	}
}
