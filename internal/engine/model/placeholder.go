package model

import (
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
)

// PlaceholderName names models substituted for failed loads.
const PlaceholderName = "placeholder"

// PlaceholderMaterial is the translucent magenta used for substituted models.
func PlaceholderMaterial() Material {
	c, _ := colorful.Hex("#8b008b")
	return Material{
		Color:     c,
		Metalness: 0.1,
		Roughness: 0.4,
		Opacity:   0.75,
	}
}

// NewPlaceholder returns a unit icosphere with one subdivision level.
// Every call builds identical geometry.
func NewPlaceholder() *Model {
	m := New(PlaceholderName, Icosphere(1, 1), PlaceholderMaterial())
	m.Placeholder = true
	return m
}

var (
	icoT = float32((1 + gomath.Sqrt(5)) / 2)

	icoVertices = [][3]float32{
		{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
		{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
		{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
	}

	icoFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosphere builds a sphere by splitting each icosahedron face into four,
// subdivisions times, and projecting onto the radius. Normals point outward.
func Icosphere(radius float32, subdivisions int) *Mesh {
	tris := make([][3][3]float32, 0, len(icoFaces))
	for _, f := range icoFaces {
		tris = append(tris, [3][3]float32{
			unitOrUp(icoVertices[f[0]]),
			unitOrUp(icoVertices[f[1]]),
			unitOrUp(icoVertices[f[2]]),
		})
	}

	for s := 0; s < subdivisions; s++ {
		next := make([][3][3]float32, 0, len(tris)*4)
		for _, t := range tris {
			ab := unitOrUp(midpoint(t[0], t[1]))
			bc := unitOrUp(midpoint(t[1], t[2]))
			ca := unitOrUp(midpoint(t[2], t[0]))
			next = append(next,
				[3][3]float32{t[0], ab, ca},
				[3][3]float32{ab, t[1], bc},
				[3][3]float32{ca, bc, t[2]},
				[3][3]float32{ab, bc, ca},
			)
		}
		tris = next
	}

	positions := make([][3]float32, 0, len(tris)*3)
	for _, t := range tris {
		for _, p := range t {
			positions = append(positions, [3]float32{p[0] * radius, p[1] * radius, p[2] * radius})
		}
	}

	mesh := BuildMesh(positions, nil, BuildOptions{})
	for i := range mesh.Vertices {
		mesh.Vertices[i].Normal = unitOrUp(mesh.Vertices[i].Position)
	}
	return mesh
}

func midpoint(a, b [3]float32) [3]float32 {
	return [3]float32{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2}
}
