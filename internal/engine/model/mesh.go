package model

import (
	"github.com/Faultbox/hero3d/pkg/math"
)

// BuildMesh creates a flat-indexed mesh from a triangle soup.
// When indices is nil, positions are read as consecutive triangles.
// Degenerate and out-of-range triangles are skipped; nil is returned when
// nothing remains.
func BuildMesh(positions [][3]float32, indices []uint32, opts BuildOptions) *Mesh {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertices := make([]Vertex, 0, len(indices))
	bounds := math.EmptyBox3()

	for i := 0; i+2 < len(indices); i += 3 {
		ids := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		if opts.ReverseWinding {
			ids[0], ids[2] = ids[2], ids[0]
		}

		valid := true
		for _, id := range ids {
			if int(id) >= len(positions) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		v0, v1, v2 := positions[ids[0]], positions[ids[1]], positions[ids[2]]
		n := cross(sub(v1, v0), sub(v2, v0))

		// Degenerate triangle detection
		mag := length(n)
		if mag < 1e-9 {
			continue
		}
		normal := [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}

		for _, p := range [3][3]float32{v0, v1, v2} {
			bounds = bounds.ExtendPoint(math.V3(p))
			vertices = append(vertices, Vertex{Position: p, Normal: normal})
		}
	}

	if len(vertices) == 0 {
		return nil
	}

	if opts.Smooth {
		SmoothNormals(vertices)
	}

	idx := make([]uint32, len(vertices))
	for i := range idx {
		idx[i] = uint32(i)
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  idx,
		Bounds:   bounds,
	}
}

// Merge concatenates meshes into one, skipping nil entries.
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{Bounds: math.EmptyBox3()}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, i := range m.Indices {
			out.Indices = append(out.Indices, base+i)
		}
		out.Bounds = out.Bounds.Union(m.Bounds)
	}
	if len(out.Vertices) == 0 {
		return nil
	}
	return out
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Triangle returns the local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	a = math.V3(m.Vertices[m.Indices[i*3]].Position)
	b = math.V3(m.Vertices[m.Indices[i*3+1]].Position)
	c = math.V3(m.Vertices[m.Indices[i*3+2]].Position)
	return a, b, c
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	// Average normals for vertices at same position
	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum [3]float32
		for _, idx := range idxs {
			sum[0] += vertices[idx].Normal[0]
			sum[1] += vertices[idx].Normal[1]
			sum[2] += vertices[idx].Normal[2]
		}

		avg := unitOrUp(sum)

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
