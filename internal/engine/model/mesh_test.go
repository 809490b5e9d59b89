package model

import (
	"testing"
)

func TestBuildMeshSkipsDegenerate(t *testing.T) {
	positions := [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, // colinear
	}
	mesh := BuildMesh(positions, nil, BuildOptions{})
	if mesh == nil {
		t.Fatal("expected mesh")
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", mesh.TriangleCount())
	}
	n := mesh.Vertices[0].Normal
	if n != [3]float32{0, 0, 1} {
		t.Errorf("expected +Z normal, got %v", n)
	}
}

func TestBuildMeshIndexed(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint32{0, 1, 2, 0, 2, 3, 0, 2, 9} // last triangle out of range

	mesh := BuildMesh(positions, indices, BuildOptions{ReverseWinding: true})
	if mesh.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.Vertices[0].Normal[2] != -1 {
		t.Errorf("expected reversed winding to face -Z, got %v", mesh.Vertices[0].Normal)
	}
	if mesh.Bounds.Max.X != 1 || mesh.Bounds.Max.Y != 1 || mesh.Bounds.Min.X != 0 {
		t.Errorf("unexpected bounds %+v", mesh.Bounds)
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	if BuildMesh(nil, nil, BuildOptions{}) != nil {
		t.Error("expected nil mesh for no positions")
	}
}

func TestMerge(t *testing.T) {
	a := BuildMesh([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil, BuildOptions{})
	b := BuildMesh([][3]float32{{5, 5, 5}, {6, 5, 5}, {5, 6, 5}}, nil, BuildOptions{})

	m := Merge(a, nil, b)
	if m.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.TriangleCount())
	}
	_, _, c := m.Triangle(1)
	if c.X != 5 || c.Y != 6 {
		t.Errorf("expected second triangle to be offset, got %+v", c)
	}
	if m.Bounds.Min.X != 0 || m.Bounds.Max.X != 6 {
		t.Errorf("unexpected merged bounds %+v", m.Bounds)
	}
	if Merge(nil, nil) != nil {
		t.Error("expected nil merge of nothing")
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(vertices)

	if vertices[0].Normal != vertices[1].Normal {
		t.Errorf("expected shared normals, got %v and %v", vertices[0].Normal, vertices[1].Normal)
	}
	if vertices[2].Normal != [3]float32{0, 0, 1} {
		t.Errorf("expected lone vertex untouched, got %v", vertices[2].Normal)
	}
}

func TestPlaceholder(t *testing.T) {
	a := NewPlaceholder()
	b := NewPlaceholder()

	if !a.Placeholder || a.Name != PlaceholderName {
		t.Error("expected placeholder flag and name")
	}
	if a.Mesh.TriangleCount() != 80 {
		t.Errorf("expected 80 triangles, got %d", a.Mesh.TriangleCount())
	}
	if a.Mesh.TriangleCount() != b.Mesh.TriangleCount() || a.Mesh.Vertices[7] != b.Mesh.Vertices[7] {
		t.Error("expected identical placeholder geometry")
	}

	size := a.LocalBounds().Size()
	if !near(size.X, 2) || !near(size.Y, 2) || !near(size.Z, 2) {
		t.Errorf("expected 2x2x2 bounds, got %+v", size)
	}

	for _, v := range a.Mesh.Vertices {
		p := v.Position
		r := length(p)
		if !near(r, 1) {
			t.Fatalf("expected vertex on unit sphere, got radius %f", r)
		}
	}

	mat := a.Material
	if !mat.Transparent() || mat.Opacity != 0.75 {
		t.Errorf("expected translucent material, got opacity %f", mat.Opacity)
	}
	if mat.Color.Hex() != "#8b008b" {
		t.Errorf("expected #8b008b, got %s", mat.Color.Hex())
	}
}
