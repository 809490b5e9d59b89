package model

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/hero3d/pkg/math"
)

const eps = 1e-4

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < eps
}

// boxMesh spans exactly min..max with a single triangle.
func boxMesh(min, max [3]float32) *Mesh {
	return BuildMesh([][3]float32{
		min,
		max,
		{max[0], min[1], min[2]},
	}, nil, BuildOptions{})
}

func TestFitLargestDimensionAndCenter(t *testing.T) {
	tests := []struct {
		name     string
		min, max [3]float32
		target   float32
	}{
		{"unit cube offset", [3]float32{2, 2, 2}, [3]float32{3, 3, 3}, 1.8},
		{"tall", [3]float32{-0.1, -5, 0}, [3]float32{0.1, 15, 0.3}, 1.8},
		{"wide negative", [3]float32{-40, 1, -2}, [3]float32{-10, 3, 2}, 0.5},
		{"tiny", [3]float32{0.001, 0.001, 0.001}, [3]float32{0.002, 0.004, 0.003}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("box", boxMesh(tt.min, tt.max), DefaultMaterial())
			Fit(m, tt.target)

			world := m.WorldBounds()
			size := world.Size()
			if !near(size.MaxComponent(), tt.target) {
				t.Errorf("expected max dimension %f, got %f", tt.target, size.MaxComponent())
			}
			c := world.Center()
			if !near(c.X, 0) || !near(c.Y, 0) || !near(c.Z, 0) {
				t.Errorf("expected center at origin, got %+v", c)
			}
		})
	}
}

func TestFitDegenerate(t *testing.T) {
	t.Run("no geometry", func(t *testing.T) {
		m := New("empty", nil, DefaultMaterial())
		Fit(m, 1.8)
		if m.Scale != 1.8 {
			t.Errorf("expected scale 1.8, got %f", m.Scale)
		}
		if m.Position != (math.Vec3{}) {
			t.Errorf("expected position unchanged, got %+v", m.Position)
		}
	})

	t.Run("zero extent", func(t *testing.T) {
		p := math.Vec3{X: 1, Y: 2, Z: 3}
		m := New("point", &Mesh{Bounds: math.Box3{Min: p, Max: p}}, DefaultMaterial())
		Fit(m, 2)
		if m.Scale != 2 {
			t.Errorf("expected scale 2, got %f", m.Scale)
		}
		want := p.Scale(-2)
		if m.Position != want {
			t.Errorf("expected position %+v, got %+v", want, m.Position)
		}
	})
}

func TestLayoutSideBySide(t *testing.T) {
	a := NewPlaceholder()
	b := NewPlaceholder()
	Layout([]*Model{a, b}, 1.8, 0.6)

	if !near(a.Position.X, -1.2) || !near(b.Position.X, 1.2) {
		t.Errorf("expected x offsets -1.2/1.2, got %f/%f", a.Position.X, b.Position.X)
	}

	single := NewPlaceholder()
	Layout([]*Model{single}, 1.8, 0.6)
	if !near(single.Position.X, 0) {
		t.Errorf("expected single model centered, got x=%f", single.Position.X)
	}
}

func TestMatrixOrder(t *testing.T) {
	m := New("box", boxMesh([3]float32{0, 0, 0}, [3]float32{1, 1, 1}), DefaultMaterial())
	m.Scale = 2
	m.Position = math.Vec3{X: 10}
	m.Rotation = gomath.Pi / 2

	// Scale first, then rotate about Y, then translate.
	got := m.Matrix().TransformVec3(math.Vec3{X: 1})
	if !near(got.X, 10) || !near(got.Y, 0) || !near(got.Z, -2) {
		t.Errorf("expected (10,0,-2), got %+v", got)
	}
}
