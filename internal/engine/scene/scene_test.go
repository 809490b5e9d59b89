package scene

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hero3d/internal/engine/model"
)

func TestAddAndDispose(t *testing.T) {
	s := New(colorful.Color{})

	s.Add(model.NewPlaceholder())
	s.Add(nil)
	s.Add(model.NewPlaceholder())
	if n := len(s.Models()); n != 2 {
		t.Fatalf("expected 2 models, got %d", n)
	}

	s.Dispose()
	if len(s.Models()) != 0 {
		t.Error("expected empty disposed scene")
	}

	s.Add(model.NewPlaceholder())
	if len(s.Models()) != 0 {
		t.Error("expected add after dispose to be ignored")
	}
	s.Dispose()
}

func TestDefaultLights(t *testing.T) {
	s := New(colorful.Color{})
	if s.Lights.Hemisphere.Intensity != 0.8 {
		t.Errorf("expected hemisphere 0.8, got %f", s.Lights.Hemisphere.Intensity)
	}
	if s.Lights.Directional.Position.X != 2 || s.Lights.Directional.Position.Y != 3 || s.Lights.Directional.Position.Z != 4 {
		t.Errorf("expected key light at (2,3,4), got %+v", s.Lights.Directional.Position)
	}
}
