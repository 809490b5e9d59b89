package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/hero3d/pkg/math"
)

func TestPerspectiveProjectsTargetToCenter(t *testing.T) {
	c := NewPerspective(35, 0.1, 100, 6)
	c.SetAspect(16.0 / 9.0)

	clip := c.ViewProjection().MulVec4(math.Vec4{0, 0, 0, 1})
	if clip[3] <= 0 {
		t.Fatalf("expected target in front of camera, w=%f", clip[3])
	}
	x, y := clip[0]/clip[3], clip[1]/clip[3]
	if gomath.Abs(float64(x)) > 1e-5 || gomath.Abs(float64(y)) > 1e-5 {
		t.Errorf("expected target at ndc origin, got (%f,%f)", x, y)
	}
}

func TestPerspectiveFOVEdge(t *testing.T) {
	c := NewPerspective(35, 0.1, 100, 6)

	// A point at the top edge of the frustum at the target plane.
	halfH := 6 * float32(gomath.Tan(35.0/2*gomath.Pi/180))
	clip := c.ViewProjection().MulVec4(math.Vec4{0, halfH, 0, 1})
	y := clip[1] / clip[3]
	if gomath.Abs(float64(y-1)) > 1e-4 {
		t.Errorf("expected ndc y 1 at frustum edge, got %f", y)
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewPerspective(35, 0.1, 100, 6)
	c.SetAspect(2)
	c.SetAspect(0)
	c.SetAspect(-1)
	if c.Aspect != 2 {
		t.Errorf("expected aspect 2, got %f", c.Aspect)
	}
}

func TestPosition(t *testing.T) {
	c := NewPerspective(35, 0.1, 100, 6)
	if p := c.Position(); p != (math.Vec3{Z: 6}) {
		t.Errorf("expected (0,0,6), got %+v", p)
	}
}
