package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hero3d/internal/engine/camera"
	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/internal/engine/scene"
)

func testScene(models ...*model.Model) (*scene.Scene, *camera.Perspective) {
	s := scene.New(colorful.Color{R: 0, G: 0, B: 0})
	for _, m := range models {
		s.Add(m)
	}
	cam := camera.NewPerspective(35, 0.1, 100, 6)
	return s, cam
}

func TestRenderWithoutSurface(t *testing.T) {
	r := NewSoftware(Options{})
	s, cam := testScene()

	if _, err := r.Render(s, cam); !errors.Is(err, ErrSurfaceLost) {
		t.Errorf("expected ErrSurfaceLost, got %v", err)
	}
}

func TestSetSize(t *testing.T) {
	r := NewSoftware(Options{})
	r.SetSize(64, 48)
	if w, h := r.Size(); w != 64 || h != 48 {
		t.Errorf("expected 64x48, got %dx%d", w, h)
	}

	r.SetSize(0, -3)
	if w, h := r.Size(); w != 1 || h != 1 {
		t.Errorf("expected clamp to 1x1, got %dx%d", w, h)
	}

	r.Release()
	s, cam := testScene()
	if _, err := r.Render(s, cam); !errors.Is(err, ErrSurfaceLost) {
		t.Errorf("expected ErrSurfaceLost after Release, got %v", err)
	}
}

func TestRenderEmptySceneIsBackground(t *testing.T) {
	r := NewSoftware(Options{})
	r.SetSize(32, 32)
	s, cam := testScene()
	s.Background = colorful.Color{R: 1, G: 0, B: 0}

	img, err := r.Render(s, cam)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := img.NRGBAAt(16, 16)
	if got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("expected red background, got %v", got)
	}
}

func TestRenderPlaceholderCoversCenter(t *testing.T) {
	r := NewSoftware(Options{})
	r.SetSize(64, 64)

	m := model.NewPlaceholder()
	model.Fit(m, 1.8)
	s, cam := testScene(m)

	img, err := r.Render(s, cam)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	center := img.NRGBAAt(32, 32)
	if center.R == 0 && center.G == 0 && center.B == 0 {
		t.Errorf("expected lit surface at center, got %v", center)
	}
	corner := img.NRGBAAt(0, 0)
	if corner != (color.NRGBA{A: 255}) {
		t.Errorf("expected untouched background at corner, got %v", corner)
	}
	// Magenta tint dominates green on the placeholder.
	if center.G >= center.R {
		t.Errorf("expected magenta-ish center, got %v", center)
	}
}

func TestRenderBackdropTiles(t *testing.T) {
	tileImg := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range tileImg.Pix {
		tileImg.Pix[i] = 255
	}
	r := NewSoftware(Options{Backdrop: tileImg})
	r.SetSize(10, 10)
	s, cam := testScene()

	img, err := r.Render(s, cam)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {5, 5}, {9, 9}} {
		if got := img.NRGBAAt(p.X, p.Y); got != (color.NRGBA{255, 255, 255, 255}) {
			t.Errorf("expected white backdrop at %v, got %v", p, got)
		}
	}
}

func TestRenderBounds(t *testing.T) {
	r := NewSoftware(Options{ShowBounds: true})
	r.SetSize(64, 64)

	m := model.NewPlaceholder()
	model.Fit(m, 1.8)
	s, cam := testScene(m)

	if _, err := r.Render(s, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.meshes) != 1 {
		t.Errorf("expected 1 cached mesh, got %d", len(r.meshes))
	}
}
