package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/hero3d/pkg/math"
)

func TestBoxEdges(t *testing.T) {
	if edges := BoxEdges(math.EmptyBox3(), DefaultBoxPadding); edges != nil {
		t.Errorf("expected no edges for empty box, got %d", len(edges))
	}

	b := math.Box3{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	edges := BoxEdges(b, 0.5)
	if len(edges) != BoxEdgeCount {
		t.Fatalf("expected %d edges, got %d", BoxEdgeCount, len(edges))
	}
	for i, e := range edges {
		for _, p := range e {
			if p.X != -1.5 && p.X != 1.5 {
				t.Errorf("edge %d: expected padded x, got %v", i, p.X)
			}
		}
		if d := e[1].Sub(e[0]).Length(); d != 3 {
			t.Errorf("edge %d: expected length 3, got %v", i, d)
		}
	}
}

func TestScreenshotCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "hero3d")

	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, A: 255})

	path, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "hero3d_") || filepath.Dir(path) != dir {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
		t.Errorf("expected 4x3, got %v", got.Bounds())
	}
	if r, _, _, _ := got.At(1, 1).RGBA(); r>>8 != 200 {
		t.Errorf("expected red 200, got %d", r>>8)
	}
}
