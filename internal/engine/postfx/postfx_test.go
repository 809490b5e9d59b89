package postfx

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBloomDarkFrameUnchanged(t *testing.T) {
	b := NewBloom(1.2, 0.4, 0.6, white)
	b.SetSize(32, 32)

	src := solid(32, 32, color.NRGBA{A: 255})
	out, err := b.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out.NRGBAAt(16, 16); got != (color.NRGBA{A: 255}) {
		t.Errorf("expected black, got %v", got)
	}
}

func TestBloomSpreadsAroundBrightArea(t *testing.T) {
	b := NewBloom(1.2, 0.4, 0.6, white)
	b.SetSize(64, 64)

	src := solid(64, 64, color.NRGBA{A: 255})
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}

	out, err := b.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// Just outside the bright square the glow must show.
	if got := out.NRGBAAt(38, 32); got.R == 0 {
		t.Errorf("expected glow next to bright area, got %v", got)
	}
	// Far corner stays dark.
	if got := out.NRGBAAt(0, 0); got.R > 8 {
		t.Errorf("expected dark corner, got %v", got)
	}
}

func TestBloomStrengthScalesGlow(t *testing.T) {
	src := solid(64, 64, color.NRGBA{A: 255})
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}

	weak := NewBloom(0.35, 0.4, 0.6, white)
	weak.SetSize(64, 64)
	strong := NewBloom(1.2, 0.4, 0.6, white)
	strong.SetSize(64, 64)

	wOut, _ := weak.Apply(src)
	sOut, _ := strong.Apply(src)
	if wOut.NRGBAAt(38, 32).R >= sOut.NRGBAAt(38, 32).R {
		t.Errorf("expected stronger glow for higher strength: %v vs %v",
			wOut.NRGBAAt(38, 32), sOut.NRGBAAt(38, 32))
	}
}

func TestBloomZeroStrengthPassesThrough(t *testing.T) {
	b := NewBloom(0, 0.4, 0.6, white)
	b.SetSize(8, 8)
	src := solid(8, 8, color.NRGBA{255, 255, 255, 255})

	out, err := b.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != src {
		t.Error("expected source image to be returned unchanged")
	}
}

func TestBloomSizeMismatch(t *testing.T) {
	b := NewBloom(1, 0.4, 0.6, white)
	b.SetSize(8, 8)

	if _, err := b.Apply(solid(4, 4, color.NRGBA{})); err == nil {
		t.Error("expected error for mismatched frame")
	}
}

type recordingStage struct {
	w, h int
	err  error
	runs int
}

func (s *recordingStage) SetSize(w, h int) { s.w, s.h = w, h }

func (s *recordingStage) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	s.runs++
	return src, s.err
}

func TestComposerPropagatesSize(t *testing.T) {
	a, b := &recordingStage{}, &recordingStage{}
	c := NewComposer(a, b)
	c.SetSize(320, 200)

	for i, s := range []*recordingStage{a, b} {
		if s.w != 320 || s.h != 200 {
			t.Errorf("stage %d: expected 320x200, got %dx%d", i, s.w, s.h)
		}
	}
}

func TestComposerStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recordingStage{err: boom}, &recordingStage{}
	c := NewComposer(a, b)

	_, err := c.Render(solid(2, 2, color.NRGBA{}))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
	if b.runs != 0 {
		t.Errorf("expected later stage skipped, ran %d times", b.runs)
	}
}
