package termhost

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLogicalSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       float32
	}{
		{80, 24, 80, 48},
		{0, 0, 1, 1},
		{1, 1, 1, 2},
	}
	for _, tt := range tests {
		w, h := logicalSize(tt.cols, tt.rows)
		if w != tt.w || h != tt.h {
			t.Errorf("logicalSize(%d, %d): expected %vx%v, got %vx%v", tt.cols, tt.rows, tt.w, tt.h, w, h)
		}
	}
}

func TestDrawCellsSplitsRows(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(2, 1)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: 255})
	}
	drawCells(screen, img, 2, 1)

	r, _, style, _ := screen.GetContent(1, 0)
	if r != upperHalf {
		t.Errorf("expected half block, got %q", r)
	}
	want := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(255, 0, 0)).
		Background(tcell.NewRGBColor(0, 0, 255))
	if style != want {
		t.Errorf("expected red over blue, got %v", style)
	}
}

func TestPointerAt(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy int
		x, y   float32
		ok     bool
	}{
		{"interior", 10, 5, 10.5, 11, true},
		{"left edge", 0, 5, 0, 0, false},
		{"top edge", 10, 0, 0, 0, false},
		{"right edge", 79, 5, 0, 0, false},
		{"bottom edge", 10, 23, 0, 0, false},
		{"beyond grid", 120, 40, 0, 0, false},
		{"negative", -1, -1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := pointerAt(tt.cx, tt.cy, 80, 24)
			if ok != tt.ok || x != tt.x || y != tt.y {
				t.Errorf("expected (%v,%v,%v), got (%v,%v,%v)", tt.x, tt.y, tt.ok, x, y, ok)
			}
		})
	}
}
