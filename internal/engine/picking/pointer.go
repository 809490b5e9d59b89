package picking

import (
	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/pkg/math"
)

// Rect is a region in client pixel coordinates.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// Contains reports whether the client point lies inside the rect.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// NDC maps client coordinates to normalized device coordinates relative to r:
// X runs -1..1 left to right and Y runs 1..-1 top to bottom.
func NDC(x, y float32, r Rect) (ndcX, ndcY float32) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	ndcX = (x-r.Left)/w*2 - 1
	ndcY = -((y-r.Top)/h*2 - 1)
	return ndcX, ndcY
}

// Pointer is the last known pointer position in NDC plus whether it is
// inside the tracked region. The zero value is outside.
type Pointer struct {
	X, Y   float32
	Inside bool
}

// Move records a client-space position against the tracked region.
func (p *Pointer) Move(x, y float32, region Rect) {
	p.X, p.Y = NDC(x, y, region)
	p.Inside = region.Contains(x, y)
}

// Leave marks the pointer as outside. The stored coordinates are kept.
func (p *Pointer) Leave() {
	p.Inside = false
}

// Hit reports whether the pointer ray meets the actual triangles of any model.
// A pointer outside the region never hits and no ray is cast.
func Hit(p Pointer, invViewProj math.Mat4, models []*model.Model) bool {
	if !p.Inside {
		return false
	}

	ray := NDCToRay(p.X, p.Y, invViewProj)
	for _, m := range models {
		if _, ok := IntersectModel(ray, m); ok {
			return true
		}
	}
	return false
}
