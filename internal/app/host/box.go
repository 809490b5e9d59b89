// Package host holds the pieces every display backend shares: the content
// box that stands in for the page container and the controller session.
package host

import (
	"sort"

	"github.com/Faultbox/hero3d/internal/engine/picking"
	"github.com/Faultbox/hero3d/internal/hero"
)

// Box is a window-sized container whose tracked region is the whole box.
// It must only be used from the loop thread.
type Box struct {
	width   float32
	height  float32
	dpr     float32
	surface hero.Surface

	listeners map[int]func(w, h, dpr float32)
	nextID    int
}

// NewBox creates a box of the given logical size and pixel ratio.
func NewBox(width, height, dpr float32, surface hero.Surface) *Box {
	if dpr <= 0 {
		dpr = 1
	}
	return &Box{
		width:     width,
		height:    height,
		dpr:       dpr,
		surface:   surface,
		listeners: make(map[int]func(w, h, dpr float32)),
	}
}

// Size returns the logical content size.
func (b *Box) Size() (float32, float32) {
	return b.width, b.height
}

// PixelRatio returns device pixels per logical pixel.
func (b *Box) PixelRatio() float32 {
	return b.dpr
}

// Surface returns the drawable frames are presented to.
func (b *Box) Surface() hero.Surface {
	return b.surface
}

// Bounds returns the tracked region, which is the whole box at the origin.
func (b *Box) Bounds() picking.Rect {
	return picking.Rect{Width: b.width, Height: b.height}
}

// OnResize registers fn for size changes and returns its unsubscribe func.
func (b *Box) OnResize(fn func(w, h, dpr float32)) func() {
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() {
		delete(b.listeners, id)
	}
}

// Listeners returns the number of active resize subscriptions.
func (b *Box) Listeners() int {
	return len(b.listeners)
}

// Resize updates the box and notifies subscribers in subscription order.
// Unchanged sizes are not reported.
func (b *Box) Resize(width, height, dpr float32) {
	if dpr <= 0 {
		dpr = b.dpr
	}
	if width == b.width && height == b.height && dpr == b.dpr {
		return
	}
	b.width, b.height, b.dpr = width, height, dpr

	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := b.listeners[id]; ok {
			fn(width, height, dpr)
		}
	}
}
