// Package postfx applies full-frame post-processing to rendered images.
package postfx

import (
	"fmt"
	"image"
)

// Stage is one post-processing pass. Stages own their buffers and are sized
// in device pixels together with the main surface.
type Stage interface {
	SetSize(width, height int)
	Apply(src *image.NRGBA) (*image.NRGBA, error)
}

// Composer runs a frame through its stages in order.
type Composer struct {
	stages []Stage
}

// NewComposer creates a composer with the given stages.
func NewComposer(stages ...Stage) *Composer {
	return &Composer{stages: stages}
}

// SetSize resizes every stage.
func (c *Composer) SetSize(width, height int) {
	for _, s := range c.stages {
		s.SetSize(width, height)
	}
}

// Render applies all stages to src. With no stages src is returned as is.
func (c *Composer) Render(src *image.NRGBA) (*image.NRGBA, error) {
	out := src
	for i, s := range c.stages {
		var err error
		out, err = s.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return out, nil
}
