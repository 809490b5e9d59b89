// Package viewport keeps the camera and every render stage sized to the
// container box.
package viewport

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/logger"
)

// Resizable is a render stage that owns pixel buffers.
type Resizable interface {
	SetSize(width, height int)
}

// AspectSetter receives the container aspect ratio.
type AspectSetter interface {
	SetAspect(aspect float32)
}

// State is the viewport derived from one container box notification.
type State struct {
	Width, Height float32 // Container box, logical pixels
	PixelRatio    float32 // Device pixel ratio after the cap
	PixelWidth    int
	PixelHeight   int
	Aspect        float32
}

// Compute derives a viewport from a container box and device pixel ratio.
// Zero or negative sizes count as 1.
func Compute(width, height, dpr, dprCap float32) State {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if dpr <= 0 {
		dpr = 1
	}
	ratio := dpr
	if dprCap > 0 && ratio > dprCap {
		ratio = dprCap
	}

	return State{
		Width:       width,
		Height:      height,
		PixelRatio:  ratio,
		PixelWidth:  atLeastOne(gomath.Floor(float64(width * ratio))),
		PixelHeight: atLeastOne(gomath.Floor(float64(height * ratio))),
		Aspect:      width / height,
	}
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// Synchronizer applies container resizes to the camera and render stages.
// Sync must run on the event thread so no frame sees a partial update.
type Synchronizer struct {
	dprCap float32
	camera AspectSetter
	stages []Resizable
	state  State
	synced bool
	log    *zap.Logger
}

// NewSynchronizer creates a synchronizer for the given camera and stages.
func NewSynchronizer(dprCap float32, camera AspectSetter, stages ...Resizable) *Synchronizer {
	return &Synchronizer{
		dprCap: dprCap,
		camera: camera,
		stages: stages,
		log:    logger.Named("viewport"),
	}
}

// Sync recomputes the viewport and propagates it to every stage before
// returning.
func (s *Synchronizer) Sync(width, height, dpr float32) State {
	st := Compute(width, height, dpr, s.dprCap)

	if s.camera != nil {
		s.camera.SetAspect(st.Aspect)
	}
	for _, stage := range s.stages {
		stage.SetSize(st.PixelWidth, st.PixelHeight)
	}

	if !s.synced || st != s.state {
		s.log.Debug("viewport resized",
			zap.Float32("width", st.Width),
			zap.Float32("height", st.Height),
			zap.Float32("pixelRatio", st.PixelRatio),
			zap.Int("pixelWidth", st.PixelWidth),
			zap.Int("pixelHeight", st.PixelHeight))
	}
	s.state = st
	s.synced = true
	return st
}

// State returns the last applied viewport and whether any resize happened.
func (s *Synchronizer) State() (State, bool) {
	return s.state, s.synced
}
