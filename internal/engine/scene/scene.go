// Package scene holds the hero scene root: its models, lights and backdrop.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/engine/lighting"
	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/internal/logger"
)

// Scene owns all renderable models and the light rig of one controller.
type Scene struct {
	Lights     lighting.Rig
	Background colorful.Color
	// BackgroundAlpha is 0 for a surface that shows through to the host.
	BackgroundAlpha float64

	models   []*model.Model
	disposed bool
	log      *zap.Logger
}

// New creates an empty scene with the default light rig.
func New(background colorful.Color) *Scene {
	return &Scene{
		Lights:          lighting.DefaultRig(),
		Background:      background,
		BackgroundAlpha: 1,
		log:             logger.Named("scene"),
	}
}

// Add attaches a model. Adding to a disposed scene is ignored.
func (s *Scene) Add(m *model.Model) {
	if s.disposed || m == nil {
		return
	}
	s.models = append(s.models, m)
	s.log.Debug("model attached",
		zap.String("name", m.Name),
		zap.Bool("placeholder", m.Placeholder),
		zap.Int("triangles", m.Mesh.TriangleCount()))
}

// Models returns the attached models in insertion order.
func (s *Scene) Models() []*model.Model {
	return s.models
}

// Dispose detaches every model. The scene cannot be reused.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.models = nil
	s.disposed = true
	s.log.Debug("scene disposed")
}
