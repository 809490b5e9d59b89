package hero

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/motion"
)

// Options configures one controller.
type Options struct {
	URLs       []string
	TargetSize float32
	Gap        float32

	FOV      float32
	Near     float32
	Far      float32
	Distance float32

	Motion  motion.Params
	Reduced bool
	DPRCap  float32

	GlowEnabled   bool
	GlowRadius    float64
	GlowThreshold float64
	GlowTint      colorful.Color

	Background      colorful.Color
	BackgroundAlpha float64

	// Backdrop builds the tiled backdrop for an effective pixel ratio.
	// It is called again whenever that ratio changes. Nil draws none.
	Backdrop   func(ratio float32) image.Image
	ShowBounds bool
}

// FromConfig maps validated configuration onto controller options.
// reduced is the resolved reduced-motion preference.
func FromConfig(cfg *config.Config, reduced bool) (Options, error) {
	step, err := motion.ParseTimestep(cfg.Motion.Timestep)
	if err != nil {
		return Options{}, err
	}
	tint, err := colorful.Hex(cfg.Glow.Tint)
	if err != nil {
		return Options{}, fmt.Errorf("glow tint: %w", err)
	}
	bg, err := colorful.Hex(cfg.Display.Background)
	if err != nil {
		return Options{}, fmt.Errorf("background: %w", err)
	}

	return Options{
		URLs:       append([]string(nil), cfg.Hero.Models...),
		TargetSize: cfg.Hero.TargetSize,
		Gap:        cfg.Hero.Gap,
		FOV:        cfg.Camera.FOV,
		Near:       cfg.Camera.Near,
		Far:        cfg.Camera.Far,
		Distance:   cfg.Camera.Distance,
		Motion: motion.Params{
			BaseSpeed:      cfg.Motion.BaseSpeed,
			HoverSpeed:     cfg.Motion.HoverSpeed,
			BaseIntensity:  cfg.Glow.Base,
			HoverIntensity: cfg.Glow.Hover,
			Damping:        cfg.Motion.Damping,
			TapOverride:    cfg.Motion.TapOverride,
			Timestep:       step,
		},
		Reduced:         reduced,
		DPRCap:          cfg.Display.DPRCap,
		GlowEnabled:     cfg.Glow.Enabled,
		GlowRadius:      float64(cfg.Glow.Radius),
		GlowThreshold:   float64(cfg.Glow.Threshold),
		GlowTint:        tint,
		Background:      bg,
		BackgroundAlpha: 1,
		ShowBounds:      cfg.Debug.ShowBounds,
	}, nil
}
