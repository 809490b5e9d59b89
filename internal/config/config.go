// Package config handles hero scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Config holds all hero scene settings.
type Config struct {
	Hero    HeroConfig    `yaml:"hero"`
	Camera  CameraConfig  `yaml:"camera"`
	Motion  MotionConfig  `yaml:"motion"`
	Glow    GlowConfig    `yaml:"glow"`
	Display DisplayConfig `yaml:"display"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// HeroConfig holds the displayed models and their framing.
type HeroConfig struct {
	Models     []string `yaml:"models"`      // Asset URLs or paths, at most two
	TargetSize float32  `yaml:"target_size"` // Largest model dimension after fitting
	Gap        float32  `yaml:"gap"`         // Spacing between side-by-side models
}

// CameraConfig holds the perspective camera settings.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // Vertical, degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

// MotionConfig holds rotation speed easing settings.
type MotionConfig struct {
	BaseSpeed   float32       `yaml:"base_speed"`  // Radians per frame
	HoverSpeed  float32       `yaml:"hover_speed"` // Radians per frame
	Damping     float32       `yaml:"damping"`
	TapOverride time.Duration `yaml:"tap_override"`
	Timestep    string        `yaml:"timestep"` // frame, wallclock
}

// GlowConfig holds bloom post-processing settings.
type GlowConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Base      float32 `yaml:"base"`
	Hover     float32 `yaml:"hover"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
	Tint      string  `yaml:"tint"` // Hex color
}

// DisplayConfig holds host surface settings.
type DisplayConfig struct {
	Backend       string  `yaml:"backend"` // sdl, ebiten, term, headless
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	DPRCap        float32 `yaml:"dpr_cap"`
	PixelRatio    float32 `yaml:"pixel_ratio"`    // 0 uses the host's ratio
	ReducedMotion string  `yaml:"reduced_motion"` // auto, on, off
	VSync         bool    `yaml:"vsync"`
	Background    string  `yaml:"background"` // Hex color
	Noise         bool    `yaml:"noise"`
	ShowClock     bool    `yaml:"show_clock"`
	ClockZone     string  `yaml:"clock_zone"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	ShowBounds bool   `yaml:"show_bounds"`
	Snapshot   string `yaml:"snapshot"` // PNG path written on exit
	Frames     int    `yaml:"frames"`   // Frames rendered by the headless backend
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MaxModels is the largest number of side-by-side models.
const MaxModels = 2

// Default returns a Config with the reference scene values.
func Default() *Config {
	return &Config{
		Hero: HeroConfig{
			Models:     []string{"assets/hero.glb"},
			TargetSize: 1.8,
			Gap:        0.6,
		},
		Camera: CameraConfig{
			FOV:      35,
			Near:     0.1,
			Far:      100,
			Distance: 6,
		},
		Motion: MotionConfig{
			BaseSpeed:   0.005,
			HoverSpeed:  0.018,
			Damping:     0.08,
			TapOverride: 1200 * time.Millisecond,
			Timestep:    "frame",
		},
		Glow: GlowConfig{
			Enabled:   true,
			Base:      0.35,
			Hover:     1.2,
			Radius:    0.4,
			Threshold: 0.6,
			Tint:      "#ffffff",
		},
		Display: DisplayConfig{
			Backend:       "sdl",
			Width:         960,
			Height:        540,
			DPRCap:        1.75,
			ReducedMotion: "auto",
			VSync:         true,
			Background:    "#0b0b10",
			Noise:         true,
			ShowClock:     true,
			ClockZone:     "America/Los_Angeles",
		},
		Debug: DebugConfig{
			Frames: 120,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot drive the scene.
func (c *Config) Validate() error {
	switch {
	case len(c.Hero.Models) == 0:
		return errors.New("hero.models: at least one model is required")
	case len(c.Hero.Models) > MaxModels:
		return fmt.Errorf("hero.models: at most %d models, got %d", MaxModels, len(c.Hero.Models))
	case c.Hero.TargetSize <= 0:
		return fmt.Errorf("hero.target_size: must be positive, got %g", c.Hero.TargetSize)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov: must be in (0,180), got %g", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera: need 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far)
	case c.Motion.Damping <= 0 || c.Motion.Damping >= 1:
		return fmt.Errorf("motion.damping: must be in (0,1), got %g", c.Motion.Damping)
	case c.Motion.TapOverride < 0:
		return errors.New("motion.tap_override: must not be negative")
	case c.Display.DPRCap < 1:
		return fmt.Errorf("display.dpr_cap: must be at least 1, got %g", c.Display.DPRCap)
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("display: size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}

	switch c.Motion.Timestep {
	case "frame", "wallclock":
	default:
		return fmt.Errorf("motion.timestep: unknown mode %q", c.Motion.Timestep)
	}
	switch c.Display.Backend {
	case "sdl", "ebiten", "term", "headless":
	default:
		return fmt.Errorf("display.backend: unknown backend %q", c.Display.Backend)
	}
	switch c.Display.ReducedMotion {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("display.reduced_motion: unknown mode %q", c.Display.ReducedMotion)
	}

	if _, err := colorful.Hex(c.Glow.Tint); err != nil {
		return fmt.Errorf("glow.tint: %w", err)
	}
	if _, err := colorful.Hex(c.Display.Background); err != nil {
		return fmt.Errorf("display.background: %w", err)
	}
	return nil
}
