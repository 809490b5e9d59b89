package config

import (
	"flag"
	"strings"
)

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging and bounds overlay")
	flagBackend       = flag.String("backend", "", "Host backend: sdl, ebiten, term, headless")
	flagModel         = flag.String("model", "", "Comma separated model URLs or paths")
	flagReducedMotion = flag.String("reduced-motion", "", "Reduced motion: auto, on, off")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagSnapshot      = flag.String("snapshot", "", "Write the last frame to this PNG")
	flagFrames        = flag.Int("frames", 0, "Frames to render with the headless backend")
	flagWriteConfig   = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowBounds = true
	}
	if *flagBackend != "" {
		cfg.Display.Backend = *flagBackend
	}
	if *flagModel != "" {
		var models []string
		for _, m := range strings.Split(*flagModel, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		cfg.Hero.Models = models
	}
	if *flagReducedMotion != "" {
		cfg.Display.ReducedMotion = *flagReducedMotion
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagSnapshot != "" {
		cfg.Debug.Snapshot = *flagSnapshot
	}
	if *flagFrames > 0 {
		cfg.Debug.Frames = *flagFrames
	}
}
