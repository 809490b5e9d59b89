// Package app picks a host backend for the configured display.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/app/ebitenhost"
	"github.com/Faultbox/hero3d/internal/app/headless"
	"github.com/Faultbox/hero3d/internal/app/sdlhost"
	"github.com/Faultbox/hero3d/internal/app/termhost"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/hero"
	"github.com/Faultbox/hero3d/internal/logger"
)

// Run shows the scene on cfg.Display.Backend until the host exits.
// A missing anchor is not an error: there is nothing to mount.
func Run(ctx context.Context, cfg *config.Config) error {
	var err error
	switch cfg.Display.Backend {
	case "sdl":
		err = sdlhost.Run(ctx, cfg)
	case "ebiten":
		err = ebitenhost.Run(ctx, cfg)
	case "term":
		err = termhost.Run(ctx, cfg)
	case "headless":
		_, err = headless.Run(ctx, cfg)
	default:
		return fmt.Errorf("unknown backend %q", cfg.Display.Backend)
	}

	if errors.Is(err, hero.ErrMissingAnchor) {
		logger.Warn("no anchor to mount into", zap.String("backend", cfg.Display.Backend))
		return nil
	}
	return err
}
