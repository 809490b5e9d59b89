package host

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/assets"
	"github.com/Faultbox/hero3d/internal/clock"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
	"github.com/Faultbox/hero3d/internal/engine/motion"
	"github.com/Faultbox/hero3d/internal/hero"
	"github.com/Faultbox/hero3d/internal/logger"
	"github.com/Faultbox/hero3d/internal/noise"
)

// FrameInterval paces hosts that have no vsync of their own.
const FrameInterval = time.Second / 60

// Session is a mounted, started controller plus its collaborators.
type Session struct {
	Loop       *eventloop.Loop
	Box        *Box
	Controller *hero.Controller
	Ticker     *clock.Ticker
}

// Start mounts a controller into box and begins loading. onClock receives
// the clock readout when the clock is enabled; it may be nil.
func Start(ctx context.Context, cfg *config.Config, loop *eventloop.Loop, box *Box, onClock func(string)) (*Session, error) {
	reduced := motion.DetectReducedMotion(cfg.Display.ReducedMotion, os.Getenv)
	opts, err := hero.FromConfig(cfg, reduced)
	if err != nil {
		return nil, fmt.Errorf("building controller options: %w", err)
	}
	if cfg.Display.Noise {
		tile := noise.Tile(noise.NewRand(0))
		opts.Backdrop = func(ratio float32) image.Image {
			return noise.Backdrop(tile, ratio)
		}
	}

	ctrl, err := hero.Mount(loop, box, box, assets.NewLoader(nil), opts)
	if err != nil {
		return nil, err
	}

	s := &Session{Loop: loop, Box: box, Controller: ctrl}
	ctrl.Start(ctx)

	if cfg.Display.ShowClock && onClock != nil {
		s.Ticker = clock.NewTicker(loop, clock.LoadZone(cfg.Display.ClockZone), onClock)
		s.Ticker.Start()
	}

	logger.Info("session started",
		zap.String("backend", cfg.Display.Backend),
		zap.Bool("reduced_motion", reduced),
		zap.Strings("models", cfg.Hero.Models),
	)
	return s, nil
}

// Tick runs queued callbacks and due timers, then one frame.
func (s *Session) Tick() error {
	s.Loop.Pump()
	return s.Loop.Frame()
}

// WaitReady pumps posted work until the controller leaves Loading.
func (s *Session) WaitReady(ctx context.Context) error {
	for s.Controller.Phase() == hero.Loading {
		select {
		case <-s.Loop.Wake():
			s.Loop.Pump()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Idle returns how long a host with nothing to present may sleep: one
// frame interval, or less when a timer falls due sooner.
func (s *Session) Idle() time.Duration {
	wait := FrameInterval
	if due, ok := s.Loop.NextDue(); ok {
		wait = min(wait, max(0, due.Sub(s.Loop.Now())))
	}
	return wait
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	if s.Ticker != nil {
		s.Ticker.Stop()
	}
	s.Controller.Dispose()
	s.Loop.Close()
}
