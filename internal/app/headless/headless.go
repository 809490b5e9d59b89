// Package headless renders a fixed number of frames off-screen and writes
// the last one as a PNG.
package headless

import (
	"context"
	"errors"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/app/host"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/debug"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
	"github.com/Faultbox/hero3d/internal/logger"
)

// captureSurface keeps a copy of the latest frame.
type captureSurface struct {
	last   *image.NRGBA
	frames int
}

func (s *captureSurface) Present(img *image.NRGBA) error {
	b := img.Bounds()
	if s.last == nil || s.last.Bounds() != b {
		s.last = image.NewNRGBA(b)
	}
	copy(s.last.Pix, img.Pix)
	s.frames++
	return nil
}

// Run renders cfg.Debug.Frames frames on a simulated 60 Hz clock and
// returns the last one. It is written to cfg.Debug.Snapshot when set.
func Run(ctx context.Context, cfg *config.Config) (*image.NRGBA, error) {
	clk := eventloop.NewMockClock(time.Now())
	loop := eventloop.New(clk)

	dpr := cfg.Display.PixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	surf := &captureSurface{}
	box := host.NewBox(float32(cfg.Display.Width), float32(cfg.Display.Height), dpr, surf)

	var readout string
	s, err := host.Start(ctx, cfg, loop, box, func(v string) { readout = v })
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.WaitReady(ctx); err != nil {
		return stopped(surf, err)
	}

	frames := max(1, cfg.Debug.Frames)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return stopped(surf, err)
		}
		clk.Advance(host.FrameInterval)
		if err := s.Tick(); err != nil {
			return nil, err
		}
	}
	if surf.last == nil {
		return nil, errors.New("no frame presented")
	}

	state := s.Controller.Snapshot()
	logger.Info("headless render finished",
		zap.Int("frames", surf.frames),
		zap.Strings("models", state.Models),
		zap.Float32s("rotations", state.Rotations),
		zap.String("clock", readout),
	)

	if path := cfg.Debug.Snapshot; path != "" {
		if err := debug.WritePNG(path, surf.last); err != nil {
			return nil, err
		}
		logger.Info("snapshot written", zap.String("path", path))
	}
	return surf.last, nil
}

// stopped ends an interrupted render. Cancellation is a normal shutdown:
// the last presented frame, if any, is returned without error.
func stopped(surf *captureSurface, err error) (*image.NRGBA, error) {
	if errors.Is(err, context.Canceled) {
		logger.Info("headless render interrupted", zap.Int("frames", surf.frames))
		return surf.last, nil
	}
	return nil, err
}
