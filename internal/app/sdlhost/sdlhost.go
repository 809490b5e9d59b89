// Package sdlhost shows the hero scene in an SDL2 window through OpenGL.
package sdlhost

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/app/host"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/debug"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
	"github.com/Faultbox/hero3d/internal/engine/input"
	"github.com/Faultbox/hero3d/internal/engine/present"
	"github.com/Faultbox/hero3d/internal/engine/window"
	"github.com/Faultbox/hero3d/internal/logger"
)

const title = "hero3d"

// glSurface uploads each frame and swaps the window buffers.
type glSurface struct {
	presenter *present.GL
	win       *window.Window
	last      *image.NRGBA
	presented bool
}

func (s *glSurface) Present(img *image.NRGBA) error {
	if err := s.presenter.Present(img); err != nil {
		return err
	}
	s.win.SwapBuffers()
	s.last = img
	s.presented = true
	return nil
}

// Run opens the window and drives the scene until the window closes,
// Escape is pressed, ctx is cancelled or a frame fails.
func Run(ctx context.Context, cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:  title,
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		VSync:  cfg.Display.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	bg, err := colorful.Hex(cfg.Display.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	presenter, err := present.NewGL(float32(bg.R), float32(bg.G), float32(bg.B))
	if err != nil {
		return fmt.Errorf("failed to create presenter: %w", err)
	}
	defer presenter.Close()
	presenter.SetViewport(win.DrawableSize())

	surf := &glSurface{presenter: presenter, win: win}
	w, h := win.GetSize()
	box := host.NewBox(float32(w), float32(h), pixelRatio(cfg, win), surf)

	loop := eventloop.New(nil)
	sess, err := host.Start(ctx, cfg, loop, box, func(now string) {
		win.SetTitle(title + " - " + now)
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	in := input.New()
	shots := debug.NewScreenshotCapture("screenshots", title)
	ctrl := sess.Controller

	for {
		if ctx.Err() != nil {
			return nil
		}
		if in.Update() {
			return nil
		}

		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				presenter.SetViewport(win.DrawableSize())
				lw, lh := win.GetSize()
				box.Resize(float32(lw), float32(lh), pixelRatio(cfg, win))
			case input.EventMouseMove:
				ctrl.PointerMove(ev.MouseX, ev.MouseY)
			case input.EventMouseLeave:
				ctrl.PointerLeave()
			case input.EventMouseDown:
				ctrl.PointerMove(ev.MouseX, ev.MouseY)
				ctrl.PointerDown()
			case input.EventFocusGained:
				if sess.Ticker != nil {
					sess.Ticker.Refresh()
				}
			case input.EventKeyDown:
				switch ev.Key {
				case sdl.SCANCODE_ESCAPE:
					return nil
				case sdl.SCANCODE_F12:
					if surf.last == nil {
						continue
					}
					path, err := shots.CaptureFromImage(surf.last)
					if err != nil {
						logger.Warn("screenshot failed", zap.Error(err))
						continue
					}
					logger.Info("screenshot saved", zap.String("path", path))
				}
			}
		}

		surf.presented = false
		if err := sess.Tick(); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		// Swaps block on vsync; without a swap the loop paces itself.
		if !surf.presented || !cfg.Display.VSync {
			sdl.Delay(uint32(sess.Idle() / time.Millisecond))
		}
	}
}

func pixelRatio(cfg *config.Config, win *window.Window) float32 {
	if cfg.Display.PixelRatio > 0 {
		return cfg.Display.PixelRatio
	}
	return win.PixelRatio()
}
