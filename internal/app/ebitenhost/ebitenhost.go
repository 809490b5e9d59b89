// Package ebitenhost shows the hero scene in an ebiten window.
package ebitenhost

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Faultbox/hero3d/internal/app/host"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
)

const title = "hero3d"

// frameSurface hands presented frames to Draw.
type frameSurface struct {
	pending *image.NRGBA
}

func (s *frameSurface) Present(img *image.NRGBA) error {
	s.pending = img
	return nil
}

type game struct {
	ctx  context.Context
	cfg  *config.Config
	sess *host.Session
	surf *frameSurface

	frame   *ebiten.Image
	inside  bool
	focused bool

	// Layout may run outside Update; it only records the outside size.
	mu       sync.Mutex
	outsideW int
	outsideH int
	scale    float64
}

// Run opens the window and blocks until it closes, Escape is pressed,
// ctx is cancelled or a frame fails.
func Run(ctx context.Context, cfg *config.Config) error {
	scale := deviceScale(cfg)
	surf := &frameSurface{}
	box := host.NewBox(float32(cfg.Display.Width), float32(cfg.Display.Height), float32(scale), surf)

	loop := eventloop.New(nil)
	sess, err := host.Start(ctx, cfg, loop, box, func(now string) {
		ebiten.SetWindowTitle(title + " - " + now)
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	g := &game{
		ctx:      ctx,
		cfg:      cfg,
		sess:     sess,
		surf:     surf,
		outsideW: cfg.Display.Width,
		outsideH: cfg.Display.Height,
		scale:    scale,
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Display.VSync)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func deviceScale(cfg *config.Config) float64 {
	if cfg.Display.PixelRatio > 0 {
		return float64(cfg.Display.PixelRatio)
	}
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.mu.Lock()
	w, h, scale := g.outsideW, g.outsideH, g.scale
	g.mu.Unlock()
	g.sess.Box.Resize(float32(w), float32(h), float32(scale))

	ctrl := g.sess.Controller
	cx, cy := ebiten.CursorPosition()
	x, y := float32(float64(cx)/scale), float32(float64(cy)/scale)
	inside := x >= 0 && y >= 0 && x < float32(w) && y < float32(h)
	if inside {
		ctrl.PointerMove(x, y)
	} else if g.inside {
		ctrl.PointerLeave()
	}
	g.inside = inside

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ctrl.PointerDown()
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		ctrl.PointerMove(float32(float64(tx)/scale), float32(float64(ty)/scale))
		ctrl.PointerDown()
	}

	focused := ebiten.IsFocused()
	if focused && !g.focused && g.sess.Ticker != nil {
		g.sess.Ticker.Refresh()
	}
	g.focused = focused

	if err := g.sess.Tick(); err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	return nil
}

// Draw uploads the latest frame. Frames are opaque, so their straight
// alpha matches ebiten's premultiplied pixels.
func (g *game) Draw(screen *ebiten.Image) {
	img := g.surf.pending
	if img == nil {
		return
	}
	b := img.Bounds()
	if g.frame == nil || g.frame.Bounds().Dx() != b.Dx() || g.frame.Bounds().Dy() != b.Dy() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(img.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.frame, op)
}

// Layout renders at device resolution.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale(g.cfg)

	g.mu.Lock()
	g.outsideW, g.outsideH, g.scale = outsideWidth, outsideHeight, scale
	g.mu.Unlock()

	return max(1, int(float64(outsideWidth)*scale)), max(1, int(float64(outsideHeight)*scale))
}
