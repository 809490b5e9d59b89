// Package termhost shows the hero scene in a terminal using half-block
// cells, two pixels per cell.
package termhost

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/hero3d/internal/app/host"
	"github.com/Faultbox/hero3d/internal/config"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// cellSurface maps frames onto the terminal grid.
type cellSurface struct {
	screen tcell.Screen
	status string
}

func (s *cellSurface) Present(img *image.NRGBA) error {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	drawCells(s.screen, img, cols, rows)

	if s.status != "" {
		style := tcell.StyleDefault.Reverse(true)
		for i, r := range []rune(s.status) {
			if i >= cols {
				break
			}
			s.screen.SetContent(i, 0, r, nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// drawCells samples img at the centre of each half cell.
func drawCells(screen tcell.Screen, img *image.NRGBA, cols, rows int) {
	b := img.Bounds()
	for y := 0; y < rows; y++ {
		top := b.Min.Y + (2*y)*b.Dy()/(2*rows)
		bot := b.Min.Y + (2*y+1)*b.Dy()/(2*rows)
		for x := 0; x < cols; x++ {
			px := b.Min.X + x*b.Dx()/cols
			style := tcell.StyleDefault.
				Foreground(cellColor(img, px, top)).
				Background(cellColor(img, px, bot))
			screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
}

func cellColor(img *image.NRGBA, x, y int) tcell.Color {
	c := img.NRGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// logicalSize is one pixel per column and two per row.
func logicalSize(cols, rows int) (float32, float32) {
	return float32(max(1, cols)), float32(max(1, rows*2))
}

// pointerAt maps a mouse cell to logical pixels. Terminals stop reporting
// motion once the mouse leaves the grid, so the outermost ring of cells
// counts as outside: a pointer on its way out always ends there.
func pointerAt(cx, cy, cols, rows int) (x, y float32, ok bool) {
	if cx <= 0 || cy <= 0 || cx >= cols-1 || cy >= rows-1 {
		return 0, 0, false
	}
	return float32(cx) + 0.5, float32(cy*2) + 1, true
}

// Run takes over the terminal until Escape, Ctrl-C or q is pressed, ctx
// is cancelled or a frame fails. Logging must not write to the tty.
func Run(ctx context.Context, cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	surf := &cellSurface{screen: screen}
	w, h := logicalSize(screen.Size())
	box := host.NewBox(w, h, 1, surf)

	loop := eventloop.New(nil)
	sess, err := host.Start(ctx, cfg, loop, box, func(now string) {
		surf.status = " " + now + " "
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(host.FrameInterval)
	defer ticker.Stop()

	ctrl := sess.Controller
	var pressed bool

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				w, h := logicalSize(screen.Size())
				box.Resize(w, h, 1)
			case *tcell.EventMouse:
				cx, cy := ev.Position()
				cols, rows := screen.Size()
				if x, y, ok := pointerAt(cx, cy, cols, rows); ok {
					ctrl.PointerMove(x, y)
				} else {
					ctrl.PointerLeave()
				}
				down := ev.Buttons()&tcell.Button1 != 0
				if down && !pressed {
					ctrl.PointerDown()
				}
				pressed = down
			case *tcell.EventFocus:
				if !ev.Focused {
					ctrl.PointerLeave()
				} else if sess.Ticker != nil {
					sess.Ticker.Refresh()
				}
			}

		case <-loop.Wake():
			loop.Pump()

		case <-ticker.C:
			if err := sess.Tick(); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
		}
	}
}
