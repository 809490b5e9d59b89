// Package hero drives the hero scene: loading, fitting, hover and tap easing,
// rendering and teardown for one container.
package hero

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/barkimedes/go-deepcopy"
	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/engine/camera"
	"github.com/Faultbox/hero3d/internal/engine/eventloop"
	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/internal/engine/motion"
	"github.com/Faultbox/hero3d/internal/engine/picking"
	"github.com/Faultbox/hero3d/internal/engine/postfx"
	"github.com/Faultbox/hero3d/internal/engine/renderer"
	"github.com/Faultbox/hero3d/internal/engine/scene"
	"github.com/Faultbox/hero3d/internal/engine/viewport"
	"github.com/Faultbox/hero3d/internal/logger"
)

// ErrMissingAnchor is returned by Mount when the container or tracked region is absent.
var ErrMissingAnchor = errors.New("hero: missing container or tracked region")

// Surface receives finished frames.
type Surface interface {
	Present(img *image.NRGBA) error
}

// Container hosts the drawable and reports its content-box size.
type Container interface {
	// Size returns the content box in logical pixels.
	Size() (width, height float32)
	PixelRatio() float32
	// OnResize subscribes to content-box changes and returns the unsubscribe func.
	OnResize(fn func(width, height, dpr float32)) func()
	Surface() Surface
}

// Region is the element whose box bounds pointer tracking.
type Region interface {
	Bounds() picking.Rect
}

// ModelLoader resolves URLs to models, one per URL, never failing.
type ModelLoader interface {
	LoadAll(ctx context.Context, urls []string) []*model.Model
}

// Phase is the controller lifecycle state.
type Phase int

const (
	Loading Phase = iota
	Ready
	Disposed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Disposed:
		return "disposed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a point-in-time copy of the controller for diagnostics.
type State struct {
	Phase     Phase
	Hovering  bool
	TapActive bool
	Speed     float32
	Intensity float32
	Rotations []float32
	Models    []string
	Viewport  viewport.State
	Frames    uint64
}

// Controller owns one hero scene. Every method except Start's background
// load runs on the loop thread.
type Controller struct {
	opts      Options
	loop      *eventloop.Loop
	container Container
	region    Region
	loader    ModelLoader

	scene    *scene.Scene
	camera   *camera.Perspective
	renderer *renderer.Software
	bloom    *postfx.Bloom
	composer *postfx.Composer
	sync     *viewport.Synchronizer
	governor *motion.Governor
	pointer  picking.Pointer

	phase       Phase
	started     bool
	frameID     eventloop.ID
	unsubscribe func()
	cancelLoad  context.CancelFunc
	lastFrame   time.Time
	state       State

	log *zap.Logger
}

// Mount builds a controller bound to container and region. Nothing is loaded
// or drawn until Start.
func Mount(loop *eventloop.Loop, container Container, region Region, loader ModelLoader, opts Options) (*Controller, error) {
	if container == nil || region == nil {
		return nil, ErrMissingAnchor
	}
	if loop == nil {
		return nil, errors.New("hero: nil event loop")
	}
	if loader == nil {
		return nil, errors.New("hero: nil model loader")
	}

	s := scene.New(opts.Background)
	s.BackgroundAlpha = opts.BackgroundAlpha

	cam := camera.NewPerspective(opts.FOV, opts.Near, opts.Far, opts.Distance)
	r := renderer.NewSoftware(renderer.Options{ShowBounds: opts.ShowBounds})

	c := &Controller{
		opts:      opts,
		loop:      loop,
		container: container,
		region:    region,
		loader:    loader,
		scene:     s,
		camera:    cam,
		renderer:  r,
		governor:  motion.NewGovernor(opts.Motion, opts.Reduced, loop),
		phase:     Loading,
		log:       logger.Named("hero"),
	}

	var stages []postfx.Stage
	if opts.GlowEnabled {
		c.bloom = postfx.NewBloom(float64(opts.Motion.BaseIntensity), opts.GlowRadius, opts.GlowThreshold, opts.GlowTint)
		stages = append(stages, c.bloom)
	}
	c.composer = postfx.NewComposer(stages...)
	c.sync = viewport.NewSynchronizer(opts.DPRCap, cam, r, c.composer)

	return c, nil
}

// Start subscribes to resizes and begins loading. The first frame is
// requested once every model has resolved.
func (c *Controller) Start(ctx context.Context) {
	if c.started || c.phase == Disposed {
		return
	}
	c.started = true

	c.unsubscribe = c.container.OnResize(func(w, h, dpr float32) {
		if c.phase == Disposed {
			return
		}
		c.resize(w, h, dpr)
	})
	w, h := c.container.Size()
	c.resize(w, h, c.container.PixelRatio())

	loadCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel

	urls := append([]string(nil), c.opts.URLs...)
	c.log.Info("loading models", zap.Strings("urls", urls))

	go func() {
		models := c.loader.LoadAll(loadCtx, urls)
		c.loop.Post(func() { c.onLoaded(models) })
	}()
}

// resize applies a container box and rebuilds the backdrop when the
// effective pixel ratio changes.
func (c *Controller) resize(w, h, dpr float32) {
	prev, synced := c.sync.State()
	st := c.sync.Sync(w, h, dpr)
	c.state.Viewport = st

	if c.opts.Backdrop != nil && (!synced || prev.PixelRatio != st.PixelRatio) {
		c.renderer.SetBackdrop(c.opts.Backdrop(st.PixelRatio))
	}
}

func (c *Controller) onLoaded(models []*model.Model) {
	if c.phase != Loading {
		return
	}
	if len(models) == 0 {
		c.log.Warn("no models to show, using placeholder")
		models = []*model.Model{model.NewPlaceholder()}
	}

	model.Layout(models, c.opts.TargetSize, c.opts.Gap)
	names := make([]string, 0, len(models))
	for _, m := range models {
		c.scene.Add(m)
		names = append(names, m.Name)
	}
	c.state.Models = names
	c.state.Rotations = make([]float32, len(models))

	c.phase = Ready
	c.log.Info("hero ready",
		zap.Strings("models", names),
		zap.Bool("reduced_motion", c.governor.Reduced()),
	)
	c.frameID = c.loop.RequestFrame(c.tick)
}

// tick renders one frame and requests the next.
func (c *Controller) tick(now time.Time) error {
	if c.phase != Ready {
		return nil
	}

	dt := motion.ReferenceFrame
	if !c.lastFrame.IsZero() {
		dt = now.Sub(c.lastFrame)
	}
	c.lastFrame = now

	hovering := c.pointer.Inside && picking.Hit(c.pointer, c.camera.InverseViewProjection(), c.scene.Models())
	delta := c.governor.Advance(hovering, dt)

	models := c.scene.Models()
	for i, m := range models {
		m.Rotation += delta
		c.state.Rotations[i] = m.Rotation
	}

	img, err := c.renderer.Render(c.scene, c.camera)
	if err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	if c.bloom != nil {
		c.bloom.Strength = float64(c.governor.Intensity.Current)
	}
	img, err = c.composer.Render(img)
	if err != nil {
		return fmt.Errorf("post-processing frame: %w", err)
	}
	if err := c.container.Surface().Present(img); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}

	c.state.Hovering = hovering
	c.state.TapActive = c.governor.TapActive()
	c.state.Speed = c.governor.Speed.Current
	c.state.Intensity = c.governor.Intensity.Current
	c.state.Frames++

	c.frameID = c.loop.RequestFrame(c.tick)
	return nil
}

// PointerMove records a pointer position in client coordinates.
func (c *Controller) PointerMove(x, y float32) {
	if c.phase == Disposed {
		return
	}
	c.pointer.Move(x, y, c.region.Bounds())
}

// PointerLeave marks the pointer as outside the tracked region.
func (c *Controller) PointerLeave() {
	c.pointer.Leave()
}

// PointerDown triggers the temporary hover-speed override.
func (c *Controller) PointerDown() {
	if c.phase == Disposed {
		return
	}
	c.governor.Tap()
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Models returns the attached models.
func (c *Controller) Models() []*model.Model {
	return c.scene.Models()
}

// Snapshot returns a deep copy of the diagnostic state.
func (c *Controller) Snapshot() State {
	c.state.Phase = c.phase
	return deepcopy.MustAnything(c.state).(State)
}

// Dispose releases the resize subscription, pending frame, tap timers and
// outstanding loads. It is safe to call more than once.
func (c *Controller) Dispose() {
	if c.phase == Disposed {
		return
	}
	c.phase = Disposed

	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.frameID != 0 {
		c.loop.CancelFrame(c.frameID)
		c.frameID = 0
	}
	c.governor.Stop()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.scene.Dispose()
	c.renderer.Release()

	c.log.Info("hero disposed", zap.Uint64("frames", c.state.Frames))
}
