package motion

import (
	"fmt"
	"time"

	"github.com/Faultbox/hero3d/internal/engine/eventloop"
)

// Timestep selects how per-frame constants relate to elapsed time.
type Timestep int

const (
	// PerFrame advances one step per rendered frame regardless of refresh rate.
	PerFrame Timestep = iota
	// WallClock scales steps by elapsed time against a 60 Hz reference frame.
	WallClock
)

// ReferenceFrame is the frame length speeds are expressed against in WallClock mode.
const ReferenceFrame = time.Second / 60

// ParseTimestep maps the config names "frame" and "wallclock".
func ParseTimestep(s string) (Timestep, error) {
	switch s {
	case "frame", "":
		return PerFrame, nil
	case "wallclock":
		return WallClock, nil
	default:
		return PerFrame, fmt.Errorf("unknown timestep %q", s)
	}
}

// Params holds the governor constants.
type Params struct {
	BaseSpeed      float32 // Radians per frame
	HoverSpeed     float32
	BaseIntensity  float32
	HoverIntensity float32
	Damping        float32
	TapOverride    time.Duration
	Timestep       Timestep
}

// Scheduler runs deferred callbacks on the event thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) eventloop.ID
	CancelTimer(id eventloop.ID)
}

// Governor owns the eased rotation speed and glow intensity.
// All methods must be called from the event thread.
type Governor struct {
	params  Params
	reduced bool
	sched   Scheduler

	Speed     Eased
	Intensity Eased

	tapActive bool
	taps      []eventloop.ID
}

// NewGovernor starts both scalars at rest on their base targets.
// Reduced motion is fixed for the governor's lifetime.
func NewGovernor(p Params, reduced bool, sched Scheduler) *Governor {
	g := &Governor{params: p, reduced: reduced, sched: sched}
	g.UpdateTargets(false)
	g.Speed.Current = g.Speed.Target
	g.Intensity.Current = g.Intensity.Target
	return g
}

// Reduced reports whether reduced motion is active.
func (g *Governor) Reduced() bool {
	return g.reduced
}

// TapActive reports whether a pointer-down override is in effect.
func (g *Governor) TapActive() bool {
	return g.tapActive
}

// Tap forces hover speed until the override duration elapses. Overlapping
// taps each schedule their own revert; the first to fire ends the override.
func (g *Governor) Tap() {
	if g.reduced {
		return
	}
	g.tapActive = true
	g.Speed.Target = g.params.HoverSpeed

	var id eventloop.ID
	id = g.sched.AfterFunc(g.params.TapOverride, func() {
		g.forget(id)
		g.tapActive = false
		g.Speed.Target = g.params.BaseSpeed
	})
	g.taps = append(g.taps, id)
}

func (g *Governor) forget(id eventloop.ID) {
	for i, t := range g.taps {
		if t == id {
			g.taps = append(g.taps[:i], g.taps[i+1:]...)
			return
		}
	}
}

// UpdateTargets applies the target policy for the current hover state.
// A tap override raises speed only.
func (g *Governor) UpdateTargets(hovering bool) {
	if g.reduced {
		g.Speed.Target = 0
		g.Intensity.Target = g.params.BaseIntensity
		return
	}

	if hovering {
		g.Speed.Target = g.params.HoverSpeed
		g.Intensity.Target = g.params.HoverIntensity
	} else {
		g.Speed.Target = g.params.BaseSpeed
		g.Intensity.Target = g.params.BaseIntensity
	}
	if g.tapActive {
		g.Speed.Target = g.params.HoverSpeed
	}
}

// Step damps both scalars and returns the rotation increment for this frame.
// dt is only used in WallClock mode.
func (g *Governor) Step(dt time.Duration) float32 {
	n := float32(1)
	if g.params.Timestep == WallClock {
		n = float32(dt) / float32(ReferenceFrame)
	}

	g.Speed.StepN(g.params.Damping, n)
	g.Intensity.StepN(g.params.Damping, n)

	if g.reduced {
		return 0
	}
	return g.Speed.Current * n
}

// Advance runs one frame of the policy: targets, damping, rotation delta.
func (g *Governor) Advance(hovering bool, dt time.Duration) float32 {
	g.UpdateTargets(hovering)
	return g.Step(dt)
}

// Stop cancels pending tap reverts.
func (g *Governor) Stop() {
	for _, id := range g.taps {
		g.sched.CancelTimer(id)
	}
	g.taps = nil
}
