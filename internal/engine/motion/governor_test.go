package motion

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/hero3d/internal/engine/eventloop"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func heroParams() Params {
	return Params{
		BaseSpeed:      0.005,
		HoverSpeed:     0.018,
		BaseIntensity:  0.35,
		HoverIntensity: 1.2,
		Damping:        0.08,
		TapOverride:    1200 * time.Millisecond,
	}
}

func TestEasedConvergence(t *testing.T) {
	e := Eased{Current: 0, Target: 1}
	for n := 1; n <= 50; n++ {
		e.Step(0.08)
		want := 1 - gomath.Pow(0.92, float64(n))
		if gomath.Abs(float64(e.Current)-want) > 1e-5 {
			t.Fatalf("tick %d: expected %f, got %f", n, want, e.Current)
		}
	}
	if e.Current <= 0.98 {
		t.Errorf("expected > 0.98 after 50 ticks, got %f", e.Current)
	}
}

func TestEasedStepNMatchesRepeatedSteps(t *testing.T) {
	a := Eased{Target: 1}
	b := Eased{Target: 1}
	for i := 0; i < 3; i++ {
		a.Step(0.08)
	}
	b.StepN(0.08, 3)
	if gomath.Abs(float64(a.Current-b.Current)) > 1e-5 {
		t.Errorf("expected %f, got %f", a.Current, b.Current)
	}

	c := Eased{Target: 1}
	c.StepN(0.08, 0)
	if c.Current != 0 {
		t.Errorf("expected no change for n=0, got %f", c.Current)
	}
}

func TestGovernorStartsAtBase(t *testing.T) {
	l := eventloop.New(eventloop.NewMockClock(epoch))
	g := NewGovernor(heroParams(), false, l)

	if g.Speed.Current != 0.005 || g.Speed.Target != 0.005 {
		t.Errorf("expected speed at rest on base, got %+v", g.Speed)
	}
	if g.Intensity.Current != 0.35 {
		t.Errorf("expected intensity at base, got %f", g.Intensity.Current)
	}
}

func TestGovernorHoverPolicy(t *testing.T) {
	l := eventloop.New(eventloop.NewMockClock(epoch))
	g := NewGovernor(heroParams(), false, l)

	g.UpdateTargets(true)
	if g.Speed.Target != 0.018 || g.Intensity.Target != 1.2 {
		t.Errorf("expected hover targets, got %f/%f", g.Speed.Target, g.Intensity.Target)
	}

	g.UpdateTargets(false)
	if g.Speed.Target != 0.005 || g.Intensity.Target != 0.35 {
		t.Errorf("expected base targets, got %f/%f", g.Speed.Target, g.Intensity.Target)
	}

	// Speed eases rather than snapping.
	g.UpdateTargets(true)
	delta := g.Step(0)
	want := float32(0.005 + (0.018-0.005)*0.08)
	if gomath.Abs(float64(delta-want)) > 1e-7 {
		t.Errorf("expected eased delta %f, got %f", want, delta)
	}
}

func TestGovernorReducedMotion(t *testing.T) {
	clock := eventloop.NewMockClock(epoch)
	l := eventloop.New(clock)
	g := NewGovernor(heroParams(), true, l)

	if !g.Reduced() {
		t.Fatal("expected reduced motion")
	}

	for i := 0; i < 100; i++ {
		if i%10 == 0 {
			g.Tap()
		}
		delta := g.Advance(i%2 == 0, 16*time.Millisecond)
		if delta != 0 {
			t.Fatalf("frame %d: expected no rotation, got %f", i, delta)
		}
		if g.Speed.Target != 0 {
			t.Fatalf("frame %d: expected zero target speed, got %f", i, g.Speed.Target)
		}
		if g.Intensity.Target != 0.35 {
			t.Fatalf("frame %d: expected base intensity, got %f", i, g.Intensity.Target)
		}
		clock.Advance(16 * time.Millisecond)
		l.Pump()
	}
	if l.PendingTimers() != 0 {
		t.Error("expected taps ignored under reduced motion")
	}
}

func TestGovernorTapOverride(t *testing.T) {
	clock := eventloop.NewMockClock(epoch)
	l := eventloop.New(clock)
	g := NewGovernor(heroParams(), false, l)

	g.Tap()
	g.UpdateTargets(false)
	if g.Speed.Target != 0.018 {
		t.Fatalf("expected hover speed immediately, got %f", g.Speed.Target)
	}
	if g.Intensity.Target != 0.35 {
		t.Errorf("expected tap to leave intensity at base, got %f", g.Intensity.Target)
	}

	clock.Advance(1199 * time.Millisecond)
	l.Pump()
	g.UpdateTargets(false)
	if g.Speed.Target != 0.018 {
		t.Errorf("expected hover speed at +1199ms, got %f", g.Speed.Target)
	}

	clock.Advance(2 * time.Millisecond)
	l.Pump()
	g.UpdateTargets(false)
	if g.Speed.Target != 0.005 {
		t.Errorf("expected base speed at +1201ms, got %f", g.Speed.Target)
	}
	if g.TapActive() {
		t.Error("expected override cleared")
	}
}

func TestGovernorOverlappingTaps(t *testing.T) {
	clock := eventloop.NewMockClock(epoch)
	l := eventloop.New(clock)
	g := NewGovernor(heroParams(), false, l)

	g.Tap()
	clock.Advance(500 * time.Millisecond)
	l.Pump()
	g.Tap()

	// The first revert fires at +1200ms and ends the override.
	clock.Advance(701 * time.Millisecond)
	l.Pump()
	if g.TapActive() {
		t.Error("expected first revert to end the override")
	}
	if l.PendingTimers() != 1 {
		t.Errorf("expected second revert still pending, got %d", l.PendingTimers())
	}

	clock.Advance(time.Second)
	l.Pump()
	if l.PendingTimers() != 0 {
		t.Errorf("expected all reverts fired, got %d", l.PendingTimers())
	}
}

func TestGovernorStopCancelsTaps(t *testing.T) {
	clock := eventloop.NewMockClock(epoch)
	l := eventloop.New(clock)
	g := NewGovernor(heroParams(), false, l)

	g.Tap()
	g.Tap()
	g.Stop()
	if l.PendingTimers() != 0 {
		t.Errorf("expected timers cancelled, got %d", l.PendingTimers())
	}
}

func TestGovernorWallClock(t *testing.T) {
	p := heroParams()
	p.Timestep = WallClock
	l := eventloop.New(eventloop.NewMockClock(epoch))
	g := NewGovernor(p, false, l)

	delta := g.Step(2 * ReferenceFrame)
	if gomath.Abs(float64(delta-2*0.005)) > 1e-7 {
		t.Errorf("expected two reference frames of rotation, got %f", delta)
	}

	g.UpdateTargets(true)
	g.Step(2 * ReferenceFrame)
	want := 0.018 - (0.018-0.005)*gomath.Pow(0.92, 2)
	if gomath.Abs(float64(g.Speed.Current)-want) > 1e-6 {
		t.Errorf("expected %f after two reference frames, got %f", want, g.Speed.Current)
	}
}

func TestParseTimestep(t *testing.T) {
	if ts, err := ParseTimestep("wallclock"); err != nil || ts != WallClock {
		t.Errorf("expected WallClock, got %v %v", ts, err)
	}
	if ts, err := ParseTimestep("frame"); err != nil || ts != PerFrame {
		t.Errorf("expected PerFrame, got %v %v", ts, err)
	}
	if _, err := ParseTimestep("physics"); err == nil {
		t.Error("expected error for unknown timestep")
	}
}
