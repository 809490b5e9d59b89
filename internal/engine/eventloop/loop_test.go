package eventloop

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPostFromGoroutines(t *testing.T) {
	l := New(NewMockClock(epoch))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {})
		}()
	}
	wg.Wait()

	select {
	case <-l.Wake():
	default:
		t.Error("expected wake signal after post")
	}

	count := 0
	l.Post(func() { count++ })
	l.Pump()
	if count != 1 {
		t.Errorf("expected posted callback to run once, got %d", count)
	}
}

func TestAfterFuncOrdering(t *testing.T) {
	clock := NewMockClock(epoch)
	l := New(clock)

	var order []string
	l.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	l.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	l.AfterFunc(200*time.Millisecond, func() { order = append(order, "c") })

	clock.Advance(99 * time.Millisecond)
	l.Pump()
	if len(order) != 0 {
		t.Fatalf("expected nothing due yet, got %v", order)
	}

	clock.Advance(time.Millisecond)
	l.Pump()
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected [a], got %v", order)
	}

	clock.Advance(time.Second)
	l.Pump()
	if len(order) != 3 || order[1] != "b" || order[2] != "c" {
		t.Errorf("expected [a b c], got %v", order)
	}
	if l.PendingTimers() != 0 {
		t.Errorf("expected no pending timers, got %d", l.PendingTimers())
	}
}

func TestCancelTimer(t *testing.T) {
	clock := NewMockClock(epoch)
	l := New(clock)

	fired := false
	id := l.AfterFunc(10*time.Millisecond, func() { fired = true })

	// Cancelling from an earlier timer in the same pump also works.
	l.AfterFunc(5*time.Millisecond, func() { l.CancelTimer(id) })

	clock.Advance(time.Second)
	l.Pump()
	if fired {
		t.Error("expected cancelled timer not to fire")
	}
}

func TestTimerScheduledDuringPumpWaits(t *testing.T) {
	clock := NewMockClock(epoch)
	l := New(clock)

	inner := false
	l.AfterFunc(0, func() {
		l.AfterFunc(0, func() { inner = true })
	})

	l.Pump()
	if inner {
		t.Error("expected nested timer to wait for the next pump")
	}
	l.Pump()
	if !inner {
		t.Error("expected nested timer to fire on the next pump")
	}
}

func TestRequestFrameSemantics(t *testing.T) {
	clock := NewMockClock(epoch)
	l := New(clock)

	frames := 0
	var tick FrameFunc
	tick = func(now time.Time) error {
		frames++
		l.RequestFrame(tick)
		return nil
	}
	l.RequestFrame(tick)

	for i := 0; i < 3; i++ {
		if err := l.Frame(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if frames != 3 {
		t.Errorf("expected one callback per frame, got %d", frames)
	}
	if l.PendingFrames() != 1 {
		t.Errorf("expected one pending request, got %d", l.PendingFrames())
	}
}

func TestCancelFrame(t *testing.T) {
	l := New(NewMockClock(epoch))

	ran := false
	id := l.RequestFrame(func(time.Time) error { ran = true; return nil })
	l.CancelFrame(id)
	_ = l.Frame()
	if ran {
		t.Error("expected cancelled frame not to run")
	}
}

func TestFrameReturnsFirstError(t *testing.T) {
	l := New(NewMockClock(epoch))
	errLost := errors.New("lost")

	second := false
	l.RequestFrame(func(time.Time) error { return errLost })
	l.RequestFrame(func(time.Time) error { second = true; return errors.New("other") })

	if err := l.Frame(); !errors.Is(err, errLost) {
		t.Errorf("expected first error, got %v", err)
	}
	if !second {
		t.Error("expected remaining callbacks to run")
	}
}

func TestFramePassesClockTime(t *testing.T) {
	clock := NewMockClock(epoch)
	l := New(clock)
	clock.Advance(time.Minute)

	var got time.Time
	l.RequestFrame(func(now time.Time) error { got = now; return nil })
	_ = l.Frame()
	if !got.Equal(epoch.Add(time.Minute)) {
		t.Errorf("expected clock time, got %v", got)
	}
}

func TestClose(t *testing.T) {
	l := New(NewMockClock(epoch))
	l.AfterFunc(0, func() {})
	l.RequestFrame(func(time.Time) error { return nil })
	l.Close()

	if l.Post(func() {}) {
		t.Error("expected post after close to fail")
	}
	if id := l.AfterFunc(0, func() {}); id != 0 {
		t.Errorf("expected zero id after close, got %d", id)
	}
	if l.PendingFrames() != 0 || l.PendingTimers() != 0 {
		t.Error("expected queues dropped on close")
	}
}

func TestNextDue(t *testing.T) {
	l := New(NewMockClock(epoch))
	if _, ok := l.NextDue(); ok {
		t.Error("expected no due time without timers")
	}
	l.AfterFunc(time.Second, func() {})
	l.AfterFunc(time.Millisecond, func() {})
	due, ok := l.NextDue()
	if !ok || !due.Equal(epoch.Add(time.Millisecond)) {
		t.Errorf("expected earliest due time, got %v", due)
	}
}
