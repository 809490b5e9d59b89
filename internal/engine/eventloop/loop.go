// Package eventloop runs callbacks on a single host thread.
//
// Hosts call Pump on every iteration of their native event loop and Frame once
// per display refresh. Everything scheduled through the loop (posted
// completions, timers, frame callbacks) executes on that thread, so state
// touched only from callbacks needs no locking. Post is the only method that
// may be called from other goroutines.
package eventloop

import (
	"sort"
	"sync"
	"time"
)

// ID identifies a scheduled timer or frame callback. Zero is never issued.
type ID uint64

// FrameFunc is a display refresh callback. A returned error is fatal to the host.
type FrameFunc func(now time.Time) error

type timer struct {
	id  ID
	due time.Time
	fn  func()
}

type frame struct {
	id ID
	fn FrameFunc
}

// Loop is a single-threaded scheduler.
type Loop struct {
	clock Clock

	mu     sync.Mutex
	posted []func()
	timers []timer // Sorted by due time, then by scheduling order
	frames []frame
	nextID ID
	closed bool

	wake chan struct{}
}

// New creates a loop driven by clock.
func New(clock Clock) *Loop {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Loop{
		clock: clock,
		wake:  make(chan struct{}, 1),
	}
}

// Now returns the loop clock time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Clock returns the clock driving the loop.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Wake is signaled whenever work is posted from any goroutine.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Post queues fn to run on the loop thread during the next Pump.
// It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// AfterFunc schedules fn to run on the loop thread once d has elapsed.
// Timers with the same due time fire in scheduling order.
func (l *Loop) AfterFunc(d time.Duration, fn func()) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}

	l.nextID++
	t := timer{id: l.nextID, due: l.clock.Now().Add(d), fn: fn}

	i := sort.Search(len(l.timers), func(i int) bool {
		return l.timers[i].due.After(t.due)
	})
	l.timers = append(l.timers, timer{})
	copy(l.timers[i+1:], l.timers[i:])
	l.timers[i] = t
	return t.id
}

// CancelTimer removes a pending timer. Unknown ids are ignored.
func (l *Loop) CancelTimer(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.timers {
		if t.id == id {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// RequestFrame schedules fn for the next Frame call. Requests made while a
// frame is running wait for the following one.
func (l *Loop) RequestFrame(fn FrameFunc) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}
	l.nextID++
	l.frames = append(l.frames, frame{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame removes a pending frame request. Unknown ids are ignored.
func (l *Loop) CancelFrame(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// Pump runs posted callbacks, then every timer due at the current time.
// Work scheduled by these callbacks runs on a later Pump.
func (l *Loop) Pump() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	limit := l.nextID
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	now := l.clock.Now()
	for {
		t, ok := l.popDue(now, limit)
		if !ok {
			return
		}
		t.fn()
	}
}

// popDue removes the earliest timer due at now that was scheduled before
// the pump started.
func (l *Loop) popDue(now time.Time, limit ID) (timer, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.timers {
		if t.due.After(now) {
			break
		}
		if t.id <= limit {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return t, true
		}
	}
	return timer{}, false
}

// Frame runs the frame callbacks requested before this call and returns the
// first error. Remaining callbacks still run.
func (l *Loop) Frame() error {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	now := l.clock.Now()
	var first error
	for _, f := range frames {
		if err := f.fn(now); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PendingFrames returns the number of queued frame requests.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// PendingTimers returns the number of scheduled timers.
func (l *Loop) PendingTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// NextDue returns when the earliest timer fires.
func (l *Loop) NextDue() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].due, true
}

// Close drops all queued work. Later scheduling calls are no-ops.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.posted = nil
	l.timers = nil
	l.frames = nil
}
