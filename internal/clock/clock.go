// Package clock formats the local time readout shown beside the hero.
package clock

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hero3d/internal/engine/eventloop"
	"github.com/Faultbox/hero3d/internal/logger"
)

// Layout matches "Oct 19, 2026, 09:05:03 AM PDT".
const Layout = "Jan 02, 2006, 03:04:05 PM MST"

// DefaultZone is used when no zone is configured.
const DefaultZone = "America/Los_Angeles"

// Scheduler runs callbacks on the event thread.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) eventloop.ID
	CancelTimer(id eventloop.ID)
}

// LoadZone resolves an IANA zone name, falling back to UTC.
func LoadZone(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown clock zone, using UTC", zap.String("zone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

// Format renders t in loc.
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// Ticker emits the formatted time once per second, aligned to whole seconds.
type Ticker struct {
	sched  Scheduler
	loc    *time.Location
	emit   func(string)
	timer  eventloop.ID
	active bool
}

// NewTicker creates a stopped ticker.
func NewTicker(sched Scheduler, loc *time.Location, emit func(string)) *Ticker {
	return &Ticker{sched: sched, loc: loc, emit: emit}
}

// Start emits immediately, then on every following full second.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.Refresh()

	now := t.sched.Now()
	wait := time.Second - time.Duration(now.Nanosecond())
	t.timer = t.sched.AfterFunc(wait, t.tick)
}

func (t *Ticker) tick() {
	if !t.active {
		return
	}
	t.Refresh()
	t.timer = t.sched.AfterFunc(time.Second, t.tick)
}

// Refresh emits the current time without touching the schedule.
// Hosts call it when the window regains focus.
func (t *Ticker) Refresh() {
	t.emit(Format(t.sched.Now(), t.loc))
}

// Stop cancels the pending tick.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	t.sched.CancelTimer(t.timer)
}
