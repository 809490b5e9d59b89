package clock

import (
	"testing"
	"time"

	"github.com/Faultbox/hero3d/internal/engine/eventloop"
)

func TestFormatLosAngeles(t *testing.T) {
	loc := LoadZone(DefaultZone)
	if loc == time.UTC {
		t.Skip("tzdata not available")
	}

	summer := time.Date(2026, 7, 4, 16, 5, 9, 0, time.UTC)
	if got, want := Format(summer, loc), "Jul 04, 2026, 09:05:09 AM PDT"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	winter := time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC)
	if got, want := Format(winter, loc), "Jan 15, 2026, 03:00:00 PM PST"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadZoneFallback(t *testing.T) {
	if loc := LoadZone("Not/AZone"); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
}

func TestTickerAlignsToWholeSeconds(t *testing.T) {
	clk := eventloop.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 300*int(time.Millisecond), time.UTC))
	loop := eventloop.New(clk)

	var got []string
	tk := NewTicker(loop, time.UTC, func(s string) { got = append(got, s) })
	tk.Start()

	if len(got) != 1 {
		t.Fatalf("expected immediate emit, got %d", len(got))
	}

	clk.Advance(699 * time.Millisecond)
	loop.Pump()
	if len(got) != 1 {
		t.Fatalf("expected no tick before the full second, got %d", len(got))
	}

	clk.Advance(time.Millisecond)
	loop.Pump()
	if len(got) != 2 || got[1] != "Jan 01, 2026, 12:00:01 AM UTC" {
		t.Fatalf("expected aligned tick at 00:00:01, got %v", got)
	}

	clk.Advance(time.Second)
	loop.Pump()
	if len(got) != 3 {
		t.Errorf("expected tick every second, got %d", len(got))
	}

	tk.Stop()
	clk.Advance(5 * time.Second)
	loop.Pump()
	if len(got) != 3 {
		t.Errorf("expected no ticks after Stop, got %d", len(got))
	}
}

func TestRefresh(t *testing.T) {
	loop := eventloop.New(eventloop.NewMockClock(time.Unix(0, 0)))
	var got []string
	tk := NewTicker(loop, time.UTC, func(s string) { got = append(got, s) })

	tk.Refresh()
	if len(got) != 1 || got[0] != "Jan 01, 1970, 12:00:00 AM UTC" {
		t.Errorf("unexpected refresh output %v", got)
	}
}
