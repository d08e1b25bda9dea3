package pacer_test

import (
	"testing"
	"time"

	"github.com/hisahi/lrg/internal/clock"
	"github.com/hisahi/lrg/internal/pacer"
)

func TestNewUnlimitedIsNil(t *testing.T) {
	if p := pacer.New(clock.RealClock{}, 0); p != nil {
		t.Errorf("New(0) = %v, want nil", p)
	}
	if p := pacer.New(clock.RealClock{}, -1); p != nil {
		t.Errorf("New(-1) = %v, want nil", p)
	}
}

func TestNilPacerNeverDelays(t *testing.T) {
	var p *pacer.Pacer
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			p.Pace()
		}
		close(done)
	}()
	select {
	case <-done:
		// ok
	case <-time.After(time.Second):
		t.Error("nil Pacer.Pace blocked")
	}
}

func TestPaceSpacesLines(t *testing.T) {
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	p := pacer.New(clk, 10) // one line per 100ms

	// The first line goes through without delay.
	first := make(chan struct{})
	go func() {
		p.Pace()
		close(first)
	}()
	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("first Pace blocked")
	}

	// The second line must wait until the clock has moved 100ms.
	second := make(chan struct{})
	go func() {
		p.Pace()
		close(second)
	}()
	select {
	case <-second:
		t.Fatal("second Pace returned before the interval elapsed")
	case <-time.After(10 * time.Millisecond):
	}

	clk.Advance(100 * time.Millisecond)
	select {
	case <-second:
		// ok
	case <-time.After(time.Second):
		t.Error("second Pace did not return after the interval elapsed")
	}
}
