package clock

import (
	"testing"
	"time"
)

func TestRealClock_NowAndAfter(t *testing.T) {
	clk := RealClock{}
	before := time.Now()
	now := clk.Now()
	after := clk.After(10 * time.Millisecond)
	select {
	case <-after:
		// ok
	case <-time.After(100 * time.Millisecond):
		t.Error("RealClock.After did not fire within expected time")
	}
	if now.Before(before) || now.After(time.Now()) {
		t.Errorf("RealClock.Now returned unexpected time: %v", now)
	}
}

func TestMockClock_AfterFiresOnAdvance(t *testing.T) {
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)

	ch := clk.After(50 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("After fired before the clock was advanced")
	default:
	}

	clk.Advance(49 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("After fired before its deadline")
	default:
	}

	clk.Advance(1 * time.Millisecond)
	select {
	case at := <-ch:
		if !at.Equal(start.Add(50 * time.Millisecond)) {
			t.Errorf("After delivered %v, want %v", at, start.Add(50*time.Millisecond))
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("After did not fire after the clock passed its deadline")
	}
}

func TestMockClock_AfterNonPositiveFiresImmediately(t *testing.T) {
	clk := NewMockClock(time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	select {
	case <-clk.After(0):
		// ok
	default:
		t.Error("After(0) should fire without an Advance")
	}
}

func TestMockClock_SleepBlocksUntilAdvance(t *testing.T) {
	clk := NewMockClock(time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	done := make(chan struct{})
	go func() {
		clk.Sleep(20 * time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Sleep returned before the clock was advanced")
	case <-time.After(10 * time.Millisecond):
	}

	clk.Advance(20 * time.Millisecond)
	select {
	case <-done:
		// ok
	case <-time.After(100 * time.Millisecond):
		t.Error("Sleep did not return after the clock was advanced")
	}
}
