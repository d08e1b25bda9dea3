// Package pacer caps output throughput to a configured number of lines per
// second. The engine calls Pace after every completed line; pacing is a
// single blocking delay and never changes what is written, only when.
package pacer

import (
	"time"

	"github.com/hisahi/lrg/internal/clock"
)

// Pacer spaces out completed lines. The zero-value (or a nil) Pacer never
// delays.
type Pacer struct {
	clk      clock.Clock
	interval time.Duration
	next     time.Time
}

// New creates a Pacer that allows at most linesPerSecond lines per second
// using clk for timing. It returns nil when linesPerSecond is zero or
// negative, meaning unlimited.
func New(clk clock.Clock, linesPerSecond float64) *Pacer {
	if linesPerSecond <= 0 {
		return nil
	}
	return &Pacer{
		clk:      clk,
		interval: time.Duration(float64(time.Second) / linesPerSecond),
	}
}

// Pace blocks until the next line may be written.
func (p *Pacer) Pace() {
	if p == nil {
		return
	}
	now := p.clk.Now()
	if p.next.After(now) {
		p.clk.Sleep(p.next.Sub(now))
		now = p.clk.Now()
	}
	p.next = now.Add(p.interval)
}
