// Package engine walks an input stream once forward (repositioning
// backward when a range requires it) and emits the lines addressed by a
// range table. Streams are processed one at a time; the table is immutable
// and shared across them.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/hisahi/lrg/internal/linerange"
	"github.com/hisahi/lrg/internal/output"
	"github.com/hisahi/lrg/internal/pacer"
	"github.com/hisahi/lrg/internal/reader"
)

// Options carries the per-invocation settings the engine needs. A single
// Options value is built once by the caller and shared by every stream.
type Options struct {
	ShowLineNumbers   bool
	ShowFileNames     bool
	WarnEOF           bool
	BufferSize        int
	RewindMode        reader.RewindMode
	BackscanThreshold uint64
}

// RewindError reports a range that required moving backward on a stream
// that cannot seek.
type RewindError struct {
	Clause string
}

func (e *RewindError) Error() string {
	return fmt.Sprintf("cannot rewind in range -- '%s'", e.Clause)
}

// StreamError reports a seek or read failure on the named input stream.
type StreamError struct {
	Name string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// Result summarizes one stream's processing.
type Result struct {
	// PrematureEOF is set when the stream ended before some range's last
	// line was reached.
	PrematureEOF bool
}

// Engine extracts the lines addressed by one range table from input
// streams, one stream at a time.
type Engine struct {
	ranges linerange.Table
	opts   Options
	out    *output.Writer
	pace   *pacer.Pacer
	warn   func(format string, args ...any)
}

// New creates an Engine. pace may be nil for unpaced output; warn may be
// nil to discard diagnostics.
func New(ranges linerange.Table, opts Options, out *output.Writer, pace *pacer.Pacer, warn func(string, ...any)) *Engine {
	return &Engine{
		ranges: ranges,
		opts:   opts,
		out:    out,
		pace:   pace,
		warn:   warn,
	}
}

// Process runs the range table against one stream. It returns a
// *RewindError or *StreamError for stream-local failures (the caller may
// continue with other streams) and a *output.WriteError when the
// destination failed (the caller should stop entirely).
func (e *Engine) Process(src reader.Source, name string) (Result, error) {
	var res Result
	r := reader.NewLineReader(src, e.opts.BufferSize)

	if e.opts.ShowFileNames {
		if err := e.out.FileHeader(name); err != nil {
			return res, err
		}
	}

	var eofAt uint64
	sawEOF := false
	for _, rng := range e.ranges {
		if rng.First <= r.CurrentLine() {
			if !src.CanSeek() {
				return res, &RewindError{Clause: rng.Text}
			}
			if err := r.Reposition(rng.First, e.opts.RewindMode, e.opts.BackscanThreshold); err != nil {
				if errors.Is(err, reader.ErrNotSeekable) {
					return res, &RewindError{Clause: rng.Text}
				}
				return res, &StreamError{Name: name, Err: err}
			}
		} else if sawEOF && eofAt < rng.First {
			// The stream is known to end before this range starts;
			// do not touch it again.
			res.PrematureEOF = true
			e.warnEOF(name, rng.First, eofAt)
			continue
		}

		err := e.emitRange(r, rng)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			sawEOF = true
			eofAt = r.CurrentLine()
			if !rng.Open() && eofAt < rng.Last {
				res.PrematureEOF = true
				target := rng.Last
				if eofAt < rng.First {
					target = rng.First
				}
				e.warnEOF(name, target, eofAt)
			}
		default:
			var werr *output.WriteError
			if errors.As(err, &werr) {
				return res, err
			}
			return res, &StreamError{Name: name, Err: err}
		}
	}
	return res, nil
}

// emitRange advances to the range's first line, then writes every window
// through the end of its last line. The line-number prefix goes out once
// per logical line, on the window that starts it.
func (e *Engine) emitRange(r *reader.LineReader, rng linerange.Range) error {
	for {
		w, err := r.Next()
		if err != nil {
			return err
		}
		if w.LineNum < rng.First {
			continue
		}
		if w.Start && e.opts.ShowLineNumbers {
			if err := e.out.LineNumber(w.LineNum); err != nil {
				return err
			}
		}
		if err := e.out.Chunk(w.Data); err != nil {
			return err
		}
		if w.EOL {
			e.pace.Pace()
			if w.LineNum == rng.Last {
				return nil
			}
		}
	}
}

func (e *Engine) warnEOF(name string, target, last uint64) {
	if e.warn == nil || !e.opts.WarnEOF {
		return
	}
	e.warn("%s: EOF before line %d (last = %d)", name, target, last)
}
