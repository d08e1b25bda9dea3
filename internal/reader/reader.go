package reader

import (
	"bytes"
	"fmt"
	"io"

	"fortio.org/safecast"
)

// DefaultBufferSize is the buffer size used when the caller does not
// configure one.
const DefaultBufferSize = 4096

// MinBufferSize bounds how small the buffer may be configured; below this
// the refill overhead dominates and backward scanning degenerates.
const MinBufferSize = 16

// RewindMode selects how backward repositioning is performed on seekable
// streams.
type RewindMode int

const (
	// RewindAuto picks backward scanning when it is cheaper than
	// rescanning from the start, and a full rewind otherwise.
	RewindAuto RewindMode = iota
	// RewindFull always rewinds to the start of the stream.
	RewindFull
	// RewindBackscan always scans backward. Both forced modes exist so
	// the two strategies can be compared for identical output.
	RewindBackscan
)

// Window is one fragment of a line, viewing the reader's internal buffer.
// It is valid only until the next call into the reader: a refill reuses the
// same backing array.
type Window struct {
	Data    []byte
	LineNum uint64 // 1-based number of the line this fragment belongs to
	Start   bool   // fragment is the first of its line
	EOL     bool   // fragment ends with a newline byte
}

// LineReader turns a Source into a sequence of line windows over a single
// fixed-size buffer. Seekable sources are refilled with bulk reads; pipes
// are read byte by byte up to the next newline, so that a bulk read can
// never block on data that is not needed yet. Lines may contain NUL bytes.
type LineReader struct {
	src Source
	buf []byte

	pos   int   // next unconsumed byte in buf
	limit int   // end of valid data in buf
	off   int64 // stream offset just past buf[limit-1]

	newlines    uint64 // newline bytes before the next unconsumed byte
	atLineStart bool
	sawEOF      bool
}

// NewLineReader creates a reader over src with the given buffer size.
// Sizes below MinBufferSize (including zero) fall back to DefaultBufferSize.
func NewLineReader(src Source, size int) *LineReader {
	if size < MinBufferSize {
		size = DefaultBufferSize
	}
	return &LineReader{
		src:         src,
		buf:         make([]byte, size),
		atLineStart: true,
	}
}

// CurrentLine returns the number of the last line the reader has touched,
// or 0 before any data has been read.
func (r *LineReader) CurrentLine() uint64 {
	if r.atLineStart {
		return r.newlines
	}
	return r.newlines + 1
}

// Next returns the next window of unread bytes: everything up to and
// including the next newline, or to the end of the buffered data if the
// line continues past it. It returns io.EOF once the stream is exhausted.
func (r *LineReader) Next() (Window, error) {
	if r.pos == r.limit {
		if err := r.fill(); err != nil {
			return Window{}, err
		}
	}
	w := Window{
		LineNum: r.newlines + 1,
		Start:   r.atLineStart,
	}
	end := r.limit
	if k := bytes.IndexByte(r.buf[r.pos:r.limit], '\n'); k >= 0 {
		end = r.pos + k + 1
		w.EOL = true
	}
	w.Data = r.buf[r.pos:end]
	r.pos = end
	if w.EOL {
		r.newlines++
		r.atLineStart = true
	} else {
		r.atLineStart = false
	}
	return w, nil
}

// Reposition prepares the reader so that forward scanning will reach the
// start of the target line, which must not be ahead of the current one.
// The stream must be seekable. RewindAuto scans backward only when the
// distance exceeds threshold lines and the target lies in the second half
// of the lines read so far; otherwise it rewinds fully.
func (r *LineReader) Reposition(target uint64, mode RewindMode, threshold uint64) error {
	if !r.src.CanSeek() {
		return ErrNotSeekable
	}
	cur := r.newlines + 1
	back := mode == RewindBackscan
	if mode == RewindAuto && target <= cur {
		dist := cur - target
		back = dist > threshold && dist < cur/2
	}
	if back {
		return r.backscan(target)
	}
	return r.Rewind()
}

// Rewind seeks the stream to its start and resets all position state.
func (r *LineReader) Rewind() error {
	if err := r.src.SeekStart(); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	r.reset(0, 0)
	return nil
}

// backscan seeks backward one buffer width at a time, counting newline
// bytes in each reloaded chunk, until the line under the read position is
// strictly before target. Forward scanning then attributes the remaining
// lines exactly as a full rewind would. A failing backward seek falls back
// to Rewind.
func (r *LineReader) backscan(target uint64) error {
	logical := r.off - int64(r.limit-r.pos)
	streamPos := r.off
	nl := r.newlines

	for nl+1 >= target && logical > 0 {
		step := int64(len(r.buf))
		if step > logical {
			step = logical
		}
		logical -= step
		if _, err := r.src.SeekBackward(streamPos - logical); err != nil {
			return r.Rewind()
		}
		width, err := safecast.Conv[int](step)
		if err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		chunk := r.buf[:width]
		if _, err := io.ReadFull(r.src, chunk); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		streamPos = logical + step
		nl -= uint64(countByte(chunk, '\n'))
	}

	if _, err := r.src.SeekBackward(streamPos - logical); err != nil {
		return r.Rewind()
	}
	r.reset(logical, nl)
	return nil
}

func (r *LineReader) reset(off int64, newlines uint64) {
	r.pos, r.limit = 0, 0
	r.off = off
	r.newlines = newlines
	r.atLineStart = off == 0
	r.sawEOF = false
}

func (r *LineReader) fill() error {
	if r.sawEOF {
		return io.EOF
	}
	r.pos, r.limit = 0, 0
	var n int
	var err error
	if r.src.CanSeek() {
		for {
			n, err = r.src.Read(r.buf)
			if n > 0 || err != nil {
				break
			}
		}
	} else {
		n, err = readLine(r.src, r.buf)
	}
	r.limit = n
	r.off += int64(n)
	if err == io.EOF {
		r.sawEOF = true
		if n == 0 {
			return io.EOF
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		r.sawEOF = true
		return io.EOF
	}
	return nil
}

// readLine reads from src one byte at a time until a newline is seen, buf
// fills up, or the stream ends. Reading past the newline would block on an
// interactive pipe, so it never does.
func readLine(src io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := src.Read(buf[n : n+1])
		if m > 0 {
			n++
			if buf[n-1] == '\n' {
				return n, nil
			}
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// countByte reports how many times b occurs in p. Any word-parallel or SIMD
// acceleration lives behind bytes.Count; this wrapper is the single place
// newline counting goes through.
func countByte(p []byte, b byte) int {
	return bytes.Count(p, []byte{b})
}
