package reader

import (
	"errors"
	"io"
)

// ErrNotSeekable is returned by the seek operations of a Source backed by a
// pipe or other non-repositionable stream.
var ErrNotSeekable = errors.New("stream is not seekable")

// Source is the stream capability surface the line reader depends on. It
// hides whether the underlying stream is a regular file or a pipe; callers
// must check CanSeek before relying on either seek operation.
type Source interface {
	io.Reader

	// CanSeek reports whether SeekStart and SeekBackward can succeed.
	CanSeek() bool

	// SeekStart rewinds the stream to its first byte.
	SeekStart() error

	// SeekBackward moves the read position n bytes backward, stopping at
	// the start of the stream when fewer than n bytes precede the current
	// position. It returns the new absolute offset.
	SeekBackward(n int64) (int64, error)
}

// NewSource wraps r in a Source, probing once whether the stream can seek.
// A stream counts as seekable when it implements io.Seeker and a relative
// seek of zero succeeds; a pipe-backed *os.File fails that probe at runtime.
func NewSource(r io.Reader) Source {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekCurrent); err == nil {
			return &fileSource{rs: rs}
		}
	}
	return &pipeSource{r: r}
}

type fileSource struct {
	rs io.ReadSeeker
}

func (s *fileSource) Read(p []byte) (int, error) { return s.rs.Read(p) }

func (s *fileSource) CanSeek() bool { return true }

func (s *fileSource) SeekStart() error {
	_, err := s.rs.Seek(0, io.SeekStart)
	return err
}

func (s *fileSource) SeekBackward(n int64) (int64, error) {
	cur, err := s.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if n > cur {
		n = cur
	}
	return s.rs.Seek(cur-n, io.SeekStart)
}

type pipeSource struct {
	r io.Reader
}

func (s *pipeSource) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *pipeSource) CanSeek() bool { return false }

func (s *pipeSource) SeekStart() error { return ErrNotSeekable }

func (s *pipeSource) SeekBackward(n int64) (int64, error) { return 0, ErrNotSeekable }
