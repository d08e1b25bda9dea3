package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hisahi/lrg/internal/output"
)

// brokenWriter refuses every write, like a closed downstream pipe.
type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

// shortWriter accepts only the first byte of each write.
type shortWriter struct {
	buf bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	w.buf.WriteByte(p[0])
	return 1, nil
}

func TestWriterDecorations(t *testing.T) {
	var buf bytes.Buffer
	w := output.NewWriter(&buf, 0, false)

	if err := w.FileHeader("notes.txt"); err != nil {
		t.Fatalf("FileHeader() error = %v", err)
	}
	if err := w.LineNumber(42); err != nil {
		t.Fatalf("LineNumber() error = %v", err)
	}
	if err := w.Chunk([]byte("hello\n")); err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}

	want := "notes.txt\n     42   hello\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriterCustomNumberWidth(t *testing.T) {
	var buf bytes.Buffer
	w := output.NewWriter(&buf, 3, false)
	if err := w.LineNumber(7); err != nil {
		t.Fatalf("LineNumber() error = %v", err)
	}
	if got, want := buf.String(), "  7   "; got != want {
		t.Errorf("number field = %q, want %q", got, want)
	}
}

func TestWriterReportsWriteError(t *testing.T) {
	w := output.NewWriter(brokenWriter{}, 0, false)
	err := w.Chunk([]byte("x"))
	var werr *output.WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Chunk() error = %T (%v), want *WriteError", err, err)
	}
	if err := w.FileHeader("f"); !errors.As(err, &werr) {
		t.Errorf("FileHeader() error = %T, want *WriteError", err)
	}
	if err := w.LineNumber(1); !errors.As(err, &werr) {
		t.Errorf("LineNumber() error = %T, want *WriteError", err)
	}
}

func TestWriterShortWriteFails(t *testing.T) {
	w := output.NewWriter(&shortWriter{}, 0, false)
	err := w.Chunk([]byte("ab"))
	var werr *output.WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Chunk() error = %T (%v), want *WriteError", err, err)
	}
}
