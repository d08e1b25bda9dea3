// Package output writes extracted lines to their destination, optionally
// decorated with a right-aligned line-number field and per-stream file-name
// headers. Destination failures are reported as *WriteError so callers can
// tell a broken downstream pipe apart from a source read error.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// DefaultNumberWidth matches the original tool's 7-column line-number field.
const DefaultNumberWidth = 7

// numberGap separates the line-number field from the line content.
const numberGap = "   "

// WriteError wraps a failure of the output destination.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write output: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer emits line bytes and their optional decorations.
type Writer struct {
	dst         io.Writer
	numberWidth int
	colorize    bool

	numberColor *color.Color
	headerColor *color.Color
}

// NewWriter creates a Writer for dst. numberWidth <= 0 selects
// DefaultNumberWidth. When colorize is set, the line-number field and file
// headers are tinted; line content always passes through untouched.
func NewWriter(dst io.Writer, numberWidth int, colorize bool) *Writer {
	if numberWidth <= 0 {
		numberWidth = DefaultNumberWidth
	}
	return &Writer{
		dst:         dst,
		numberWidth: numberWidth,
		colorize:    colorize,
		numberColor: color.New(color.FgHiBlack),
		headerColor: color.New(color.Bold),
	}
}

// FileHeader writes the stream's display name on its own line.
func (w *Writer) FileHeader(name string) error {
	var err error
	if w.colorize {
		_, err = w.headerColor.Fprintln(w.dst, name)
	} else {
		_, err = fmt.Fprintln(w.dst, name)
	}
	if err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// LineNumber writes the right-aligned number field that precedes a line.
func (w *Writer) LineNumber(n uint64) error {
	var err error
	if w.colorize {
		_, err = w.numberColor.Fprintf(w.dst, "%*d", w.numberWidth, n)
		if err == nil {
			_, err = io.WriteString(w.dst, numberGap)
		}
	} else {
		_, err = fmt.Fprintf(w.dst, "%*d%s", w.numberWidth, n, numberGap)
	}
	if err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Chunk writes raw line bytes. The destination must accept the whole slice
// for the write to count as successful.
func (w *Writer) Chunk(p []byte) error {
	n, err := w.dst.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &WriteError{Err: err}
	}
	return nil
}
