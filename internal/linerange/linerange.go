package linerange

import (
	"fmt"
	"math"
)

// Max is the sentinel upper bound for open-ended ranges ("N-"): the range
// runs until the end of the stream.
const Max = math.MaxUint64

// defaultRadius is the number of lines shown on each side of N for a bare
// "N~" clause.
const defaultRadius = 3

// initialTableCap is the capacity a Table starts out with; most invocations
// name only a handful of ranges.
const initialTableCap = 8

// Range is a closed interval [First, Last] of 1-based line numbers.
// Text holds the clause as it appeared in the specification (through the end
// of the spec string), kept only for diagnostics.
type Range struct {
	First uint64
	Last  uint64
	Text  string
}

// Open reports whether the range runs to the end of the stream.
func (r Range) Open() bool {
	return r.Last == Max
}

// Table is an ordered sequence of ranges, in the order they were written.
// Ranges are never sorted or merged; a Table is built once by Parse and is
// read-only afterwards.
type Table []Range

// ParseError reports a malformed range specification. Rest is the unparsed
// remainder of the specification, starting at the clause that failed.
type ParseError struct {
	Rest string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid range -- '%s'", e.Rest)
}
