package linerange

import (
	"math"
	"strconv"
)

// Parse converts a range specification such as "3-5,8~2,120-" into a Table.
//
// The grammar is a comma-separated list of clauses:
//
//	N     the single line N
//	N-    lines N through the end of the stream
//	N-M   lines N through M (inclusive); reversed endpoints are swapped
//	N~    lines around N, default radius 3
//	N~M   lines N-M through N+M, with the lower bound clamped to 1
//
// Line numbers start at 1. Whitespace around numbers is tolerated. A decimal
// literal that overflows, or an N+M sum that overflows, is a parse error.
// On failure the returned error is a *ParseError carrying the remainder of
// the specification from the clause that failed.
func Parse(spec string) (Table, error) {
	tab := make(Table, 0, initialTableCap)
	i := 0
	for i < len(spec) {
		start := i

		first, next, ok, err := number(spec, i)
		if err != nil || !ok || first == 0 {
			return nil, &ParseError{Rest: spec[start:]}
		}
		i = next

		var last uint64
		switch {
		case i < len(spec) && spec[i] == '-':
			last, i, ok, err = number(spec, i+1)
			if err != nil {
				return nil, &ParseError{Rest: spec[start:]}
			}
			if !ok {
				// "N-" means until end of stream.
				last = Max
			} else if last == 0 {
				return nil, &ParseError{Rest: spec[start:]}
			}
			if first > last {
				first, last = last, first
			}

		case i < len(spec) && spec[i] == '~':
			var radius uint64
			radius, i, ok, err = number(spec, i+1)
			if err != nil {
				return nil, &ParseError{Rest: spec[start:]}
			}
			if !ok {
				radius = defaultRadius
			}
			if first > math.MaxUint64-radius {
				return nil, &ParseError{Rest: spec[start:]}
			}
			last = first + radius
			if first > radius {
				first = first - radius
			} else {
				first = 1
			}

		default:
			last = first
		}

		if i < len(spec) {
			if spec[i] != ',' {
				return nil, &ParseError{Rest: spec[start:]}
			}
			i++
		}

		if first > last {
			continue
		}
		tab = append(tab, Range{First: first, Last: last, Text: spec[start:]})
	}
	return tab, nil
}

// number scans an optional decimal literal at spec[i:], skipping whitespace
// on both sides. ok is false when no digits were present; err is non-nil
// when the literal does not fit in a uint64.
func number(spec string, i int) (val uint64, next int, ok bool, err error) {
	i = skipSpace(spec, i)
	j := i
	for j < len(spec) && spec[j] >= '0' && spec[j] <= '9' {
		j++
	}
	if j == i {
		return 0, i, false, nil
	}
	val, err = strconv.ParseUint(spec[i:j], 10, 64)
	if err != nil {
		return 0, j, true, err
	}
	return val, skipSpace(spec, j), true, nil
}

func skipSpace(spec string, i int) int {
	for i < len(spec) && (spec[i] == ' ' || spec[i] == '\t') {
		i++
	}
	return i
}
