// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package shim implements the console primitives called by compiled
// Drewno Mars programs.
//
// The primitives follow a fixed-format contract: malformed input yields a
// degraded value, never an error. I/O failures are kept as a sticky error
// that Go callers can inspect with Err.
package shim

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
)

// LineMax is the number of bytes GetInt reads at most for one value.
// The remainder of a longer line stays in the input stream.
const LineMax = 31

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Shim holds the input and output streams shared by all primitives.
type Shim struct {
	in  *bufio.Reader
	out io.Writer
	err error
}

// New creates a Shim reading from r and writing to w. If r is already a
// *bufio.Reader it is used as is so that buffered input is not lost.
func New(r io.Reader, w io.Writer) *Shim {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Shim{in: br, out: w}
}

// Err returns the first I/O error encountered, ignoring io.EOF.
func (s *Shim) Err() error {
	return s.err
}

func (s *Shim) setErr(err error) {
	if err == nil || errors.Is(err, io.EOF) {
		return
	}
	if s.err == nil {
		s.err = err
	}
}

// write emits text and flushes it before returning.
func (s *Shim) write(text string) {
	if text != "" {
		_, err := io.WriteString(s.out, text)
		s.setErr(err)
	}
	if f, ok := s.out.(flusher); ok {
		s.setErr(f.Flush())
	}
}

// PrintBool writes "true" for any nonzero value and "false" for zero.
func (s *Shim) PrintBool(v int64) string {
	text := FormatBool(v)
	s.write(text)
	return text
}

// PrintInt writes the decimal representation of v.
func (s *Shim) PrintInt(v int64) string {
	text := strconv.FormatInt(v, 10)
	s.write(text)
	return text
}

// PrintString writes text verbatim.
func (s *Shim) PrintString(text string) string {
	s.write(text)
	return text
}

// GetBool reads one byte and returns 0 if it is '0', otherwise 1. One more
// byte, normally the trailing newline, is consumed and discarded.
func (s *Shim) GetBool() int64 {
	c, err := s.in.ReadByte()
	if err != nil {
		s.setErr(err)
		return 1
	}
	if _, err := s.in.ReadByte(); err != nil {
		s.setErr(err)
	}
	if c == '0' {
		return 0
	}
	return 1
}

// GetInt reads at most LineMax bytes, stopping after a newline, and parses
// them with ParseLong.
func (s *Shim) GetInt() int64 {
	var buf [LineMax + 1]byte
	n := 0
	for n < LineMax {
		c, err := s.in.ReadByte()
		if err != nil {
			s.setErr(err)
			break
		}
		buf[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	return ParseLong(buf[:n])
}

// FormatBool returns the text PrintBool writes for v.
func FormatBool(v int64) string {
	if v == 0 {
		return "false"
	}
	return "true"
}

// ParseLong converts b the way C's atol does: leading whitespace is
// skipped, an optional sign is accepted, and digits are consumed up to the
// first non-digit. No digits yields 0. Out-of-range values saturate.
func ParseLong(b []byte) int64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}

	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}

	// Accumulate as a negative number so MinInt64 is representable.
	var acc int64
	overflow := false
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		d := int64(b[i] - '0')
		if overflow {
			continue
		}
		if acc < (math.MinInt64+d)/10 {
			overflow = true
			continue
		}
		acc = acc*10 - d
	}

	switch {
	case overflow && neg:
		return math.MinInt64
	case overflow:
		return math.MaxInt64
	case neg:
		return acc
	case acc == math.MinInt64:
		return math.MaxInt64
	default:
		return -acc
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
