// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package shim

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBool(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "false"},
		{1, "true"},
		{-5, "true"},
		{math.MaxInt64, "true"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		s := New(strings.NewReader(""), &out)
		s.PrintBool(tt.in)
		assert.Equal(t, tt.want, out.String(), "PrintBool(%d)", tt.in)
	}
}

func TestPrintInt(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{-42, "-42"},
		{123456789, "123456789"},
		{math.MinInt64, "-9223372036854775808"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		s := New(strings.NewReader(""), &out)
		s.PrintInt(tt.in)
		assert.Equal(t, tt.want, out.String())
	}
}

func TestPrintString(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)

	s.PrintString("")
	assert.Empty(t, out.String())

	s.PrintString("abc")
	s.PrintString(" def\n")
	assert.Equal(t, "abc def\n", out.String())
}

func TestPrintFlushesEveryCall(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriterSize(&out, 4096)
	s := New(strings.NewReader(""), w)

	s.PrintInt(7)
	assert.Equal(t, "7", out.String(), "output should reach the underlying writer immediately")

	s.PrintBool(0)
	assert.Equal(t, "7false", out.String())

	s.PrintString("")
	assert.Equal(t, "7false", out.String())
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0\n", 0},
		{"1\n", 1},
		{"9\n", 1},
		{"x\n", 1},
		{"", 1},
	}
	for _, tt := range tests {
		s := New(strings.NewReader(tt.input), &bytes.Buffer{})
		assert.Equal(t, tt.want, s.GetBool(), "GetBool(%q)", tt.input)
		assert.NoError(t, s.Err())
	}
}

func TestGetBoolConsumesOneTrailingByte(t *testing.T) {
	s := New(strings.NewReader("0\n1\n0x"), &bytes.Buffer{})
	assert.Equal(t, int64(0), s.GetBool())
	assert.Equal(t, int64(1), s.GetBool())
	assert.Equal(t, int64(0), s.GetBool())
}

func TestGetBoolWithoutNewlineEatsNextValue(t *testing.T) {
	// "01\n" is read as '0' with '1' discarded; the newline becomes the next value.
	s := New(strings.NewReader("01\n"), &bytes.Buffer{})
	assert.Equal(t, int64(0), s.GetBool())
	assert.Equal(t, int64(1), s.GetBool())
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42\n", 42},
		{"abc\n", 0},
		{"-7\n", -7},
		{"+15\n", 15},
		{"   12\n", 12},
		{"\t-3\n", -3},
		{"12abc\n", 12},
		{"1 2\n", 1},
		{"-\n", 0},
		{"\n", 0},
		{"", 0},
		{"77", 77},
		{"9223372036854775807\n", math.MaxInt64},
		{"-9223372036854775808\n", math.MinInt64},
		{"9223372036854775808\n", math.MaxInt64},
		{"-99999999999999999999\n", math.MinInt64},
	}
	for _, tt := range tests {
		s := New(strings.NewReader(tt.input), &bytes.Buffer{})
		assert.Equal(t, tt.want, s.GetInt(), "GetInt(%q)", tt.input)
	}
}

func TestGetIntReadsOneLine(t *testing.T) {
	s := New(strings.NewReader("42\n-7\nabc\n"), &bytes.Buffer{})
	assert.Equal(t, int64(42), s.GetInt())
	assert.Equal(t, int64(-7), s.GetInt())
	assert.Equal(t, int64(0), s.GetInt())
	assert.Equal(t, int64(0), s.GetInt())
}

func TestGetIntLeavesOverflowInStream(t *testing.T) {
	line := strings.Repeat("1", LineMax) + "234\n"
	s := New(strings.NewReader(line), &bytes.Buffer{})

	// The first 31 digits overflow int64 and saturate.
	assert.Equal(t, int64(math.MaxInt64), s.GetInt())
	assert.Equal(t, int64(234), s.GetInt())
}

func TestGetIntExactlyLineMax(t *testing.T) {
	// 30 spaces and a digit fill the buffer; the newline is left behind.
	line := strings.Repeat(" ", LineMax-1) + "5\n8\n"
	s := New(strings.NewReader(line), &bytes.Buffer{})
	assert.Equal(t, int64(5), s.GetInt())
	assert.Equal(t, int64(0), s.GetInt())
	assert.Equal(t, int64(8), s.GetInt())
}

func TestMixedReadsShareInput(t *testing.T) {
	s := New(strings.NewReader("1\n42\n0\n-3\n"), &bytes.Buffer{})
	assert.Equal(t, int64(1), s.GetBool())
	assert.Equal(t, int64(42), s.GetInt())
	assert.Equal(t, int64(0), s.GetBool())
	assert.Equal(t, int64(-3), s.GetInt())
}

func TestNewReusesBufferedReader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("5\n6\n"))
	_, err := br.Peek(1)
	require.NoError(t, err)

	s := New(br, &bytes.Buffer{})
	assert.Equal(t, int64(5), s.GetInt())
	assert.Equal(t, int64(6), New(br, &bytes.Buffer{}).GetInt())
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

type failingReader struct{ err error }

func (r failingReader) Read(p []byte) (int, error) { return 0, r.err }

func TestStickyError(t *testing.T) {
	boom := errors.New("boom")
	s := New(failingReader{err: boom}, failingWriter{err: errors.New("first")})

	s.PrintString("x")
	s.PrintInt(1)
	require.Error(t, s.Err())
	assert.Equal(t, "first", s.Err().Error())

	// Reads keep their contract value on failure.
	assert.Equal(t, int64(1), s.GetBool())
	assert.Equal(t, int64(0), s.GetInt())
	assert.Equal(t, "first", s.Err().Error())
}

func TestEOFIsNotAnError(t *testing.T) {
	s := New(strings.NewReader(""), &bytes.Buffer{})
	s.GetInt()
	s.GetBool()
	assert.NoError(t, s.Err())
}

func TestParseLong(t *testing.T) {
	assert.Equal(t, int64(0), ParseLong(nil))
	assert.Equal(t, int64(0), ParseLong([]byte{0, 0, 0}))
	assert.Equal(t, int64(10), ParseLong([]byte("10\x00\x00")))
	assert.Equal(t, int64(-1), ParseLong([]byte("\v\f\r-1")))
	assert.Equal(t, int64(0), ParseLong([]byte("+-1")))
}
