package dmesg

import (
	"errors"
	"fmt"
)

// ErrNoOpenBuffer reports a data line that arrived before any header line,
// which means the start of the capture was lost.
var ErrNoOpenBuffer = errors.New("data line with no open buffer")

// OffsetMismatchError reports a data line whose declared offset disagrees
// with the data accumulated for the buffer so far. The capture was truncated
// or reordered and the conversion cannot continue.
type OffsetMismatchError struct {
	Expected uint32
	Got      uint32
	Line     string
}

func (e *OffsetMismatchError) Error() string {
	return fmt.Sprintf("offset mismatch: expected %08x, got %08x (log truncated?), line: %q",
		e.Expected, e.Got, e.Line)
}

// MalformedNumberError reports a captured token that failed to parse as a
// 32-bit hex value.
type MalformedNumberError struct {
	Token string
	Line  string
	err   error
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed hex value %q in line %q: %v", e.Token, e.Line, e.err)
}

func (e *MalformedNumberError) Unwrap() error {
	return e.err
}
