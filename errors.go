package utrace

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow reports that the destination buffer could not hold the
	// rendered output. Bytes written before the overflow remain valid.
	ErrOverflow = errors.New("utrace: output buffer overflow")
	// ErrMissingArg reports a conversion that found no argument left to
	// consume.
	ErrMissingArg = errors.New("utrace: missing argument")
	// ErrArgKind reports an argument whose kind cannot feed the conversion.
	ErrArgKind = errors.New("utrace: argument kind mismatch")
	// ErrBadConfig reports a malformed UTRACE or UTRACE_SIGNAL value.
	ErrBadConfig = errors.New("utrace: malformed trace configuration")
)

// RenderError carries the offset and verb of the conversion that failed.
type RenderError struct {
	Offset int
	Verb   byte
	Err    error
}

func (e *RenderError) Error() string {
	if e.Verb == 0 {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d (%%%c)", e.Err, e.Offset, e.Verb)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
