// Package errs wraps a base error (for errors.Is/errors.As) with formatted,
// call-site-specific context, used for the fatal conditions this module
// reports: malformed CLI input and prime table exhaustion. ErrOverflow
// names composite overflow faults; the composite's division pre-check
// prevents them, and no code path returns it.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel base errors for errors.Is checks.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrPrimeTableExhausted = errors.New("prime table exhausted")
	ErrOverflow         = errors.New("arithmetic overflow")
)

// Error wraps a base error with a formatted, call-site-specific context
// string.
type Error struct {
	Err error
	Ctx string
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Error() string {
	return e.Err.Error() + " [" + e.Ctx + "]"
}

// New creates an Error wrapping err with a formatted context.
func New(err error, format string, args ...interface{}) *Error {
	return &Error{Err: err, Ctx: fmt.Sprintf(format, args...)}
}
