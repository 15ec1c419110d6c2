// SPDX-License-Identifier: MPL-2.0

package waiter

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedScheme is the sentinel wrapped by UnsupportedSchemeError.
var ErrUnsupportedScheme = errors.New("unsupported check scheme")

// ErrBadURL is the sentinel wrapped by BadURLError.
var ErrBadURL = errors.New("bad check url")

// ErrDeadlineExceeded is the sentinel wrapped by DeadlineExceededError.
var ErrDeadlineExceeded = errors.New("deadline exceeded")

// UnsupportedSchemeError reports a check URL whose scheme is none of
// http, https, file, or shell. It is a construction-time, terminal error.
type UnsupportedSchemeError struct {
	Scheme string
	URL    string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("Scheme '%s' not supported: %s", e.Scheme, e.URL)
}

func (e *UnsupportedSchemeError) Unwrap() error { return ErrUnsupportedScheme }

// BadURLError reports a check URL that could not be parsed, or that is
// missing a scheme entirely. It is a construction-time, terminal error.
type BadURLError struct {
	URL string
	Err error
}

func (e *BadURLError) Error() string {
	return fmt.Sprintf("bad url %q: %v", e.URL, e.Err)
}

// Unwrap returns both ErrBadURL and the underlying cause, so errors.Is
// matches either.
func (e *BadURLError) Unwrap() []error { return []error{ErrBadURL, e.Err} }

// DeadlineExceededError reports a probe that never passed before its
// deadline.
type DeadlineExceededError struct {
	URL     string
	Elapsed time.Duration
}

func (e *DeadlineExceededError) Error() string {
	return fmt.Sprintf("Deadline exceeded (%s elapsed): %s", e.Elapsed, e.URL)
}

func (e *DeadlineExceededError) Unwrap() error { return ErrDeadlineExceeded }

// CommandError reports a shell:// probe command that could not be run or
// exited nonzero. The polling driver swallows this as "not yet ready" on
// every iteration; it exists so the swallowed cause can still be logged.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
