package types

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that no provider has a record for the
// requested vault.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// UnsupportedError indicates a chain or provider that is not enabled.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string {
	return e.Message
}

func NewUnsupportedError(format string, args ...any) error {
	return &UnsupportedError{Message: fmt.Sprintf(format, args...)}
}

func IsUnsupportedError(err error) bool {
	var target *UnsupportedError
	return errors.As(err, &target)
}

// InvalidError indicates malformed input: a bad address, a non-numeric
// amount, an unknown action or variant. Never retried.
type InvalidError struct {
	Message string
}

func (e *InvalidError) Error() string {
	return e.Message
}

func NewInvalidError(format string, args ...any) error {
	return &InvalidError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidError(err error) bool {
	var target *InvalidError
	return errors.As(err, &target)
}

// UpstreamError indicates that an external call failed after retries.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(err error, format string, args ...any) error {
	return &UpstreamError{Message: fmt.Sprintf(format, args...), Err: err}
}

func IsUpstreamError(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsRetriable reports whether a failed call may be retried. Validation
// and not-found failures are definitive.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	return !IsNotFoundError(err) && !IsInvalidError(err) && !IsUnsupportedError(err)
}
