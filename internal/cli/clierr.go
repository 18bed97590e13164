package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the repopulse command.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCoder is implemented by errors that choose the process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError carries an explicit process exit code and supports errors.Is/As
// through its cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// NewExitError creates an ExitError with a message. Codes below 1 become 1.
func NewExitError(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// WrapExitError creates an ExitError around cause.
func WrapExitError(code int, msg string, cause error) error {
	if cause == nil {
		return NewExitError(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

func normalize(code int) int {
	if code <= 0 {
		return ExitFailure
	}
	return code
}
