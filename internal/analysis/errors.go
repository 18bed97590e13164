package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis could not be produced.
type ErrorKind string

const (
	// InvalidFormat means the input never reached the network.
	InvalidFormat ErrorKind = "invalid_format"
	// TransportError means the collaborator could not be reached.
	TransportError ErrorKind = "transport_error"
	// RemoteError means the collaborator answered with a non-2xx status.
	RemoteError ErrorKind = "remote_error"
	// MalformedResponse means a 2xx body did not match AnalysisResult.
	MalformedResponse ErrorKind = "malformed_response"
)

// GenericErrorMessage is used when no better message is available.
const GenericErrorMessage = "An error occurred"

// Sentinels for errors.Is checks against an *Error of the matching kind.
var (
	ErrInvalidFormat     = errors.New("invalid format")
	ErrTransport         = errors.New("transport error")
	ErrRemote            = errors.New("remote error")
	ErrMalformedResponse = errors.New("malformed response")
)

var sentinels = map[ErrorKind]error{
	InvalidFormat:     ErrInvalidFormat,
	TransportError:    ErrTransport,
	RemoteError:       ErrRemote,
	MalformedResponse: ErrMalformedResponse,
}

// Error is the single error type produced by request parsing and the web client.
// Message is always safe to show to a user.
type Error struct {
	Kind    ErrorKind
	Message string
	// Status is the HTTP status for RemoteError and MalformedResponse, 0 otherwise.
	Status int
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// UserMessage picks the message shown to the user: the *Error message when
// present, the raw error text otherwise, and GenericErrorMessage as the last
// resort.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
