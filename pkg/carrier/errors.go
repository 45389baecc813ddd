package carrier

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the four failure families that may
// cross a component boundary. No other failure type escapes this package or
// a carrier implementation.
type Kind string

const (
	// KindValidation marks malformed or incomplete input, an unknown carrier
	// name, or a carrier-specific address rejection.
	KindValidation Kind = "validation"

	// KindAuth marks token acquisition failure before the rate call executes.
	KindAuth Kind = "auth"

	// KindNetwork marks a transport-level failure or timeout during the rate
	// call itself.
	KindNetwork Kind = "network"

	// KindRate marks a reachable API that rejected the request or returned a
	// body that could not be parsed.
	KindRate Kind = "rate"
)

// Error is the normalized error for all carrier operations.
type Error struct {
	Kind       Kind
	Carrier    string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := string(e.Kind)
	if e.Carrier != "" {
		prefix = e.Carrier + " " + prefix
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is; two carrier errors match when their kinds match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewValidationError creates a validation-kind error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewAuthError creates an auth-kind error for a carrier.
func NewAuthError(carrier, message string) *Error {
	return &Error{Kind: KindAuth, Carrier: carrier, Message: message}
}

// NewNetworkError creates a network-kind error for a carrier.
func NewNetworkError(carrier, message string) *Error {
	return &Error{Kind: KindNetwork, Carrier: carrier, Message: message}
}

// NewRateError creates a rate-kind error for a carrier.
func NewRateError(carrier, message string) *Error {
	return &Error{Kind: KindRate, Carrier: carrier, Message: message}
}

// WithCause adds a wrapped cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithStatusCode adds the HTTP status received, when one was.
func (e *Error) WithStatusCode(code int) *Error {
	e.StatusCode = code
	return e
}

// WithCarrier sets the carrier the error originated from.
func (e *Error) WithCarrier(name string) *Error {
	e.Carrier = name
	return e
}

// KindOf returns the kind of err, or the empty Kind for foreign errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation-kind error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsAuth reports whether err is an auth-kind error.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsNetwork reports whether err is a network-kind error.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// IsRate reports whether err is a rate-kind error.
func IsRate(err error) bool { return KindOf(err) == KindRate }
