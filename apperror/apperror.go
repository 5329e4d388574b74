// Package apperror classifies the failures a request can end with so the HTTP
// layer can turn them into status codes without inspecting messages.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind is the class of an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// StatusCode returns the HTTP status a kind is reported with.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	case KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a message safe to show to the caller and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) error   { return newError(KindValidation, msg, nil) }
func Unauthorized(msg string) error { return newError(KindUnauthorized, msg, nil) }
func Forbidden(msg string) error    { return newError(KindForbidden, msg, nil) }
func NotFound(msg string) error     { return newError(KindNotFound, msg, nil) }
func Conflict(msg string) error     { return newError(KindConflict, msg, nil) }
func InvalidState(msg string) error { return newError(KindInvalidState, msg, nil) }

// Transport wraps a failure talking to an external system such as the file store.
func Transport(msg string, err error) error { return newError(KindTransport, msg, err) }

// Internal wraps an unexpected failure. The cause is logged, never shown.
func Internal(msg string, err error) error { return newError(KindInternal, msg, err) }

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error!"
}
