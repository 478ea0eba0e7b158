package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse marks a response that violates the listing contract.
// It is fatal to the current operation and never retried.
var ErrMalformedResponse = errors.New("malformed response")

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// Kind classifies a failure returned by the catalog API or the transport.
type Kind int

const (
	Transient Kind = iota
	Unauthenticated
	InvalidCredentials
	Forbidden
	Conflict
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case InvalidCredentials:
		return "invalid_credentials"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// KindForStatus maps an HTTP status code to a Kind.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return Unauthenticated
	case http.StatusForbidden:
		return Forbidden
	case http.StatusConflict:
		return Conflict
	case http.StatusNotFound:
		return NotFound
	default:
		return Transient
	}
}

// APIError is a non-2xx response or a transport failure.
// Status is zero when the request never produced a response.
type APIError struct {
	Kind    Kind
	Status  int
	Path    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Path, e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Path, e.Kind, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewStatus builds an APIError classified from the response status.
func NewStatus(path string, status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("Request failed: %d", status)
	}
	return &APIError{
		Kind:    KindForStatus(status),
		Status:  status,
		Path:    path,
		Message: message,
	}
}

// NewTransport wraps a failure that happened before a response was read.
func NewTransport(path string, err error) *APIError {
	return &APIError{Kind: Transient, Path: path, Err: err}
}

// KindOf returns the kind of the first APIError in the chain,
// or Transient when there is none.
func KindOf(err error) Kind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Transient
}

// Is reports whether err carries an APIError of the given kind.
func Is(err error, kind Kind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == kind
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ServerMessage returns the message sent by the API, if any.
func ServerMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Message
	}
	return ""
}
