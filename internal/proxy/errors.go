package proxy

import (
	"errors"
	"net/http"
)

// Kind classifies a terminal pipeline failure
type Kind string

const (
	KindInvalidURL             Kind = "INVALID_URL"
	KindUnsupportedContentType Kind = "UNSUPPORTED_CONTENT_TYPE"
	KindFetch                  Kind = "FETCH_ERROR"
	KindTransform              Kind = "TRANSFORM_ERROR"
)

// Messages surfaced to callers
const (
	MsgURLRequired        = "URL is required"
	MsgInvalidURL         = "Invalid URL"
	MsgInvalidContentType = "Invalid content type"
	msgFetchPrefix        = "Failed to fetch content: "
)

var (
	ErrURLRequired        = &Error{Kind: KindInvalidURL, Message: MsgURLRequired}
	ErrInvalidURL         = &Error{Kind: KindInvalidURL, Message: MsgInvalidURL}
	ErrInvalidContentType = &Error{Kind: KindUnsupportedContentType, Message: MsgInvalidContentType}
)

// Error is a terminal pipeline error carrying its classification
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Stage   State
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind and message, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// HTTPStatus maps the error kind to a response status
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidURL, KindUnsupportedContentType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewFetchError wraps a transport failure. The message includes the cause text.
func NewFetchError(cause error) *Error {
	msg := msgFetchPrefix
	if cause != nil {
		msg += cause.Error()
	}
	return &Error{Kind: KindFetch, Message: msg, Cause: cause}
}

// at returns a copy of e recorded against the stage it failed in
func (e *Error) at(stage State) *Error {
	cp := *e
	cp.Stage = stage
	return &cp
}

// IsKind reports whether err is a pipeline error of the given kind
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// AsError converts any error into a pipeline error, treating unknown errors as fetch failures
func AsError(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return NewFetchError(err)
}
