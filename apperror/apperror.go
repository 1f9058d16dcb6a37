package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies business-rule failures so the HTTP layer can pick a status code.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindConflict            Kind = "CONFLICT"
	KindRoomNotAvailable    Kind = "ROOM_NOT_AVAILABLE"
	KindGenerationExhausted Kind = "GENERATION_EXHAUSTED"
	KindValidation          Kind = "VALIDATION_ERROR"
	KindInvalidTransition   Kind = "INVALID_TRANSITION"
	KindInternal            Kind = "INTERNAL_ERROR"
)

// Error is a typed business error. Store failures are never wrapped in it.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports kind equality, so errors.Is(err, ErrNotFound) matches any
// not-found error regardless of message. A room-availability conflict also
// matches ErrConflict.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindConflict && e.Kind == KindRoomNotAvailable
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "conflict"}
	ErrRoomNotAvailable    = &Error{Kind: KindRoomNotAvailable, Message: "room not available"}
	ErrGenerationExhausted = &Error{Kind: KindGenerationExhausted, Message: "code generation exhausted"}
	ErrValidation          = &Error{Kind: KindValidation, Message: "validation error"}
	ErrInvalidTransition   = &Error{Kind: KindInvalidTransition, Message: "invalid transition"}
)

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return &Error{Kind: KindForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func RoomNotAvailable() *Error {
	return &Error{Kind: KindRoomNotAvailable, Message: "Room is not available for selected dates"}
}

func GenerationExhausted() *Error {
	return &Error{Kind: KindGenerationExhausted, Message: "Failed to generate unique code"}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func InvalidTransition(from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: "cannot change booking status from " + from + " to " + to}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict, KindRoomNotAvailable, KindInvalidTransition:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindGenerationExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
