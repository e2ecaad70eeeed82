package service

import (
	"errors"
	"fmt"

	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/moderation"
)

// Kind classifies a service failure. The HTTP layer maps each kind to one status code.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	}
	return "internal"
}

// Error carries a message that is safe to show to the caller. The wrapped
// cause is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: KindForbidden, Message: msg} }
func Conflict(msg string) error        { return &Error{Kind: KindConflict, Message: msg} }
func Validation(msg string) error      { return &Error{Kind: KindValidation, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Message: msg} }

// Internal hides err behind a generic message.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// PublicMessage is what the caller may see for err.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "internal server error"
}

// storeError folds a repository or policy error into the taxonomy.
// entity names the resource in the not-found and stale-write messages.
func storeError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var se *Error
	switch {
	case errors.As(err, &se):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(entity + " not found")
	case errors.Is(err, repository.ErrDuplicate):
		return Conflict(entity + " already exists")
	case errors.Is(err, repository.ErrStaleVersion):
		return Conflict(entity + " was modified by another request, reload and retry")
	case errors.Is(err, moderation.ErrForbidden):
		return &Error{Kind: KindForbidden, Message: err.Error()}
	}
	return Internal(err)
}
