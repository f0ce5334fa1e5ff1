package models

import (
	"fmt"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindForbidden     ErrorKind = "forbidden"
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
)

// GovernanceError is a failure the caller can act on. Two errors match with
// errors.Is when their kinds are equal.
type GovernanceError struct {
	Kind    ErrorKind
	Message string
}

func (e *GovernanceError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *GovernanceError) Is(target error) bool {
	t, ok := target.(*GovernanceError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation    = &GovernanceError{Kind: KindValidation}
	ErrNotFound      = &GovernanceError{Kind: KindNotFound}
	ErrConflict      = &GovernanceError{Kind: KindConflict}
	ErrForbidden     = &GovernanceError{Kind: KindForbidden}
	ErrConfiguration = &GovernanceError{Kind: KindConfiguration}
	ErrUpstream      = &GovernanceError{Kind: KindUpstream}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &GovernanceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

func NotFoundError(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func ConflictError(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

func ForbiddenError(format string, args ...any) error {
	return newError(KindForbidden, format, args...)
}

func ConfigurationError(format string, args ...any) error {
	return newError(KindConfiguration, format, args...)
}

func UpstreamError(format string, args ...any) error {
	return newError(KindUpstream, format, args...)
}
