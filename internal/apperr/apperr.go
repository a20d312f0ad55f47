// Package apperr defines the rejection taxonomy shared by the domain rules,
// the services that enforce them and the clients that consume them.
package apperr

import "errors"

type Kind string

const (
	KindGuardViolation     Kind = "guard_violation"
	KindCapacityExceeded   Kind = "capacity_exceeded"
	KindUniquenessConflict Kind = "uniqueness_conflict"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindTransientTransport Kind = "transient_transport"
	KindUnknown            Kind = "unknown"
)

// Error is a deterministic rejection carrying a stable code and a reason a
// person can act on.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Code so a rejection rebuilt from a wire response still
// satisfies errors.Is against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// KindOf reports the kind of err, KindUnknown for anything that is not an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf reports the code of err, or "" when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable reports whether the outcome of the failed call is unknown. Even
// then the caller must re-fetch state before attempting any mutation again.
func Retryable(err error) bool {
	return KindOf(err) == KindTransientTransport
}

var ErrTransport = New(KindTransientTransport, "TRANSPORT", "request outcome unknown, re-fetch before retrying")
