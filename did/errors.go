package did

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind rather than matching error strings.
// Error() strings are human-readable and may evolve.
type Kind string

const (
	KindMethodMismatch         Kind = "MethodMismatch"
	KindMalformedPath          Kind = "MalformedPath"
	KindUnsupportedPathSegment Kind = "UnsupportedPathSegment"
	KindInvalidDidURL          Kind = "InvalidDidUrl"
	KindNetworkNotSupported    Kind = "NetworkNotSupported"
	KindBadConfiguration       Kind = "BadConfiguration"
	KindTransportError         Kind = "TransportError"
	KindNonSuccessResponse     Kind = "NonSuccessResponse"
	KindInvalidResponse        Kind = "InvalidResponse"
	KindResourceNotFound       Kind = "ResourceNotFound"
	KindChecksumMismatch       Kind = "ChecksumMismatch"
)

// Error is the structured error shared by the parser and the resolution engine.
//
// Message is intended for humans; do not match on it. Cause carries the raw
// transport or parse failure when there is one.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error without a cause.
func NewError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError returns a structured error carrying cause.
func WrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the Kind of a structured error, or "" if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
