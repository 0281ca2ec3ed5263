package model

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/didcheqd/did"
)

// ErrorCode values follow DID Resolution error names.
type ErrorCode string

const (
	ErrInvalidDid         ErrorCode = "invalidDid"
	ErrInvalidDidURL      ErrorCode = "invalidDidUrl"
	ErrNotFound           ErrorCode = "notFound"
	ErrMethodNotSupported ErrorCode = "methodNotSupported"
	ErrInternal           ErrorCode = "internalError"
)

// ResolutionError is what the method adapter returns for every failure.
// The engine error stays reachable through Unwrap.
type ResolutionError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *ResolutionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ResolutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewError(code ErrorCode, message string) *ResolutionError {
	return &ResolutionError{Code: code, Message: message}
}

// Internal wraps cause as an internalError with a message prefix.
func Internal(prefix string, cause error) *ResolutionError {
	msg := prefix
	if cause != nil {
		msg = prefix + ": " + cause.Error()
	}
	return &ResolutionError{Code: ErrInternal, Message: msg, Cause: cause}
}

// Classify maps an error to the most specific DID Resolution error code,
// looking through any ResolutionError to the engine error beneath it.
func Classify(err error) ErrorCode {
	switch did.KindOf(err) {
	case did.KindMethodMismatch, did.KindMalformedPath, did.KindUnsupportedPathSegment:
		return ErrInvalidDid
	case did.KindInvalidDidURL:
		return ErrInvalidDidURL
	case did.KindNetworkNotSupported:
		return ErrMethodNotSupported
	case did.KindResourceNotFound:
		return ErrNotFound
	case did.KindNonSuccessResponse:
		var e *did.Error
		if errors.As(err, &e) && status.Code(e.Cause) == codes.NotFound {
			return ErrNotFound
		}
	}
	var re *ResolutionError
	if errors.As(err, &re) && re.Code != "" {
		return re.Code
	}
	return ErrInternal
}
