// Package errors defines the error taxonomy shared by the board, the move
// ledger, the protocol session and the transport boundary.
//
// Errors carry a machine-readable Code and match each other by code, so
// callers can test against the exported sentinels with errors.Is regardless
// of the message or the wrapped cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeOutOfBounds      Code = "OUT_OF_BOUNDS"      // coordinate outside [1, N]
	CodeInvalidSequence  Code = "INVALID_SEQUENCE"   // move number is not the expected next value
	CodeDuplicateTarget  Code = "DUPLICATE_TARGET"   // coordinate already attacked by the same attacker
	CodePrematureMessage Code = "PREMATURE_MESSAGE"  // message type invalid for the current phase
	CodeWrongMessageType Code = "WRONG_MESSAGE_TYPE" // handler received a variant it cannot process
	CodeTransportFailure Code = "TRANSPORT_FAILURE"  // receive/send error from the boundary
	CodeInvalidLayout    Code = "INVALID_LAYOUT"     // ship set cannot be placed on the grid
	CodeInvalidConfig    Code = "INVALID_CONFIG"     // configuration rejected at startup
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrOutOfBounds      = New(CodeOutOfBounds, "coordinate out of bounds")
	ErrInvalidSequence  = New(CodeInvalidSequence, "invalid sequence number")
	ErrDuplicateTarget  = New(CodeDuplicateTarget, "target already attacked")
	ErrPrematureMessage = New(CodePrematureMessage, "game not ready yet")
	ErrWrongMessageType = New(CodeWrongMessageType, "wrong message type")
	ErrTransportFailure = New(CodeTransportFailure, "transport failure")
	ErrInvalidLayout    = New(CodeInvalidLayout, "invalid ship layout")
	ErrInvalidConfig    = New(CodeInvalidConfig, "invalid configuration")
)

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message, used in logs
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsFatal reports whether err must end the session. Only transport
// failures are fatal; validation failures discard the offending message.
func IsFatal(err error) bool {
	return CodeOf(err) == CodeTransportFailure
}
