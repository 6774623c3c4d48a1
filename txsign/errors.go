package txsign

import (
	"errors"
	"fmt"
)

// ErrorCode enumerates spec.md §4.8's transaction-parsing/signing error
// taxonomy.
type ErrorCode string

const (
	InvalidFormat    ErrorCode = "InvalidFormat"
	TooManyInputs    ErrorCode = "TooManyInputs"
	TooManyOutputs   ErrorCode = "TooManyOutputs"
	TooLarge         ErrorCode = "TooLarge"
	NonStandard      ErrorCode = "NonStandard"
	InvalidAmount    ErrorCode = "InvalidAmount"
	InvalidReference ErrorCode = "InvalidReference"
	ReadError        ErrorCode = "ReadError"
)

// Error is the error type every failure from this package carries, letting
// callers dispatch on Code the way the confirmation/command layer above it
// needs to.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func txerr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) an *Error,
// reporting ok=false otherwise.
func CodeOf(err error) (code ErrorCode, ok bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Code, true
}
