package walletrec

import (
	"errors"
	"fmt"
)

// ErrorCode enumerates spec.md §7's WalletError taxonomy.
type ErrorCode string

const (
	Full             ErrorCode = "Full"
	Empty            ErrorCode = "Empty"
	ReadError        ErrorCode = "ReadError"
	WriteError       ErrorCode = "WriteError"
	AddressNotFound  ErrorCode = "AddressNotFound"
	NotThere         ErrorCode = "NotThere"
	NotLoaded        ErrorCode = "NotLoaded"
	InvalidHandle    ErrorCode = "InvalidHandle"
	BackupError      ErrorCode = "BackupError"
	RngFailure       ErrorCode = "RngFailure"
	InvalidWalletNum ErrorCode = "InvalidWalletNum"
	InvalidOperation ErrorCode = "InvalidOperation"
)

// Error is the error type every failure from this package carries.
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

func walleterr(code ErrorCode, msg string) error {
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
