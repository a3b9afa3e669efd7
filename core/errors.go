/*
Package core holds types used throughout the augmenter.

Errors carry a numeric code and a message meant for the user. Codes
survive further wrapping with fmt.Errorf("...: %w", err), and the cause
of a wrapped error remains reachable by errors.Is and errors.As.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package core

import (
	"errors"
	"fmt"
)

// Error codes
const (
	NOERROR    int = 0
	EMISSING   int = 122 // referenced glyph, rule, class or font does not exist
	EINVALID   int = 123 // validation failed
	EIO        int = 124 // reading or writing a file failed
	EINTERNAL  int = 125 // internal error
	EDUPLICATE int = 126 // name or code point already taken
)

var errorTexts = map[int]string{
	NOERROR:    "OK",
	EMISSING:   "not found",
	EINVALID:   "invalid",
	EIO:        "i/o error",
	EINTERNAL:  "internal error",
	EDUPLICATE: "duplicate",
}

func errorText(code int) string {
	if text, ok := errorTexts[code]; ok {
		return text
	}
	return fmt.Sprintf("error %d", code)
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type codedError struct {
	cause error
	code  int
	msg   string
}

var _ AppError = codedError{}

func (e codedError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e codedError) Unwrap() error { return e.cause }
func (e codedError) ErrorCode() int { return e.code }
func (e codedError) UserMessage() string { return e.msg }

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return codedError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError wraps err, attaching an error code and a user message.
// A nil err is replaced by the code's default text.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code returns the error code of the first AppError in err's chain.
// Errors without a code are internal errors; a nil error has code NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message of the first AppError in err's chain,
// or the default text of err's code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) && e.UserMessage() != "" {
		return e.UserMessage()
	}
	return errorText(Code(err))
}
