package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is the code of a nil error.
	SuccessCode = 0

	// Errors that are not created from a registered error are internal.
	// Their details are not exposed to the client.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the message of an error that can be shown to a
// client, for example by the command line tool. Unregistered errors are
// internal and their message is replaced with a generic one unless debug is
// set. In debug mode the message carries the stack trace, if any.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}
	code := codeOf(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return internalCode, internalLog
	default:
		return code, err.Error()
	}
}

type coder interface {
	Code() uint32
}

// codeOf returns the code of the first error in the cause chain that has
// one.
func codeOf(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
}

// Redact replaces internal errors and recovered panics with a generic
// error. It does nothing in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || codeOf(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
