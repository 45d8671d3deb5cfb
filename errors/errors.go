package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Extensions register their own kinds
// with codes outside of the range used here.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrModel        = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")

	// ErrHuman marks a code path that is unreachable unless the program
	// itself is wrong.
	ErrHuman = Register(7, "coding error")

	ErrEmpty    = Register(9, "value is empty")
	ErrState    = Register(10, "invalid state")
	ErrType     = Register(11, "invalid type")
	ErrInput    = Register(14, "invalid input")
	ErrDatabase = Register(15, "database")

	// ErrPanic is used only for recovered panics. Info redacts its
	// description unless debugging.
	ErrPanic = Register(111222, "panic")
)

// registry maps every registered code to its error. Code 1 is reserved for
// errors that were not created by this package.
var registry = map[uint32]*Error{
	internalCode: {code: internalCode, desc: internalLog},
}

// Register declares a new error kind. It panics when the code is already
// taken, so it must only be called while the program is initialized.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a registered error kind. Errors returned at runtime wrap one of
// these, which keeps them comparable with Is and lets Info expose a stable
// code to the caller.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

func (e Error) Code() uint32 { return e.code }

// Is returns true if err is of this kind. Wrapping layers are followed
// through their Cause method and a multi error matches if any of its
// members does. A nil kind matches only a nil error.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		switch e := err.(type) {
		case unpacker:
			for _, member := range e.Unpack() {
				if kind.Is(member) {
					return true
				}
			}
			return false
		case causer:
			err = e.Cause()
		default:
			return false
		}
	}
	return false
}

// Wrap adds a description to err. A nil err yields nil. The innermost wrap
// attaches a stack trace, unless the error already carries one.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

type causer interface {
	Cause() error
}

// isNilErr also catches a typed nil pointer stored in the error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
