package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. If exactly one non-nil
// error is given, that error is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors. The first error decides the
// code and the cause, so that fail-fast consumers see the first problem.
type multiErr []error

var (
	_ coder    = multiErr(nil)
	_ causer   = multiErr(nil)
	_ unpacker = multiErr(nil)
)

func (m multiErr) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// Code returns the code of the first error. Errors that do not provide
// a code are reported as internal.
func (m multiErr) Code() uint32 {
	if len(m) == 0 {
		return SuccessCode
	}
	return codeOf(m[0])
}

// Cause returns the first error.
func (m multiErr) Cause() error {
	if len(m) == 0 {
		return nil
	}
	return m[0]
}

// Unpack returns all errors that this multi error contains.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that group other errors.
type unpacker interface {
	Unpack() []error
}
