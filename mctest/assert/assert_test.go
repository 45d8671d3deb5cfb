package assert

import (
	"testing"

	"github.com/iov-one/multiclique/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		Want     error
		Got      error
		WantFail bool
	}{
		"same error": {
			Want: errors.ErrEmpty,
			Got:  errors.ErrEmpty,
		},
		"wrapped": {
			Want: errors.ErrEmpty,
			Got:  errors.Wrap(errors.ErrEmpty, "test"),
		},
		"both nil": {
			Want: nil,
			Got:  nil,
		},
		"typed nil matches no error": {
			Want: (*errors.Error)(nil),
			Got:  nil,
		},
		"nil compared to an error": {
			Want:     nil,
			Got:      errors.ErrEmpty,
			WantFail: true,
		},
		"different error": {
			Want:     errors.ErrEmpty,
			Got:      errors.ErrInput,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.Want, tc.Got)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failure state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		Want     *errors.Error
		WantFail bool
	}{
		"single matching error": {
			Err:  errors.Field("Threshold", errors.ErrInput, "too big"),
			Name: "Threshold",
			Want: errors.ErrInput,
		},
		"no error for another field": {
			Err:  errors.Field("Threshold", errors.ErrInput, "too big"),
			Name: "Signers",
			Want: nil,
		},
		"unexpected error": {
			Err:      errors.Field("Threshold", errors.ErrInput, "too big"),
			Name:     "Threshold",
			Want:     nil,
			WantFail: true,
		},
		"error of another kind": {
			Err:      errors.Field("Threshold", errors.ErrInput, "too big"),
			Name:     "Threshold",
			Want:     errors.ErrEmpty,
			WantFail: true,
		},
		"two errors for the same field": {
			Err: errors.Append(
				errors.Field("Threshold", errors.ErrInput, "first"),
				errors.Field("Threshold", errors.ErrInput, "second"),
			),
			Name:     "Threshold",
			Want:     errors.ErrInput,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.Want)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failure state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	var nilMap map[string]int

	for _, v := range []interface{}{nil, nilErr, nilMap} {
		mock := &tmock{TB: t}
		Nil(mock, v)
		if mock.failcalls != 0 {
			t.Fatalf("%#v must be nil", v)
		}
	}
	for _, v := range []interface{}{0, "", errors.ErrEmpty, []int{}} {
		mock := &tmock{TB: t}
		Nil(mock, v)
		if mock.failcalls != 1 {
			t.Fatalf("%#v must not be nil", v)
		}
	}
}

// tmock counts failure calls instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
