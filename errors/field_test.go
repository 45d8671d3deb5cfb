package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Name", ErrEmpty, "required"),
		Field("Threshold", ErrInput, "must be at most %d", 3),
		AppendField(nil, "Name", ErrInput),
		Field("Ignored", nil, "nothing"),
	)

	if got := FieldErrors(err, "Name"); len(got) != 2 {
		t.Fatalf("want two Name errors, got %d", len(got))
	}
	threshold := FieldErrors(err, "Threshold")
	if len(threshold) != 1 {
		t.Fatalf("want one Threshold error, got %d", len(threshold))
	}
	if !ErrInput.Is(threshold[0]) {
		t.Fatalf("unexpected threshold error: %+v", threshold[0])
	}
	if want, got := `field "Threshold": must be at most 3: invalid input`, threshold[0].Error(); want != got {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := FieldErrors(err, "Ignored"); len(got) != 0 {
		t.Fatalf("nil errors must not be recorded, got %v", got)
	}
	if got := FieldErrors(nil, "Name"); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}
