package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestDecodeErrorMessages(t *testing.T) {
	cases := []struct {
		err  *DecodeError
		want string
	}{
		{
			NewMismatch("int", "string"),
			"decode error: expected int, got string",
		},
		{
			NewMismatch("non-null int", "null").WithField("user.Age"),
			"decode error: field 'user.Age': expected non-null int, got null",
		},
		{
			NewScalar("time.Time", "01/02/2020", nil),
			"decode error: cannot decode '01/02/2020' as time.Time",
		},
		{
			NewUnknownField("extra", "main.User"),
			"decode error: no such field 'extra' in main.User",
		},
		{
			NewMissingField("Age", "main.User"),
			"decode error: missing required field 'Age' in main.User",
		},
		{
			New("input JSON could not be decoded to an object"),
			"decode error: input JSON could not be decoded to an object",
		},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("not representable as int8")
	err := NewScalar("int8", "300", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the inner cause")
	}
	if got := err.Error(); got != "decode error: cannot decode '300' as int8: not representable as int8" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestShapeErrorMessage(t *testing.T) {
	err := NewShape("map[int]string", "no recognized shape")
	want := "unsupported type map[int]string: no recognized shape"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
