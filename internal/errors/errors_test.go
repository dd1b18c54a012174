package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestConstructors_SetKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"NotFound", NotFound("missing"), ErrNotFound},
		{"Validation", Validation("bad"), ErrValidation},
		{"Conflict", Conflict("clash"), ErrConflict},
		{"InvalidInput", InvalidInput("nope"), ErrInvalidInput},
		{"Internal", Internal(fmt.Errorf("boom")), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, tt.err.Kind)
			}
		})
	}
}

func TestError_MessageFormatting(t *testing.T) {
	err := NotFoundf("match %s not found in division %s", "m1", "d1")
	want := "match m1 not found in division d1"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("db closed")
	err := Wrap(inner, ErrInternal, "query failed")

	if !stderrors.Is(err, inner) {
		t.Error("expected errors.Is to find wrapped error")
	}
	if err.Error() != "query failed: db closed" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{ErrNotFound, "not_found"},
		{ErrValidation, "validation"},
		{ErrConflict, "conflict"},
		{ErrInvalidInput, "invalid_input"},
		{ErrInternal, "internal"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
