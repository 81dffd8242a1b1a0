package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindType,
				GoType: "uint8",
				Detail: "Expected Number in Strict Conversion",
			},
			contains: []string{"[convert]", "type", "Go type uint8", " - Expected Number in Strict Conversion"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseIterate,
				Kind:  KindType,
			},
			contains: []string{"[iterate]", "type"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase: PhaseCall,
				Kind:  KindNone,
				Cause: errors.New("ReferenceError: x is not defined"),
			},
			contains: []string{"[call]", "none", "caused by", "x is not defined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindType,
		Cause: cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseConvert,
		Kind:   KindType,
		Detail: "Expected Array",
	}

	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindType}) {
		t.Error("same phase and kind should match")
	}
	if err.Is(&Error{Phase: PhaseIterate, Kind: KindType}) {
		t.Error("different phase should not match")
	}
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindNone}) {
		t.Error("different kind should not match")
	}
	if !errors.Is(err, &Error{Phase: PhaseConvert, Kind: KindType}) {
		t.Error("errors.Is should use Is")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConvert, KindType).
		GoType("int32").
		Value(42.5).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "fraction").
		Build()

	if err.Phase != PhaseConvert {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConvert)
	}
	if err.Kind != KindType {
		t.Errorf("Kind = %v, want %v", err.Kind, KindType)
	}
	if err.GoType != "int32" {
		t.Errorf("GoType = %q", err.GoType)
	}
	if err.Value != 42.5 {
		t.Errorf("Value = %v", err.Value)
	}
	if err.Cause != cause {
		t.Error("Cause not set")
	}
	if err.Detail != "expected integer, got fraction" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Message() != err.Detail {
		t.Errorf("Message() = %q, want Detail", err.Message())
	}
}

func TestBuilder_DetailWithoutArgs(t *testing.T) {
	err := New(PhaseRealm, KindType).Detail("value from another realm").Build()
	if err.Detail != "value from another realm" {
		t.Errorf("Detail = %q", err.Detail)
	}

	err = New(PhaseRealm, KindType).Detail("%s", "100% foreign").Build()
	if err.Detail != "100% foreign" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Type", func(t *testing.T) {
		err := Type(PhaseConvert, "Expected Date")
		if err.Kind != KindType || err.Detail != "Expected Date" || err.Cause != nil {
			t.Errorf("unexpected error %+v", err)
		}
	})

	t.Run("TypeCause", func(t *testing.T) {
		cause := errors.New("boom")
		err := TypeCause(PhaseConvert, "Unable to Convert Value to Number", cause)
		if err.Kind != KindType {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})

	t.Run("None", func(t *testing.T) {
		cause := errors.New("thrown")
		err := None(PhaseCall, cause)
		if err.Kind != KindNone || err.Detail != "" {
			t.Errorf("unexpected error %+v", err)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})
}

func TestKindHelpers(t *testing.T) {
	typeErr := Type(PhaseConvert, "Expected Object")
	noneErr := None(PhaseEval, errors.New("SyntaxError"))
	wrapped := fmt.Errorf("argument 1: %w", typeErr)
	foreign := errors.New("plain")

	if !IsType(typeErr) || !IsType(wrapped) {
		t.Error("IsType should see through wrapping")
	}
	if IsNone(typeErr) || !IsNone(noneErr) {
		t.Error("IsNone mismatch")
	}
	if KindOf(foreign) != "" {
		t.Errorf("KindOf(foreign) = %q", KindOf(foreign))
	}
	if IsType(nil) {
		t.Error("IsType(nil) should be false")
	}

	tests := []struct {
		err  error
		want string
	}{
		{wrapped, "Expected Object"},
		{foreign, "plain"},
		{nil, ""},
		{noneErr, ""},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
