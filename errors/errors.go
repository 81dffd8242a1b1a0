package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConvert Phase = "convert" // engine value to Go
	PhaseIterate Phase = "iterate" // for-of iteration protocol
	PhaseRealm   Phase = "realm"   // isolation domain checks
	PhaseCall    Phase = "call"    // calling into script
	PhaseEval    Phase = "eval"    // evaluating source text
	PhaseBind    Phase = "bind"    // exposing Go functions to script
	PhaseConfig  Phase = "config"  // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	// KindType is a conversion mismatch, failed coercion, failed
	// iteration step or realm violation. It always carries a message.
	KindType Kind = "type"
	// KindNone means the engine has already raised its own exception.
	// The exception, when available, is the Cause.
	KindNone Kind = "none"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Message returns the human-readable message without phase or kind decoration.
func (e *Error) Message() string {
	return e.Detail
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Type creates a type error carrying msg.
func Type(phase Phase, msg string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindType,
		Detail: msg,
	}
}

// TypeCause creates a type error caused by an engine failure.
func TypeCause(phase Phase, msg string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindType,
		Detail: msg,
		Cause:  cause,
	}
}

// None creates an error for an exception the engine already raised.
func None(phase Phase, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindNone,
		Cause: cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsType reports whether err is a type error.
func IsType(err error) bool {
	return KindOf(err) == KindType
}

// IsNone reports whether err reports an exception raised by the engine.
func IsNone(err error) bool {
	return KindOf(err) == KindNone
}

// Message returns the message of the first *Error in err's chain,
// falling back to err.Error() for foreign errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Detail
	}
	return err.Error()
}
