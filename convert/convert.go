package convert

import (
	"fmt"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Converter turns an engine value into T. strict rejects any implicit
// coercion; cfg selects type-specific edge-case policy. On error the
// returned T is the zero value.
type Converter[T, C any] func(cx *engine.Context, v engine.Value, strict bool, cfg C) (T, error)

// Unit is the configuration of types with no configurable behavior.
type Unit struct{}

// Cloner is implemented by configurations that need a fresh copy per
// sequence element.
type Cloner[C any] interface {
	Clone() C
}

// Conversion failure messages.
const (
	MsgExpectedBoolean   = "Expected Boolean in Strict Conversion"
	MsgExpectedNumber    = "Expected Number in Strict Conversion"
	MsgToNumberFailed    = "Unable to Convert Value to Number"
	MsgExpectedString    = "Expected String in Strict Conversion"
	MsgToStringFailed    = "Unable to Convert Value to String"
	MsgExpectedObject    = "Expected Object"
	MsgExpectedArray     = "Expected Array"
	MsgExpectedDate      = "Expected Date"
	MsgExpectedPromise   = "Expected Promise"
	MsgExpectedFunction  = "Expected Function"
	MsgIteratorInit      = "Failed to Initialise Iterator"
	MsgExpectedIterable  = "Expected Iterable"
	MsgIteratorNext      = "Failed to Execute Next on Iterator"
	MsgNonFiniteRange    = "Non-Finite Value in EnforceRange Conversion"
	MsgNonIntegralRange  = "Non-Integral Value in EnforceRange Conversion"
	MsgOutOfRangeInRange = "Value Out of Range in EnforceRange Conversion"
)

// FromValue runs conv and checks that the root stack is balanced when it
// returns. An imbalance means a guard was leaked or released twice.
func FromValue[T, C any](cx *engine.Context, v engine.Value, strict bool, cfg C, conv Converter[T, C]) (T, error) {
	roots := cx.Roots()
	depth := roots.Depth()

	out, err := conv(cx, v, strict, cfg)

	if got := roots.Depth(); got != depth {
		panic(fmt.Sprintf("convert: root stack depth %d after conversion, want %d", got, depth))
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func typeError(goType string, v engine.Value, msg string) error {
	return errors.New(errors.PhaseConvert, errors.KindType).
		GoType(goType).
		Value(v.String()).
		Detail("%s", msg).
		Build()
}

func typeErrorCause(phase errors.Phase, goType string, v engine.Value, msg string, cause error) error {
	return errors.New(phase, errors.KindType).
		GoType(goType).
		Value(v.String()).
		Cause(cause).
		Detail("%s", msg).
		Build()
}
