package convert

import (
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Float64 converts to float64. Loose conversion only fails when a
// valueOf/toString hook throws.
func Float64(cx *engine.Context, v engine.Value, strict bool, _ Unit) (float64, error) {
	if v.IsNumber() {
		return v.Number(), nil
	}
	if strict {
		return 0, typeError("float64", v, MsgExpectedNumber)
	}
	d, err := cx.ToNumber(v)
	if err != nil {
		return 0, typeErrorCause(errors.PhaseConvert, "float64", v, MsgToNumberFailed, err)
	}
	return d, nil
}

// Float32 converts through Float64 and narrows.
func Float32(cx *engine.Context, v engine.Value, strict bool, u Unit) (float32, error) {
	d, err := Float64(cx, v, strict, u)
	if err != nil {
		return 0, err
	}
	return float32(d), nil
}
