package convert

import (
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// JSString converts to an engine string handle without copying it.
func JSString(cx *engine.Context, v engine.Value, strict bool, _ Unit) (engine.String, error) {
	if strict && !v.IsString() {
		return engine.String{}, typeError("engine.String", v, MsgExpectedString)
	}
	s, err := cx.ToString(v)
	if err != nil {
		return engine.String{}, typeErrorCause(errors.PhaseConvert, "engine.String", v, MsgToStringFailed, err)
	}
	return s, nil
}

// String converts to an owned Go string.
func String(cx *engine.Context, v engine.Value, strict bool, _ Unit) (string, error) {
	if strict && !v.IsString() {
		return "", typeError("string", v, MsgExpectedString)
	}
	s, err := cx.ToString(v)
	if err != nil {
		return "", typeErrorCause(errors.PhaseConvert, "string", v, MsgToStringFailed, err)
	}
	return s.String(), nil
}
