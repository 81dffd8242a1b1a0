package convert

import (
	"github.com/wippyai/jsbridge/engine"
)

// Bool converts to a Go bool using the engine's truthiness rules unless strict.
func Bool(cx *engine.Context, v engine.Value, strict bool, _ Unit) (bool, error) {
	if v.IsBoolean() {
		return v.Bool(), nil
	}
	if strict {
		return false, typeError("bool", v, MsgExpectedBoolean)
	}
	return cx.ToBoolean(v), nil
}
