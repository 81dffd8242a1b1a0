package convert

import (
	"github.com/wippyai/jsbridge/engine"
)

// Optional lifts conv to accept null and undefined, which convert to nil.
// Any other value goes through conv with the same strictness and config.
func Optional[T, C any](conv Converter[T, C]) Converter[*T, C] {
	return func(cx *engine.Context, v engine.Value, strict bool, cfg C) (*T, error) {
		if v.IsNullOrUndefined() {
			return nil, nil
		}
		out, err := conv(cx, v, strict, cfg)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
}
