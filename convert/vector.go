package convert

import (
	"fmt"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Vector lifts conv to sequences. The source may be any iterable object;
// strict conversion additionally requires an array. Elements are converted
// in iteration order and the first element error is returned unchanged.
//
// The iterator stays on the context's root stack from before Init until
// the conversion returns, on every path.
func Vector[T, C any](conv Converter[T, C]) Converter[[]T, C] {
	goType := fmt.Sprintf("%T", []T(nil))

	return func(cx *engine.Context, v engine.Value, strict bool, cfg C) ([]T, error) {
		o, ok := v.AsObject()
		if !ok {
			return nil, typeError(goType, v, MsgExpectedObject)
		}
		if strict && !cx.IsArray(o) {
			return nil, typeError(goType, v, MsgExpectedArray)
		}

		var out []T
		it := engine.NewForOfIterator(cx)
		err := cx.Roots().With(it, func() error {
			if err := it.Init(v, engine.AllowNonIterable); err != nil {
				return typeErrorCause(errors.PhaseIterate, goType, v, MsgIteratorInit, err)
			}
			if !it.Iterable() {
				return typeErrorCause(errors.PhaseIterate, goType, v, MsgExpectedIterable, nil)
			}

			out = []T{}
			for {
				var slot engine.Value
				done, err := it.Next(&slot)
				if err != nil {
					return typeErrorCause(errors.PhaseIterate, goType, v, MsgIteratorNext, err)
				}
				if done {
					return nil
				}
				elem, err := conv(cx, slot, strict, elementConfig(cfg))
				if err != nil {
					return err
				}
				out = append(out, elem)
			}
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

func elementConfig[C any](cfg C) C {
	if c, ok := any(cfg).(Cloner[C]); ok {
		return c.Clone()
	}
	return cfg
}
