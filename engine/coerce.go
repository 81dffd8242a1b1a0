package engine

import (
	"github.com/grafana/sobek"
	"go.uber.org/zap"
)

// ToBoolean applies the engine's truthiness rules. It never runs script.
func (cx *Context) ToBoolean(v Value) bool {
	return v.Raw().ToBoolean()
}

// ToNumber applies the engine's numeric conversion. Objects go through
// valueOf/toString, which may run script and throw.
func (cx *Context) ToNumber(v Value) (float64, error) {
	if v.IsNumber() {
		return v.raw.ToFloat(), nil
	}
	var f float64
	err := cx.Guard(func() {
		f = v.Raw().ToNumber().ToFloat()
	})
	if err != nil {
		cx.log.Debug("number conversion threw", zap.Stringer("tag", v.Tag()), zap.Error(err))
		return 0, err
	}
	return f, nil
}

// ToString applies the engine's string conversion. Strings are returned
// without copying. Objects go through toString/valueOf, which may run script
// and throw. Symbols throw a TypeError.
func (cx *Context) ToString(v Value) (String, error) {
	if v.IsString() {
		return String{cx: cx, raw: v.raw}, nil
	}
	var s sobek.Value
	err := cx.Guard(func() {
		// For objects this runs the toString/valueOf hooks and yields a primitive.
		prim := v.Raw().ToString()
		if _, ok := prim.(*sobek.Symbol); ok {
			panic(cx.vm.NewTypeError("Cannot convert a Symbol value to a string"))
		}
		s = cx.vm.ToValue(prim.String())
	})
	if err != nil {
		cx.log.Debug("string conversion threw", zap.Stringer("tag", v.Tag()), zap.Error(err))
		return String{}, err
	}
	return String{cx: cx, raw: s}, nil
}

// String is a handle on an engine string.
type String struct {
	cx  *Context
	raw sobek.Value
}

// String copies the engine string into a Go string.
func (s String) String() string {
	if s.raw == nil {
		return ""
	}
	return s.raw.String()
}

// Value returns the string as a rooted engine value.
func (s String) Value() Value {
	return s.cx.RootValue(s.raw)
}

// Raw returns the underlying engine string.
func (s String) Raw() sobek.Value {
	return s.raw
}
