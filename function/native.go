package function

import (
	stderrors "errors"

	"github.com/grafana/sobek"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Native is the body of a native function. It reads its inputs from args,
// writes its result to args.Rval() and reports failure by returning an error.
type Native func(args *Arguments) error

// New creates a script-callable function backed by fn.
func New(cx *engine.Context, name string, argc int, fn Native) engine.Function {
	vm := cx.Runtime()

	var self sobek.Value
	self = vm.ToValue(func(call sobek.FunctionCall) sobek.Value {
		args := NewArguments(cx, engine.FromFunctionCall(self, call))
		args.Rval().SetRaw(sobek.Undefined())
		if err := fn(args); err != nil {
			Throw(cx, err)
		}
		return args.Rval().Get().Raw()
	})

	return finish(cx, self, name, argc)
}

// NewConstructor creates a function usable with `new`. The receiver is the
// freshly allocated object; it is returned unless fn stores another object
// in the return slot.
func NewConstructor(cx *engine.Context, name string, argc int, fn Native) engine.Function {
	vm := cx.Runtime()

	var self sobek.Value
	self = vm.ToValue(func(call sobek.ConstructorCall) *sobek.Object {
		args := NewArguments(cx, engine.FromConstructorCall(self, call))
		args.Rval().SetRaw(sobek.Undefined())
		if err := fn(args); err != nil {
			Throw(cx, err)
		}
		if obj, ok := args.Rval().Get().Raw().(*sobek.Object); ok {
			return obj
		}
		if obj, ok := args.This().Raw().(*sobek.Object); ok {
			return obj
		}
		return call.This
	})

	return finish(cx, self, name, argc)
}

func finish(cx *engine.Context, self sobek.Value, name string, argc int) engine.Function {
	obj := self.(*sobek.Object)
	vm := cx.Runtime()
	_ = obj.DefineDataProperty("name", vm.ToValue(name), sobek.FLAG_FALSE, sobek.FLAG_TRUE, sobek.FLAG_FALSE)
	_ = obj.DefineDataProperty("length", vm.ToValue(argc), sobek.FLAG_FALSE, sobek.FLAG_TRUE, sobek.FLAG_FALSE)

	o, _ := cx.RootValue(obj).AsObject()
	f, _ := cx.AsFunction(o)
	return f
}

// Throw raises err as a script exception from inside a native function.
// A KindNone error carrying an engine exception rethrows that exception;
// a KindType error throws a TypeError with its message; anything else
// becomes a GoError.
func Throw(cx *engine.Context, err error) {
	vm := cx.Runtime()

	var ex *sobek.Exception
	if stderrors.As(err, &ex) && (errors.IsNone(err) || errors.KindOf(err) == "") {
		panic(ex)
	}
	if errors.IsType(err) {
		panic(vm.NewTypeError("%s", errors.Message(err)))
	}
	panic(vm.NewGoError(err))
}
