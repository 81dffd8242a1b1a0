package function

import (
	"fmt"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
)

// Arguments is the structured view of one native call: rooted arguments,
// the receiver, the return slot and whether the call came from `new`.
// The argument count is fixed at construction.
type Arguments struct {
	cx   *engine.Context
	call engine.CallArgs
	args []engine.Value
	this engine.Value
}

// NewArguments roots every argument and the receiver of call under cx.
func NewArguments(cx *engine.Context, call engine.CallArgs) *Arguments {
	args := make([]engine.Value, call.Len())
	for i := range args {
		args[i] = cx.RootValue(call.Get(i))
	}
	return &Arguments{
		cx:   cx,
		call: call,
		args: args,
		this: cx.RootValue(*call.This()),
	}
}

// Context returns the context the call runs in.
func (a *Arguments) Context() *engine.Context {
	return a.cx
}

// Len returns the number of arguments actually passed.
func (a *Arguments) Len() int {
	return len(a.args)
}

// Value returns argument i. Beyond Len it reports false and an absent
// Value, never an error.
func (a *Arguments) Value(i int) (engine.Value, bool) {
	if i < 0 || i >= len(a.args) {
		return engine.Value{}, false
	}
	return a.args[i], true
}

// Get returns argument i, or undefined beyond Len.
func (a *Arguments) Get(i int) engine.Value {
	if v, ok := a.Value(i); ok {
		return v
	}
	return a.cx.Undefined()
}

// Range returns arguments [from, to), skipping indices that are absent.
func (a *Arguments) Range(from, to int) []engine.Value {
	var out []engine.Value
	for i := from; i < to; i++ {
		if v, ok := a.Value(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// This returns the receiver. Writes through the pointer are visible to
// later readers of the receiver; use SetThis to also update the raw call.
func (a *Arguments) This() *engine.Value {
	return &a.this
}

// SetThis replaces the receiver.
func (a *Arguments) SetThis(v engine.Value) {
	a.this = a.cx.RootValue(v.Raw())
	*a.call.This() = v.Raw()
}

// Rval returns the call's return slot.
func (a *Arguments) Rval() *engine.Slot {
	return a.call.Rval(a.cx)
}

// IsConstructing reports whether the call came from `new`.
func (a *Arguments) IsConstructing() bool {
	return a.call.Constructing()
}

// CallArgs returns the raw call record.
func (a *Arguments) CallArgs() engine.CallArgs {
	return a.call
}

func (a *Arguments) String() string {
	return fmt.Sprintf("Arguments(argc=%d, constructing=%t)", len(a.args), a.call.Constructing())
}

// Arg converts argument i with conv. A missing argument converts as undefined.
func Arg[T, C any](a *Arguments, i int, strict bool, cfg C, conv convert.Converter[T, C]) (T, error) {
	return convert.FromValue(a.cx, a.Get(i), strict, cfg, conv)
}
