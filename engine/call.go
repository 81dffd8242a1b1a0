package engine

import (
	"github.com/grafana/sobek"
)

// CallArgs is the raw record of a native call. vp holds the callee (later
// the return value) at 0, the receiver at 1 and the arguments after that.
type CallArgs struct {
	vp           []sobek.Value
	argc         int
	constructing bool
	newTarget    *sobek.Object
}

// CallArgsFromVp builds a call record over an existing vp layout.
// len(vp) must be at least argc+2.
func CallArgsFromVp(argc int, vp []sobek.Value, constructing bool) CallArgs {
	if len(vp) < argc+2 {
		panic("engine: vp shorter than argc+2")
	}
	return CallArgs{vp: vp, argc: argc, constructing: constructing}
}

// FromFunctionCall adapts a plain sobek call.
func FromFunctionCall(callee sobek.Value, call sobek.FunctionCall) CallArgs {
	vp := make([]sobek.Value, len(call.Arguments)+2)
	vp[0] = callee
	vp[1] = call.This
	copy(vp[2:], call.Arguments)
	return CallArgs{vp: vp, argc: len(call.Arguments)}
}

// FromConstructorCall adapts a call to a sobek constructor. Every dispatch
// through sobek's constructor adapter is reported as constructing. sobek
// leaves ConstructorCall.NewTarget nil for a plain `new`, so new.target
// falls back to the callee.
func FromConstructorCall(callee sobek.Value, call sobek.ConstructorCall) CallArgs {
	vp := make([]sobek.Value, len(call.Arguments)+2)
	vp[0] = callee
	vp[1] = call.This
	copy(vp[2:], call.Arguments)

	newTarget := call.NewTarget
	if newTarget == nil {
		newTarget, _ = callee.(*sobek.Object)
	}
	return CallArgs{vp: vp, argc: len(call.Arguments), constructing: true, newTarget: newTarget}
}

// Len returns the argument count.
func (c CallArgs) Len() int {
	return c.argc
}

// Get returns argument i, or nil when i is out of range.
func (c CallArgs) Get(i int) sobek.Value {
	if i < 0 || i >= c.argc {
		return nil
	}
	return c.vp[i+2]
}

// This returns a pointer to the receiver slot.
func (c CallArgs) This() *sobek.Value {
	return &c.vp[1]
}

// Callee returns the function being called. It is only meaningful before
// the return value has been written.
func (c CallArgs) Callee() sobek.Value {
	return c.vp[0]
}

// Rval returns a writable slot for the return value rooted in cx.
// It aliases the callee slot.
func (c CallArgs) Rval(cx *Context) *Slot {
	return &Slot{cx: cx, p: &c.vp[0]}
}

// Constructing reports whether the call came from `new`.
func (c CallArgs) Constructing() bool {
	return c.constructing
}

// NewTarget returns new.target for constructor calls, nil otherwise.
func (c CallArgs) NewTarget() *sobek.Object {
	return c.newTarget
}
