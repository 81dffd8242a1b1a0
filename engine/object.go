package engine

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/grafana/sobek"

	"github.com/wippyai/jsbridge/errors"
)

var (
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	promiseType = reflect.TypeOf((*sobek.Promise)(nil))
)

// Object is a rooted engine object.
type Object struct {
	Value
}

// Handle returns the underlying sobek object.
func (o Object) Handle() *sobek.Object {
	obj, _ := o.raw.(*sobek.Object)
	return obj
}

// ClassName returns the object's internal class, e.g. "Array" or "Date".
func (o Object) ClassName() string {
	return o.Handle().ClassName()
}

// Get reads a property. Getters and proxy traps may run script.
func (o Object) Get(key string) (Value, error) {
	var raw sobek.Value
	if err := o.cx.Guard(func() {
		raw = o.Handle().Get(key)
	}); err != nil {
		return Value{}, errors.None(errors.PhaseCall, err)
	}
	return o.cx.RootValue(raw), nil
}

// Set writes a property.
func (o Object) Set(key string, v Value) error {
	var err error
	if gerr := o.cx.Guard(func() {
		err = o.Handle().Set(key, v.Raw())
	}); gerr != nil {
		err = gerr
	}
	if err != nil {
		return errors.None(errors.PhaseCall, err)
	}
	return nil
}

// Keys returns the object's own enumerable string keys.
func (o Object) Keys() ([]string, error) {
	var keys []string
	if err := o.cx.Guard(func() {
		keys = o.Handle().Keys()
	}); err != nil {
		return nil, errors.None(errors.PhaseCall, err)
	}
	return keys, nil
}

// Array is an object that satisfies Array.isArray.
type Array struct {
	Object
}

// Len returns the array length.
func (a Array) Len() (int, error) {
	v, err := a.Get("length")
	if err != nil {
		return 0, err
	}
	n, err := a.cx.ToNumber(v)
	if err != nil {
		return 0, errors.None(errors.PhaseCall, err)
	}
	return int(n), nil
}

// Index reads element i.
func (a Array) Index(i int) (Value, error) {
	return a.Get(strconv.Itoa(i))
}

// Date is a Date object.
type Date struct {
	Object
}

// Time unboxes the date. It reports false for an invalid date.
func (d Date) Time() (time.Time, bool) {
	t, ok := d.Handle().Export().(time.Time)
	return t, ok
}

// PromiseState is the settlement state of a promise.
type PromiseState uint8

const (
	PromisePending PromiseState = iota
	PromiseFulfilled
	PromiseRejected
)

func (s PromiseState) String() string {
	switch s {
	case PromisePending:
		return "pending"
	case PromiseFulfilled:
		return "fulfilled"
	case PromiseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Promise is a Promise object.
type Promise struct {
	Object
	p *sobek.Promise
}

// State returns the settlement state.
func (p Promise) State() PromiseState {
	switch p.p.State() {
	case sobek.PromiseStateFulfilled:
		return PromiseFulfilled
	case sobek.PromiseStateRejected:
		return PromiseRejected
	default:
		return PromisePending
	}
}

// Result returns the fulfillment value or rejection reason. It is
// undefined while pending.
func (p Promise) Result() Value {
	return p.cx.RootValue(p.p.Result())
}

// Function is a callable object.
type Function struct {
	Object
	call sobek.Callable
}

// Call invokes the function. An exception thrown by script is reported as
// a KindNone error carrying the exception.
func (f Function) Call(this Value, args ...Value) (Value, error) {
	raws := make([]sobek.Value, len(args))
	for i, a := range args {
		raws[i] = a.Raw()
	}
	ret, err := f.call(this.Raw(), raws...)
	if err != nil {
		return Value{}, errors.None(errors.PhaseCall, err)
	}
	return f.cx.RootValue(ret), nil
}

// Name returns the function's name property, or "" if unavailable.
func (f Function) Name() string {
	v, err := f.Get("name")
	if err != nil || !v.IsString() {
		return ""
	}
	return v.raw.String()
}

// IsArray runs the realm's original Array.isArray, which sees through proxies.
func (cx *Context) IsArray(o Object) bool {
	if cx.isArray == nil {
		return o.ClassName() == "Array"
	}
	ret, err := cx.isArray(sobek.Undefined(), o.Raw())
	if err != nil {
		return false
	}
	return ret.ToBoolean()
}

// AsArray refines o to an Array.
func (cx *Context) AsArray(o Object) (Array, bool) {
	if !cx.IsArray(o) {
		return Array{}, false
	}
	return Array{Object: o}, true
}

// AsDate refines o to a Date.
func (cx *Context) AsDate(o Object) (Date, bool) {
	if o.ClassName() != "Date" {
		return Date{}, false
	}
	return Date{Object: o}, true
}

// AsPromise refines o to a Promise. sobek reports promises with class
// "Object", so only the native payload identifies them.
func (cx *Context) AsPromise(o Object) (Promise, bool) {
	if o.Handle().ExportType() != promiseType {
		return Promise{}, false
	}
	p, ok := o.Handle().Export().(*sobek.Promise)
	if !ok {
		return Promise{}, false
	}
	return Promise{Object: o, p: p}, true
}

// AsFunction refines o to a Function.
func (cx *Context) AsFunction(o Object) (Function, bool) {
	call, ok := sobek.AssertFunction(o.Raw())
	if !ok {
		return Function{}, false
	}
	return Function{Object: o, call: call}, true
}

// Unbox returns the primitive wrapped by a Boolean, Number, String or
// BigInt object. Other objects report false. The primitive is read with the
// realm's original valueOf, so overriding valueOf on the wrapper or its
// prototype has no effect. A Boolean, Number or String class object that the
// original valueOf rejects breaks an engine invariant and panics.
func (cx *Context) Unbox(o Object) (Value, bool) {
	class := o.ClassName()
	switch class {
	case "Boolean", "Number", "String":
	case "Object":
		// BigInt wrappers carry class "Object".
		class = "BigInt"
		if o.Handle().ExportType() != bigIntType {
			return Value{}, false
		}
	default:
		return Value{}, false
	}

	valueOf := cx.valueOf[class]
	if valueOf == nil {
		return Value{}, false
	}
	prim, err := valueOf(o.Raw())
	if err != nil {
		panic(fmt.Sprintf("engine: %s wrapper rejected by valueOf: %v", class, err))
	}
	v := cx.RootValue(prim)
	if v.IsObject() {
		panic(fmt.Sprintf("engine: %s wrapper unboxed to an object", class))
	}
	return v, true
}
