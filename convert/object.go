package convert

import (
	"time"

	"github.com/wippyai/jsbridge/engine"
)

// Object requires v to already be an object; primitives are never boxed.
func Object(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Object, error) {
	o, ok := v.AsObject()
	if !ok {
		return engine.Object{}, typeError("engine.Object", v, MsgExpectedObject)
	}
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Object{}, err
	}
	return o, nil
}

// Array accepts objects that satisfy Array.isArray, proxies included.
func Array(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Array, error) {
	o, ok := v.AsObject()
	if !ok {
		return engine.Array{}, typeError("engine.Array", v, MsgExpectedArray)
	}
	a, ok := cx.AsArray(o)
	if !ok {
		return engine.Array{}, typeError("engine.Array", v, MsgExpectedArray)
	}
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Array{}, err
	}
	return a, nil
}

// Date accepts Date objects, including invalid dates.
func Date(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Date, error) {
	o, ok := v.AsObject()
	if !ok {
		return engine.Date{}, typeError("engine.Date", v, MsgExpectedDate)
	}
	d, ok := cx.AsDate(o)
	if !ok {
		return engine.Date{}, typeError("engine.Date", v, MsgExpectedDate)
	}
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Date{}, err
	}
	return d, nil
}

// Time converts a valid Date object to time.Time.
func Time(cx *engine.Context, v engine.Value, strict bool, u Unit) (time.Time, error) {
	d, err := Date(cx, v, strict, u)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := d.Time()
	if !ok {
		return time.Time{}, typeError("time.Time", v, MsgExpectedDate)
	}
	return t, nil
}

// Promise accepts native promises. Thenables are rejected.
func Promise(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Promise, error) {
	o, ok := v.AsObject()
	if !ok {
		return engine.Promise{}, typeError("engine.Promise", v, MsgExpectedPromise)
	}
	p, ok := cx.AsPromise(o)
	if !ok {
		return engine.Promise{}, typeError("engine.Promise", v, MsgExpectedPromise)
	}
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Promise{}, err
	}
	return p, nil
}

// Function accepts callable objects.
func Function(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Function, error) {
	o, ok := v.AsObject()
	if !ok {
		return engine.Function{}, typeError("engine.Function", v, MsgExpectedFunction)
	}
	f, ok := cx.AsFunction(o)
	if !ok {
		return engine.Function{}, typeError("engine.Function", v, MsgExpectedFunction)
	}
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Function{}, err
	}
	return f, nil
}

// Value passes any value through after the realm check, rooted under cx.
// Strictness does not apply.
func Value(cx *engine.Context, v engine.Value, _ bool, _ Unit) (engine.Value, error) {
	if err := cx.AssertSameRealm(v); err != nil {
		return engine.Value{}, err
	}
	return cx.RootValue(v.Raw()), nil
}
