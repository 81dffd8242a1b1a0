package convert

import (
	"reflect"
	"sync"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Dynamic is a converter whose target type is only known at run time.
// Integer targets use the Behavior; every other target ignores it.
type Dynamic = Converter[reflect.Value, Behavior]

var (
	typeValue    = reflect.TypeOf(engine.Value{})
	typeString   = reflect.TypeOf(engine.String{})
	typeObject   = reflect.TypeOf(engine.Object{})
	typeArray    = reflect.TypeOf(engine.Array{})
	typeDate     = reflect.TypeOf(engine.Date{})
	typePromise  = reflect.TypeOf(engine.Promise{})
	typeFunction = reflect.TypeOf(engine.Function{})
	typeTime     = reflect.TypeOf(time.Time{})
)

var compiled sync.Map // reflect.Type -> Dynamic

// Into converts v into the value ptr points to.
func Into(cx *engine.Context, v engine.Value, strict bool, b Behavior, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseBind, errors.KindType).
			Detail("target must be a non-nil pointer, got %T", ptr).
			Build()
	}
	conv, err := For(rv.Type().Elem())
	if err != nil {
		return err
	}
	out, err := FromValue(cx, v, strict, b, conv)
	if err != nil {
		return err
	}
	rv.Elem().Set(out)
	return nil
}

// For returns a converter producing values of type t. Pointers become
// optional values, slices become vectors and interface{} receives the
// engine's own export. Results are cached per type.
func For(t reflect.Type) (Dynamic, error) {
	if c, ok := compiled.Load(t); ok {
		return c.(Dynamic), nil
	}
	c, err := compile(t)
	if err != nil {
		return nil, err
	}
	actual, _ := compiled.LoadOrStore(t, c)
	return actual.(Dynamic), nil
}

func compile(t reflect.Type) (Dynamic, error) {
	switch t {
	case typeValue:
		return unit[engine.Value](Value), nil
	case typeString:
		return unit[engine.String](JSString), nil
	case typeObject:
		return unit[engine.Object](Object), nil
	case typeArray:
		return unit[engine.Array](Array), nil
	case typeDate:
		return unit[engine.Date](Date), nil
	case typePromise:
		return unit[engine.Promise](Promise), nil
	case typeFunction:
		return unit[engine.Function](Function), nil
	case typeTime:
		return unit[time.Time](Time), nil
	}

	var base Dynamic
	switch t.Kind() {
	case reflect.Bool:
		base = unit[bool](Bool)
	case reflect.Int:
		base = integer[int]()
	case reflect.Int8:
		base = integer[int8]()
	case reflect.Int16:
		base = integer[int16]()
	case reflect.Int32:
		base = integer[int32]()
	case reflect.Int64:
		base = integer[int64]()
	case reflect.Uint:
		base = integer[uint]()
	case reflect.Uint8:
		base = integer[uint8]()
	case reflect.Uint16:
		base = integer[uint16]()
	case reflect.Uint32:
		base = integer[uint32]()
	case reflect.Uint64:
		base = integer[uint64]()
	case reflect.Float32:
		base = unit[float32](Float32)
	case reflect.Float64:
		base = unit[float64](Float64)
	case reflect.String:
		base = unit[string](String)

	case reflect.Pointer:
		return compileOptional(t)
	case reflect.Slice:
		return compileVector(t)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return exportInto(t), nil
		}
		return nil, unsupported(t)
	default:
		return nil, unsupported(t)
	}

	if t.PkgPath() == "" {
		return base, nil
	}
	// Named types such as `type Port uint16` convert through their kind.
	return func(cx *engine.Context, v engine.Value, strict bool, b Behavior) (reflect.Value, error) {
		out, err := base(cx, v, strict, b)
		if err != nil {
			return reflect.Value{}, err
		}
		return out.Convert(t), nil
	}, nil
}

func compileOptional(t reflect.Type) (Dynamic, error) {
	elem, err := For(t.Elem())
	if err != nil {
		return nil, err
	}
	opt := Optional(elem)
	return func(cx *engine.Context, v engine.Value, strict bool, b Behavior) (reflect.Value, error) {
		p, err := opt(cx, v, strict, b)
		if err != nil {
			return reflect.Value{}, err
		}
		if p == nil {
			return reflect.Zero(t), nil
		}
		out := reflect.New(t.Elem())
		out.Elem().Set(*p)
		return out, nil
	}, nil
}

func compileVector(t reflect.Type) (Dynamic, error) {
	elem, err := For(t.Elem())
	if err != nil {
		return nil, err
	}
	vec := Vector(elem)
	return func(cx *engine.Context, v engine.Value, strict bool, b Behavior) (reflect.Value, error) {
		items, err := vec(cx, v, strict, b)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			out.Index(i).Set(item)
		}
		return out, nil
	}, nil
}

func exportInto(t reflect.Type) Dynamic {
	return func(cx *engine.Context, v engine.Value, _ bool, _ Behavior) (reflect.Value, error) {
		if err := cx.AssertSameRealm(v); err != nil {
			return reflect.Value{}, err
		}
		x, err := v.Export()
		if err != nil {
			return reflect.Value{}, typeErrorCause(errors.PhaseConvert, t.String(), v, "Unable to Export Value", err)
		}
		out := reflect.New(t).Elem()
		if x != nil {
			out.Set(reflect.ValueOf(x))
		}
		return out, nil
	}
}

func unit[T any](conv Converter[T, Unit]) Dynamic {
	return func(cx *engine.Context, v engine.Value, strict bool, _ Behavior) (reflect.Value, error) {
		out, err := conv(cx, v, strict, Unit{})
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(out), nil
	}
}

func integer[T constraints.Integer]() Dynamic {
	return func(cx *engine.Context, v engine.Value, strict bool, b Behavior) (reflect.Value, error) {
		out, err := Integer[T](cx, v, strict, b)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(out), nil
	}
}

func unsupported(t reflect.Type) error {
	return errors.New(errors.PhaseBind, errors.KindType).
		GoType(t.String()).
		Detail("unsupported conversion target").
		Build()
}
