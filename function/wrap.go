package function

import (
	"fmt"
	"reflect"

	"github.com/grafana/sobek"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

var (
	argumentsType = reflect.TypeOf((*Arguments)(nil))
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

type rawer interface {
	Raw() sobek.Value
}

// Config controls how Wrap converts arguments.
type Config struct {
	Name     string
	Strict   bool
	Behavior convert.Behavior
}

// Option configures Wrap.
type Option func(*Config)

// WithName sets the function's name property.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// Strict rejects implicit coercion of arguments.
func Strict() Option {
	return func(c *Config) {
		c.Strict = true
	}
}

// WithBehavior sets the integer policy for integer parameters.
func WithBehavior(b convert.Behavior) Option {
	return func(c *Config) {
		c.Behavior = b
	}
}

// Wrap exposes a Go function to script. Parameters are converted with
// convert.For; a leading *Arguments parameter receives the raw call
// instead. Results may be empty, a single value, an error, or a value
// followed by an error. A non-nil error is thrown.
func Wrap(cx *engine.Context, fn any, opts ...Option) (engine.Function, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return engine.Function{}, errors.New(errors.PhaseBind, errors.KindType).
			GoType(fmt.Sprintf("%T", fn)).
			Detail("handler must be a function").
			Build()
	}
	ft := fv.Type()

	b, err := bind(ft)
	if err != nil {
		return engine.Function{}, err
	}

	native := func(args *Arguments) error {
		in, err := b.arguments(args, cfg)
		if err != nil {
			return err
		}
		return b.results(args, fv.Call(in))
	}
	return New(cx, cfg.Name, b.arity, native), nil
}

type binding struct {
	ft        reflect.Type
	withArgs  bool
	params    []convert.Dynamic
	variadic  convert.Dynamic
	arity     int
	hasValue  bool
	errResult bool
}

func bind(ft reflect.Type) (*binding, error) {
	b := &binding{ft: ft}

	first := 0
	if ft.NumIn() > 0 && ft.In(0) == argumentsType {
		b.withArgs = true
		first = 1
	}

	last := ft.NumIn()
	if ft.IsVariadic() {
		last--
		conv, err := convert.For(ft.In(last).Elem())
		if err != nil {
			return nil, fmt.Errorf("variadic parameter: %w", err)
		}
		b.variadic = conv
	}
	for i := first; i < last; i++ {
		conv, err := convert.For(ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		b.params = append(b.params, conv)
	}
	b.arity = len(b.params)

	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			b.errResult = true
		} else {
			b.hasValue = true
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, errors.New(errors.PhaseBind, errors.KindType).
				GoType(ft.String()).
				Detail("second result must be error").
				Build()
		}
		b.hasValue = true
		b.errResult = true
	default:
		return nil, errors.New(errors.PhaseBind, errors.KindType).
			GoType(ft.String()).
			Detail("at most two results are supported").
			Build()
	}
	return b, nil
}

func (b *binding) arguments(args *Arguments, cfg Config) ([]reflect.Value, error) {
	cx := args.Context()
	in := make([]reflect.Value, 0, b.ft.NumIn())
	if b.withArgs {
		in = append(in, reflect.ValueOf(args))
	}

	for i, conv := range b.params {
		v, err := convert.FromValue(cx, args.Get(i), cfg.Strict, cfg.Behavior, conv)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	if b.variadic != nil {
		for _, arg := range args.Range(len(b.params), args.Len()) {
			v, err := convert.FromValue(cx, arg, cfg.Strict, cfg.Behavior, b.variadic)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func (b *binding) results(args *Arguments, out []reflect.Value) error {
	if b.errResult {
		if errv := out[len(out)-1]; !errv.IsNil() {
			return errv.Interface().(error)
		}
	}
	if !b.hasValue {
		return nil
	}

	result := out[0].Interface()
	if r, ok := result.(rawer); ok {
		args.Rval().SetRaw(r.Raw())
		return nil
	}
	v, err := args.Context().ToValue(result)
	if err != nil {
		return err
	}
	args.Rval().Set(v)
	return nil
}
