package runtime

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
	"github.com/wippyai/jsbridge/function"
)

type Runtime struct {
	cx    *engine.Context
	hosts *HostRegistry
	log   *zap.Logger
}

func New(opts ...engine.Option) *Runtime {
	cx := engine.New(opts...)
	return &Runtime{
		cx:    cx,
		hosts: NewHostRegistry(),
		log:   cx.Logger().Named("runtime"),
	}
}

// Close releases the realm. It reports values still rooted on the
// context's root stack.
func (r *Runtime) Close() error {
	return r.cx.Close()
}

// Context returns the underlying engine context.
func (r *Runtime) Context() *engine.Context {
	return r.cx
}

// RegisterHost exposes all exported methods of h under h.Namespace().
// Method names are converted from PascalCase to camelCase (GetValue -> getValue).
// A host whose methods cannot be bound is not kept; functions registered
// earlier under the same namespace stay.
func (r *Runtime) RegisterHost(h Host, opts ...function.Option) error {
	undo, err := r.hosts.registerHost(h, opts...)
	if err != nil {
		return err
	}
	return r.bind(undo)
}

func (r *Runtime) RegisterFunc(namespace, name string, fn any, opts ...function.Option) error {
	undo, err := r.hosts.registerFunc(namespace, name, fn, opts...)
	if err != nil {
		return err
	}
	return r.bind(undo)
}

// bind installs the registry into the realm. On failure it undoes the
// latest registration and binds again so replaced functions come back.
func (r *Runtime) bind(undo func()) error {
	err := r.hosts.Bind(r.cx)
	if err == nil {
		return nil
	}
	undo()
	if rerr := r.hosts.Bind(r.cx); rerr != nil {
		r.log.Warn("rebind after failed registration", zap.Error(rerr))
	}
	return err
}

func (r *Runtime) Hosts() *HostRegistry {
	return r.hosts
}

// Eval runs src and returns its completion value.
func (r *Runtime) Eval(src string) (engine.Value, error) {
	return r.cx.Eval(src)
}

// EvalInto runs src and converts the result into ptr.
func (r *Runtime) EvalInto(src string, strict bool, b convert.Behavior, ptr any) error {
	v, err := r.cx.Eval(src)
	if err != nil {
		return err
	}
	return convert.Into(r.cx, v, strict, b, ptr)
}

// Call invokes the script function at the dotted global path name.
// Arguments are converted with the engine's Go-to-script mapping; engine
// values pass through unchanged.
func (r *Runtime) Call(name string, args ...any) (engine.Value, error) {
	fn, err := r.lookup(name)
	if err != nil {
		return engine.Value{}, err
	}

	values := make([]engine.Value, len(args))
	for i, a := range args {
		if v, ok := a.(engine.Value); ok {
			values[i] = v
			continue
		}
		v, err := r.cx.ToValue(a)
		if err != nil {
			return engine.Value{}, err
		}
		values[i] = v
	}

	r.log.Debug("call", zap.String("function", name), zap.Int("argc", len(values)))
	return fn.Call(r.cx.Undefined(), values...)
}

func (r *Runtime) lookup(name string) (engine.Function, error) {
	ns, member := "", name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ns, member = name[:i], name[i+1:]
	}

	holder := r.cx.Global()
	if ns != "" {
		var err error
		if holder, err = namespaceObject(r.cx, ns, false); err != nil {
			return engine.Function{}, errors.New(errors.PhaseCall, errors.KindType).
				Detail("resolve %s", name).
				Cause(err).
				Build()
		}
	}

	v, err := holder.Get(member)
	if err != nil {
		return engine.Function{}, err
	}
	if obj, ok := v.AsObject(); ok {
		if fn, ok := r.cx.AsFunction(obj); ok {
			return fn, nil
		}
	}
	return engine.Function{}, errors.New(errors.PhaseCall, errors.KindType).
		Value(v.String()).
		Detail("%s is not a function", name).
		Build()
}
