package runtime

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
	"github.com/wippyai/jsbridge/function"
)

// Host is the interface for struct-based host modules.
// All exported methods (except Namespace) are exposed to script.
type Host interface {
	// Namespace returns the global path the methods live under (e.g., "app.math").
	Namespace() string
}

// ExplicitRegistrar allows hosts to provide exact script names
// when automatic PascalCase-to-camelCase conversion doesn't apply.
type ExplicitRegistrar interface {
	Register() map[string]any
}

type HostRegistry struct {
	funcs map[string]map[string]*HostFunc
	mu    sync.RWMutex
}

type HostFunc struct {
	Handler  any
	Receiver reflect.Value
	Options  []function.Option
}

func NewHostRegistry() *HostRegistry {
	return &HostRegistry{
		funcs: make(map[string]map[string]*HostFunc),
	}
}

func (r *HostRegistry) RegisterHost(h Host, opts ...function.Option) error {
	_, err := r.registerHost(h, opts...)
	return err
}

func (r *HostRegistry) registerHost(h Host, opts ...function.Option) (func(), error) {
	ns := h.Namespace()
	if err := validNamespace(ns); err != nil {
		return nil, err
	}

	entries := make(map[string]*HostFunc)

	if er, ok := h.(ExplicitRegistrar); ok {
		for name, handler := range er.Register() {
			entries[name] = &HostFunc{
				Handler:  handler,
				Receiver: reflect.ValueOf(h),
				Options:  opts,
			}
		}
		return r.put(ns, entries), nil
	}

	rv := reflect.ValueOf(h)
	rt := rv.Type()

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)

		if !method.IsExported() || method.Name == "Namespace" {
			continue
		}

		entries[toCamelCase(method.Name)] = &HostFunc{
			Handler:  rv.Method(i).Interface(),
			Receiver: rv,
			Options:  opts,
		}
	}

	return r.put(ns, entries), nil
}

func (r *HostRegistry) RegisterFunc(namespace, name string, fn any, opts ...function.Option) error {
	_, err := r.registerFunc(namespace, name, fn, opts...)
	return err
}

func (r *HostRegistry) registerFunc(namespace, name string, fn any, opts ...function.Option) (func(), error) {
	if err := validNamespace(namespace); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.Type(errors.PhaseBind, "function name cannot be empty")
	}

	if reflect.ValueOf(fn).Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseBind, errors.KindType).
			GoType(reflect.TypeOf(fn).String()).
			Detail("handler must be a function").
			Build()
	}

	return r.put(namespace, map[string]*HostFunc{name: {Handler: fn, Options: opts}}), nil
}

// put stores entries under ns. The returned undo puts back whatever the
// entries replaced and leaves every other name in ns alone.
func (r *HostRegistry) put(ns string, entries map[string]*HostFunc) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[ns] == nil {
		r.funcs[ns] = make(map[string]*HostFunc)
	}
	prev := make(map[string]*HostFunc, len(entries))
	for name, hf := range entries {
		prev[name] = r.funcs[ns][name]
		r.funcs[ns][name] = hf
	}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		for name, hf := range prev {
			if hf == nil {
				delete(r.funcs[ns], name)
			} else {
				r.funcs[ns][name] = hf
			}
		}
		if len(r.funcs[ns]) == 0 {
			delete(r.funcs, ns)
		}
	}
}

// Namespaces returns the registered namespaces in sorted order.
func (r *HostRegistry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.funcs))
	for ns := range r.funcs {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}

// Functions returns the script names registered under namespace, sorted.
func (r *HostRegistry) Functions(namespace string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.funcs[namespace]))
	for name := range r.funcs[namespace] {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Bind installs every registered function into cx. Namespaces become
// (possibly nested) global objects; existing namespace objects are reused.
func (r *HostRegistry) Bind(cx *engine.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ns := range sortedKeys(r.funcs) {
		target, err := namespaceObject(cx, ns, true)
		if err != nil {
			return err
		}

		funcs := r.funcs[ns]
		for _, name := range sortedKeys(funcs) {
			hf := funcs[name]
			opts := append([]function.Option{function.WithName(name)}, hf.Options...)
			fn, err := function.Wrap(cx, hf.Handler, opts...)
			if err != nil {
				return registration(ns, name, err)
			}
			if err := target.Set(name, fn.Value); err != nil {
				return registration(ns, name, err)
			}
		}
		cx.Logger().Debug("host bound", zap.String("namespace", ns), zap.Int("functions", len(funcs)))
	}
	return nil
}

func registration(ns, name string, err error) error {
	kind := errors.KindOf(err)
	if kind == "" {
		kind = errors.KindNone
	}
	return errors.New(errors.PhaseBind, kind).
		Detail("register %s.%s", ns, name).
		Cause(err).
		Build()
}

func validNamespace(ns string) error {
	if ns == "" {
		return errors.Type(errors.PhaseBind, "namespace cannot be empty")
	}
	for _, part := range strings.Split(ns, ".") {
		if part == "" {
			return errors.New(errors.PhaseBind, errors.KindType).
				Detail("invalid namespace %q", ns).
				Build()
		}
	}
	return nil
}

// namespaceObject walks the dotted path ns from the global object. With
// create set, missing segments are added as plain objects.
func namespaceObject(cx *engine.Context, ns string, create bool) (engine.Object, error) {
	obj := cx.Global()
	for _, part := range strings.Split(ns, ".") {
		v, err := obj.Get(part)
		if err != nil {
			return engine.Object{}, err
		}
		if next, ok := v.AsObject(); ok {
			obj = next
			continue
		}
		if !create || !v.IsUndefined() {
			return engine.Object{}, errors.New(errors.PhaseBind, errors.KindType).
				Value(v.String()).
				Detail("%q is not an object", part).
				Build()
		}

		fresh := cx.RootValue(cx.Runtime().NewObject())
		if err := obj.Set(part, fresh); err != nil {
			return engine.Object{}, err
		}
		obj, _ = fresh.AsObject()
	}
	return obj, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// toCamelCase converts PascalCase to camelCase.
// Handles acronyms: HTTPGet -> httpGet, URL -> url
func toCamelCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return s
	}

	end := 1
	for end < len(runes) && unicode.IsUpper(runes[end]) {
		end++
	}
	// Last uppercase before lowercase starts the next word
	if end > 1 && end < len(runes) && unicode.IsLower(runes[end]) {
		end--
	}

	for i := 0; i < end; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
