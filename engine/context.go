package engine

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grafana/sobek"
	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/errors"
	"github.com/wippyai/jsbridge/root"
)

// Context is one engine realm: a sobek runtime, its root stack and its
// identity. Conversions borrow a Context; they never own it.
// A Context is not safe for concurrent use.
type Context struct {
	id      uuid.UUID
	vm      *sobek.Runtime
	roots   *root.Stack
	log     *zap.Logger
	isArray sobek.Callable
	valueOf map[string]sobek.Callable
	closed  bool
}

// New creates a Context with a fresh realm.
func New(opts ...Option) *Context {
	cfg := buildConfig(opts)

	vm := sobek.New()
	if cfg.MaxCallStackSize > 0 {
		vm.SetMaxCallStackSize(cfg.MaxCallStackSize)
	}
	if cfg.TimeSource != nil {
		vm.SetTimeSource(cfg.TimeSource)
	}

	cx := &Context{
		id:    cfg.RealmID,
		vm:    vm,
		roots: root.NewStack(),
		log:   cfg.Logger.Named("engine").With(zap.String("realm", cfg.RealmID.String())),
	}

	// Captured before any user script runs so later tampering with the
	// global Array cannot change what counts as an array.
	if arrayCtor, ok := vm.Get("Array").(*sobek.Object); ok {
		cx.isArray, _ = sobek.AssertFunction(arrayCtor.Get("isArray"))
	}
	cx.valueOf = make(map[string]sobek.Callable, 4)
	for _, name := range []string{"Boolean", "Number", "String", "BigInt"} {
		if f := protoMethod(vm, name, "valueOf"); f != nil {
			cx.valueOf[name] = f
		}
	}

	cx.log.Debug("context created")
	return cx
}

func protoMethod(vm *sobek.Runtime, ctor, method string) sobek.Callable {
	c, ok := vm.Get(ctor).(*sobek.Object)
	if !ok {
		return nil
	}
	proto, ok := c.Get("prototype").(*sobek.Object)
	if !ok {
		return nil
	}
	f, _ := sobek.AssertFunction(proto.Get(method))
	return f
}

// ID returns the realm identifier.
func (cx *Context) ID() uuid.UUID {
	return cx.id
}

// Runtime returns the underlying sobek runtime.
func (cx *Context) Runtime() *sobek.Runtime {
	return cx.vm
}

// Roots returns the context's root stack.
func (cx *Context) Roots() *root.Stack {
	return cx.roots
}

// Logger returns the context logger.
func (cx *Context) Logger() *zap.Logger {
	return cx.log
}

// RootValue leases raw under this context. A nil raw value is rooted as undefined.
func (cx *Context) RootValue(raw sobek.Value) Value {
	if raw == nil {
		raw = sobek.Undefined()
	}
	return Value{cx: cx, raw: raw}
}

// Undefined returns a rooted undefined value.
func (cx *Context) Undefined() Value {
	return cx.RootValue(sobek.Undefined())
}

// Null returns a rooted null value.
func (cx *Context) Null() Value {
	return cx.RootValue(sobek.Null())
}

// ToValue converts a Go value into an engine value of this realm.
// Objects belonging to another realm are rejected.
func (cx *Context) ToValue(v any) (Value, error) {
	var raw sobek.Value
	if err := cx.Guard(func() {
		raw = cx.vm.ToValue(v)
	}); err != nil {
		return Value{}, errors.TypeCause(errors.PhaseRealm, MsgForeignRealm, err)
	}
	return cx.RootValue(raw), nil
}

// Global returns the realm's global object.
func (cx *Context) Global() Object {
	return Object{Value: cx.RootValue(cx.vm.GlobalObject())}
}

// Eval runs src as a script and returns its completion value.
// A thrown exception is reported as a KindNone error whose Cause is the exception.
func (cx *Context) Eval(src string) (Value, error) {
	return cx.EvalScript("<eval>", src)
}

// EvalScript runs src under the given script name.
func (cx *Context) EvalScript(name, src string) (Value, error) {
	raw, err := cx.vm.RunScript(name, src)
	if err != nil {
		return Value{}, errors.None(errors.PhaseEval, err)
	}
	return cx.RootValue(raw), nil
}

// Interrupt asks the engine to abort running script. The next engine call
// fails with a *sobek.InterruptedError.
func (cx *Context) Interrupt(reason any) {
	cx.log.Debug("interrupt requested", zap.Any("reason", reason))
	cx.vm.Interrupt(reason)
}

// ClearInterrupt resets a pending interrupt.
func (cx *Context) ClearInterrupt() {
	cx.vm.ClearInterrupt()
}

// Guard runs f, converting a JavaScript exception thrown inside it into an
// error. Uncatchable engine errors (interrupts, stack overflow) are returned
// as well; any other panic propagates.
func (cx *Context) Guard(f func()) (err error) {
	defer func() {
		if x := recover(); x != nil {
			if e, ok := x.(error); ok && isUncatchable(e) {
				err = e
				return
			}
			panic(x)
		}
	}()
	if ex := cx.vm.Try(f); ex != nil {
		return ex
	}
	return nil
}

func isUncatchable(err error) bool {
	var interrupted *sobek.InterruptedError
	var overflow *sobek.StackOverflowError
	return stderrors.As(err, &interrupted) || stderrors.As(err, &overflow)
}

// Close releases the context. It reports root stack entries that were
// never popped.
func (cx *Context) Close() error {
	if cx.closed {
		return nil
	}
	cx.closed = true
	if err := cx.roots.Close(); err != nil {
		cx.log.Error("context closed with live roots", zap.Error(err))
		return fmt.Errorf("close realm %s: %w", cx.id, err)
	}
	cx.log.Debug("context closed",
		zap.Uint64("pushes", cx.roots.Pushes()),
		zap.Uint64("pops", cx.roots.Pops()),
	)
	return nil
}
