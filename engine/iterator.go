package engine

import (
	"fmt"

	"github.com/grafana/sobek"
	"go.uber.org/zap"
)

// NonIterableBehavior selects what Init does with a value that has no
// Symbol.iterator method.
type NonIterableBehavior uint8

const (
	// ThrowOnNonIterable raises the engine's TypeError.
	ThrowOnNonIterable NonIterableBehavior = iota
	// AllowNonIterable succeeds with Iterable() == false.
	AllowNonIterable
)

// IteratorState tracks a ForOfIterator through its lifecycle.
type IteratorState uint8

const (
	IteratorUninitialized IteratorState = iota
	IteratorInitialized
	IteratorYielding
	IteratorDone
	IteratorRejected
	IteratorFailed
)

func (s IteratorState) String() string {
	switch s {
	case IteratorUninitialized:
		return "uninitialized"
	case IteratorInitialized:
		return "initialized"
	case IteratorYielding:
		return "yielding"
	case IteratorDone:
		return "done"
	case IteratorRejected:
		return "rejected"
	case IteratorFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ForOfIterator drives the for-of protocol over an arbitrary iterable.
// It holds engine references between steps, so callers keep it on the
// context's root stack for as long as it is in use.
type ForOfIterator struct {
	cx       *Context
	state    IteratorState
	iterator *sobek.Object
	next     sobek.Callable
	yielded  int
}

// NewForOfIterator returns an uninitialized iterator bound to cx.
func NewForOfIterator(cx *Context) *ForOfIterator {
	return &ForOfIterator{cx: cx}
}

// State returns the current lifecycle state.
func (it *ForOfIterator) State() IteratorState {
	return it.state
}

// Iterable reports whether Init found an iterator.
func (it *ForOfIterator) Iterable() bool {
	return it.state == IteratorInitialized || it.state == IteratorYielding || it.state == IteratorDone
}

// Init looks up v[Symbol.iterator], calls it and caches the iterator's next
// method. Engine errors are returned as-is and leave the iterator Failed.
func (it *ForOfIterator) Init(v Value, behavior NonIterableBehavior) error {
	if it.state != IteratorUninitialized {
		return fmt.Errorf("iterator: init in state %s", it.state)
	}

	vm := it.cx.vm
	var method sobek.Value
	if err := it.cx.Guard(func() {
		method = v.Raw().ToObject(vm).GetSymbol(sobek.SymIterator)
	}); err != nil {
		return it.fail(err)
	}

	if method == nil || sobek.IsUndefined(method) || sobek.IsNull(method) {
		if behavior == AllowNonIterable {
			it.state = IteratorRejected
			it.cx.log.Debug("iterator rejected", zap.Stringer("value", v))
			return nil
		}
		return it.fail(it.throw("%s is not iterable", v))
	}

	call, ok := sobek.AssertFunction(method)
	if !ok {
		return it.fail(it.throw("Symbol.iterator is not a function"))
	}
	ret, err := call(v.Raw())
	if err != nil {
		return it.fail(err)
	}
	iterator, ok := ret.(*sobek.Object)
	if !ok {
		return it.fail(it.throw("Result of the Symbol.iterator method is not an object"))
	}

	var nextFn sobek.Value
	if err := it.cx.Guard(func() {
		nextFn = iterator.Get("next")
	}); err != nil {
		return it.fail(err)
	}
	next, ok := sobek.AssertFunction(nextFn)
	if !ok {
		return it.fail(it.throw("iterator.next is not a function"))
	}

	it.iterator = iterator
	it.next = next
	it.state = IteratorInitialized
	it.cx.log.Debug("iterator initialized")
	return nil
}

// Next advances the iterator. When done is false, slot receives the
// yielded value rooted in the iterator's context.
func (it *ForOfIterator) Next(slot *Value) (done bool, err error) {
	switch it.state {
	case IteratorInitialized, IteratorYielding:
	default:
		return false, fmt.Errorf("iterator: next in state %s", it.state)
	}

	ret, err := it.next(it.iterator)
	if err != nil {
		return false, it.fail(err)
	}
	result, ok := ret.(*sobek.Object)
	if !ok {
		return false, it.fail(it.throw("Iterator result %s is not an object", it.cx.RootValue(ret)))
	}

	var value sobek.Value
	if err := it.cx.Guard(func() {
		done = result.Get("done").ToBoolean()
		if !done {
			value = result.Get("value")
		}
	}); err != nil {
		return false, it.fail(err)
	}

	if done {
		it.state = IteratorDone
		it.cx.log.Debug("iterator done", zap.Int("yielded", it.yielded))
		return true, nil
	}
	it.state = IteratorYielding
	it.yielded++
	*slot = it.cx.RootValue(value)
	return false, nil
}

// Drop releases the engine references held by the iterator. The root
// stack calls it when the iterator's entry is popped.
func (it *ForOfIterator) Drop() {
	it.iterator = nil
	it.next = nil
}

func (it *ForOfIterator) fail(err error) error {
	it.state = IteratorFailed
	it.cx.log.Debug("iterator failed", zap.Error(err))
	return err
}

// throw builds a TypeError exception the same way script would observe it.
func (it *ForOfIterator) throw(format string, args ...any) error {
	return it.cx.Guard(func() {
		panic(it.cx.vm.NewTypeError("%s", fmt.Sprintf(format, args...)))
	})
}
