package root

import (
	"errors"
	"fmt"
)

// ErrLeaked is returned by Close when entries are still rooted.
var ErrLeaked = errors.New("root stack closed with live entries")

// Stack is a strictly nested (LIFO) register of transient engine state.
// While an entry is on the stack its value is reachable from the owning
// context. A Stack is confined to its context's goroutine.
type Stack struct {
	entries   []*Entry
	observers []*observerSlot
	next      Handle
	pushes    uint64
	pops      uint64
	closed    bool
}

// Entry is a single rooted record. It must be popped exactly once,
// after every entry pushed above it.
type Entry struct {
	stack  *Stack
	value  any
	handle Handle
	popped bool
}

// NewStack creates an empty root stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]*Entry, 0, 8),
	}
}

// Push roots v and returns its entry.
func (s *Stack) Push(v any) *Entry {
	if s.closed {
		panic("root: push on closed stack")
	}

	s.next++
	e := &Entry{
		stack:  s,
		value:  v,
		handle: s.next,
	}
	s.entries = append(s.entries, e)
	s.pushes++

	s.notify(Event{
		Type:   EventPushed,
		Handle: e.handle,
		Depth:  len(s.entries),
		Value:  v,
	})

	return e
}

// Pop removes the entry from its stack. Popping an entry that is not on
// top, or popping twice, violates the nesting discipline and panics.
func (e *Entry) Pop() {
	s := e.stack
	if e.popped {
		panic(fmt.Sprintf("root: entry %d popped twice", e.handle))
	}
	n := len(s.entries)
	if n == 0 || s.entries[n-1] != e {
		panic(fmt.Sprintf("root: entry %d popped out of order (depth %d)", e.handle, n))
	}

	s.entries[n-1] = nil
	s.entries = s.entries[:n-1]
	s.pops++
	e.popped = true

	if d, ok := e.value.(Dropper); ok {
		d.Drop()
	}

	s.notify(Event{
		Type:   EventPopped,
		Handle: e.handle,
		Depth:  len(s.entries),
		Value:  e.value,
	})
	e.value = nil
}

// Value returns the rooted value, or nil once popped.
func (e *Entry) Value() any {
	return e.value
}

// Handle returns the entry's handle.
func (e *Entry) Handle() Handle {
	return e.handle
}

// Popped reports whether the entry has been released.
func (e *Entry) Popped() bool {
	return e.popped
}

// With roots v for the duration of fn. The entry is popped on every exit
// path, including a panic unwinding through fn.
func (s *Stack) With(v any, fn func() error) error {
	e := s.Push(v)
	defer e.Pop()
	return fn()
}

// Depth returns the number of live entries.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Pushes returns the total number of Push calls.
func (s *Stack) Pushes() uint64 {
	return s.pushes
}

// Pops returns the total number of completed Pop calls.
func (s *Stack) Pops() uint64 {
	return s.pops
}

// Top returns the most recently pushed live entry.
func (s *Stack) Top() (*Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// Each walks live entries from top to bottom until fn returns false.
func (s *Stack) Each(fn func(*Entry) bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if !fn(s.entries[i]) {
			return
		}
	}
}

type observerSlot struct {
	o Observer
}

// Subscribe adds an observer for push/pop events and returns a function
// that removes it.
func (s *Stack) Subscribe(o Observer) (unsubscribe func()) {
	slot := &observerSlot{o: o}
	s.observers = append(s.observers, slot)
	return func() {
		for i, obs := range s.observers {
			if obs == slot {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Close stops accepting pushes. It reports ErrLeaked if entries are still live.
func (s *Stack) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if n := len(s.entries); n > 0 {
		return fmt.Errorf("%w: %d", ErrLeaked, n)
	}
	return nil
}

func (s *Stack) notify(e Event) {
	for _, slot := range s.observers {
		slot.o.OnRootEvent(e)
	}
}
