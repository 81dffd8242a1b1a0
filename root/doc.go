// Package root provides the root stack used to keep transient engine state
// reachable while native code drives the engine.
//
// Some operations hold engine-internal state across calls that can run user
// script, allocate, or trigger collection. The for-of iterator used by
// sequence conversion is the main example. Such state is pushed onto the
// owning context's root stack before the first such call and popped on every
// exit path.
//
// # Nesting Discipline
//
// Push and pop are strictly nested. Every entry is popped exactly once, after
// every entry pushed above it:
//
//	stack := root.NewStack()
//
//	entry := stack.Push(iterator)
//	defer entry.Pop()
//
// Or let the stack scope the entry:
//
//	err := stack.With(iterator, func() error {
//	    return drive(iterator)
//	})
//
// Violating the discipline (popping out of order, popping twice, pushing onto
// a closed stack) is a programming error and panics.
//
// # Observers
//
// Observers see every push and pop. Tests use them to check that a
// conversion leaves the stack balanced on both success and failure paths:
//
//	unsubscribe := stack.Subscribe(root.ObserverFunc(func(e root.Event) {
//	    log.Printf("%s %d depth=%d", e.Type, e.Handle, e.Depth)
//	}))
//	defer unsubscribe()
//
// # Dropper
//
// Values implementing Dropper are told when their entry is popped so they can
// release engine references.
//
// # Thread Safety
//
// A Stack belongs to one engine context and is not safe for concurrent use.
package root
