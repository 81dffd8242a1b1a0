// Package engine is the boundary over the embedded JavaScript engine.
//
// Everything above this package talks to script values through the types
// defined here rather than through sobek directly.
//
// # Architecture
//
//	Context       - One realm: a sobek runtime, its root stack and realm ID
//	Value         - A rooted lease on an engine value, tagged by Tag
//	Object        - A Value known to be an object, refined further into
//	                Array, Date, Promise and Function
//	ForOfIterator - The for-of protocol as an explicit state machine
//	CallArgs      - The raw record of a native call (vp layout)
//
// # Coercion
//
// ToBoolean, ToNumber and ToString follow the language's conversion rules.
// ToNumber and ToString may call valueOf/toString on objects; an exception
// thrown there is returned as an error, never swallowed.
//
// # Realms
//
// AssertSameRealm rejects objects allocated by another Context. Converters
// run it on every object they hand back.
//
// # Iterator lifecycle
//
//	Uninitialized --Init--> Initialized --Next--> Yielding --Next--> Done
//	      |                      |
//	      +--> Rejected          +--> Failed
//
// Nothing is retried. Calling Init or Next in a terminal state returns an error.
package engine
