// Package convert turns engine values into Go values.
//
// Every conversion has the same shape:
//
//	type Converter[T, C any] func(cx *engine.Context, v engine.Value, strict bool, cfg C) (T, error)
//
// strict rejects implicit coercion. cfg is the per-type configuration:
// Behavior for integers, Unit for everything else.
//
// # Integers
//
//	Default       NaN and infinities become 0, then truncate and wrap mod 2^width
//	Clamp         NaN becomes 0, saturate to [MIN, MAX], then truncate
//	EnforceRange  reject non-finite, non-integral and out-of-range values
//
// # Composites
//
// Optional maps null and undefined to nil. Vector drives the for-of protocol
// over any iterable and keeps the iterator on the root stack while it runs.
// Both forward strictness and configuration to the element converter.
//
//	conv := convert.Vector(convert.Optional(convert.Uint8))
//	vals, err := convert.FromValue(cx, v, false, convert.Clamp, conv)
//
// # Dynamic targets
//
// Into and For pick a converter by reflection; ParseType reads the same
// target types from expressions such as "vec<opt<u8>>".
//
// Failures are *errors.Error values of KindType. The message is available
// through errors.Message and matches the Msg constants in this package.
package convert
