// Package jsbridge converts values of a JavaScript engine into typed Go
// values and exposes Go functions to script.
//
// The engine is sobek. Every conversion borrows an engine Context and
// leaves the Context's root stack the way it found it.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jsbridge/
//	├── runtime/         High-level API: host registration, Eval, Call
//	├── function/        Native functions, call arguments, reflective Wrap
//	├── convert/         Converters from engine values to Go types
//	├── engine/          Context, values, coercions, realms, iteration
//	├── root/            LIFO root stack with leak detection
//	├── errors/          Structured error types for debugging
//	└── cmd/jsconv/      CLI and interactive converter
//
// # Quick Start
//
// Evaluate and convert:
//
//	rt := runtime.New()
//	defer rt.Close()
//
//	var ports []uint16
//	err := rt.EvalInto("[80, 443]", true, convert.EnforceRange, &ports)
//
// Convert with an explicit converter:
//
//	cx := rt.Context()
//	v, _ := cx.Eval("300")
//	n, err := convert.FromValue(cx, v, false, convert.Clamp, convert.Uint8) // 255
//
// # Conversion Model
//
// A converter takes the Context, the value, a strict flag and a per-type
// configuration. Strict conversions reject values that would need implicit
// coercion; loose ones apply the engine's coercion rules, which may run
// script. Integer converters take a Behavior:
//
//   - Default: truncate and wrap modulo 2^width
//   - EnforceRange: reject anything but finite integers in range
//   - Clamp: saturate to the type's bounds
//
// Optional and Vector compose converters for undefined/null and iterables.
//
// # Errors
//
// Conversion failures are errors of kind type with a fixed message. Failures
// where the engine already threw are of kind none and carry the exception.
//
// # Thread Safety
//
// A Context and the Runtime that owns it are NOT safe for concurrent use.
// Converters themselves hold no state and may be shared.
package jsbridge
