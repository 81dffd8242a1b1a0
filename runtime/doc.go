// Package runtime provides the high-level embedding API for the bridge.
//
// # Quick Start
//
//	rt := runtime.New()
//	defer rt.Close()
//
//	// Evaluate script
//	v, err := rt.Eval("[1, 2, 3].map(x => x * 2)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Convert the result
//	var out []int32
//	if err := convert.Into(rt.Context(), v, false, convert.Default, &out); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // [2 4 6]
//
// # Host Functions
//
// Register Go functions under a global namespace:
//
//	// Register a typed function
//	rt.RegisterFunc("app", "greet", func(name string) string {
//	    return "Hello, " + name
//	})
//
//	// Or implement the Host interface for a full namespace
//	rt.RegisterHost(&MathHost{})
//
// Namespaces may be dotted ("app.math"); each segment becomes a plain
// object. Method names are converted from PascalCase to camelCase.
// Hosts implementing ExplicitRegistrar choose their own names.
//
// # Type Mapping
//
// Parameters are converted with convert.For:
//
//	Go Type          Script value
//	───────────────────────────────
//	bool             ToBoolean
//	int8..uint64     ToNumber + integer behavior
//	float32/float64  ToNumber
//	string           ToString
//	[]T              any iterable (arrays only in strict mode)
//	*T               T, or nil for undefined/null
//	engine.Object    object of this realm
//	engine.Function  callable of this realm
//	time.Time        valid Date
//	any              exported value
//
// Conversion failures are thrown into script as TypeError. Options such as
// function.Strict() and function.WithBehavior() apply per registration.
//
// # Calling Script
//
//	v, err := rt.Call("app.handler", 1, "two")
//
// Exceptions thrown by script come back as errors of kind none whose cause
// is the engine exception.
//
// # Thread Safety
//
// A Runtime owns a single engine realm and is NOT safe for concurrent use.
// The HostRegistry may be populated from multiple goroutines.
package runtime
