// Package errors provides structured error types for the jsbridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// There are two kinds: KindType for conversion mismatches, failed coercions,
// failed iteration steps and realm violations, and KindNone for failures where
// the engine has already raised its own exception and no extra message applies.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindType).
//		GoType("uint8").
//		Detail("Expected Number in Strict Conversion").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Type(errors.PhaseConvert, "Expected Array")
//	err := errors.None(errors.PhaseCall, exception)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
