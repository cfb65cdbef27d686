// Package errors provides structured error types for the game sandbox pipeline.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries a detail message, an optional field path,
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindInvalidModule).
//		Detail("bad magic number").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.SizeLimit(errors.PhaseValidate, got, limit)
//	err := errors.Destroyed(instanceID)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
