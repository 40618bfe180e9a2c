// Package errors provides the classified error primitives used across sitegen.
//
// Errors carry a category (config, validation, render, storage, ...), a
// severity and a retry strategy. Adapters translate them into HTTP status
// codes and JSON payloads, or into CLI exit codes.
//
//	err := errors.NewError(errors.CategoryFileSystem, "dist directory missing").
//		WithContext("dist", distDir).
//		Fatal().
//		Build()
package errors
