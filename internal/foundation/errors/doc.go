// Package errors provides the classified error primitives used across docsbuild.
//
// Errors carry a category (resolution, conversion, filesystem, ...), a severity
// and a retry strategy, plus a small context map for structured logging. The
// fluent builder keeps construction uniform:
//
//	err := errors.ConversionError("renderer failed").
//		WithCause(cause).
//		WithContext("staging", stagingPath).
//		Build()
//
// CLIErrorAdapter maps categories to process exit codes.
package errors
