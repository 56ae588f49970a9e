// Package errors provides foundational, type-safe error primitives used across docsite.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, validation, filesystem, drift, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Whether rerunning can help or the user must act
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.ValidationError("site configuration is invalid").
//		WithContext("issues", issues).
//		Build()
package errors
