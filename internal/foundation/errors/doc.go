// Package errors provides the classified error type used across tagpages.
//
// A ClassifiedError carries a category (what kind of failure), a severity and
// structured context. The fluent ErrorBuilder is the only way to create one:
//
//	err := errors.NotFoundError("collection not found").
//		WithContext("collection", name).
//		Build()
//
// CLIErrorAdapter turns any error into a user-facing message and exit code.
package errors
