// Package domain defines the error taxonomy shared by the ledger engines and
// their orchestrating use cases.
//
// All four classes are detected before any balance or accumulator mutation.
// The engines never retry, log or swallow an error; translation into a
// user-facing failure happens at the presentation layer.
package domain

import "errors"

var (
	// ErrNotFound indicates a referenced account or investment is missing,
	// soft-deleted, or not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input: a negative magnitude, a missing
	// required leg, an unknown event kind.
	ErrValidation = errors.New("validation failed")

	// ErrInvariant indicates an operation that would corrupt a position:
	// an oversell or an over-withdrawal.
	ErrInvariant = errors.New("invariant violation")

	// ErrConversion indicates an unresolvable currency pair.
	ErrConversion = errors.New("conversion unsupported")
)
