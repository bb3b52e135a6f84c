// Package errors provides error handling for the miner.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for the mining pipeline
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrCorpusMalformed) {
//	    // handle malformed input
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for the mining pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrCorpusMalformed indicates the input corpus violates structural
	// preconditions: duplicate data point identifiers or colliding
	// structural element indices within one data point.
	ErrCorpusMalformed = New("corpus malformed")

	// ErrNoDistribution indicates a requested metric kind has no computed
	// distribution to operate on.
	ErrNoDistribution = New("no distribution available")

	// ErrNoStructuralMotif indicates an itemset lacks the structural backing
	// required for the requested operation (e.g. library construction).
	ErrNoStructuralMotif = New("itemset has no structural motif")

	// ErrNotMined indicates a consumer ran before the mining stage.
	ErrNotMined = New("mining has not been run")
)

// IsCorpusMalformedError checks if an error is or wraps ErrCorpusMalformed.
func IsCorpusMalformedError(err error) bool {
	return err != nil && Is(err, ErrCorpusMalformed)
}
