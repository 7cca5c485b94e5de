// Package errors provides error handling for aspen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
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
//	if errors.Is(err, errors.ErrAmbiguous) {
//	    // retry with the careful parser
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

// Sentinel errors shared across aspen packages.
// Use these with errors.Is() for type-safe error checking, and wrap them
// with errors.Wrap() to add context while preserving the type.
var (
	// ErrAmbiguous indicates the fast parser could not safely decompose a
	// line and the careful parser should be used instead. It is handled
	// internally by the parser selector and only surfaces when escalation
	// is disabled.
	ErrAmbiguous = New("ambiguous syntax")

	// ErrSyntax indicates a line violates the ground-term grammar.
	ErrSyntax = New("syntax error")

	// ErrView indicates a pipeline view's precondition was violated by a
	// specific term.
	ErrView = New("view not applicable")

	// ErrDecoderMismatch indicates a cardinality violation while decoding
	// an answer set into objects.
	ErrDecoderMismatch = New("decoder cardinality mismatch")

	// ErrRejected is returned by decoder constructors to discard one
	// candidate object without aborting the whole decode.
	ErrRejected = New("candidate rejected")
)

// IsAmbiguous reports whether err is or wraps ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return err != nil && Is(err, ErrAmbiguous)
}

// IsSyntax reports whether err is or wraps ErrSyntax.
func IsSyntax(err error) bool {
	return err != nil && Is(err, ErrSyntax)
}

// IsRejected reports whether err is or wraps ErrRejected.
func IsRejected(err error) bool {
	return err != nil && Is(err, ErrRejected)
}
