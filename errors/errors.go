// Package errors provides error handling for Prism.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Structured hints and details for actionable failure reports
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
//	if errors.Is(err, errors.ErrRegistryConflict) {
//	    // handle immutable-key violation
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
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll

	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generation pipeline.
// Every error here is terminal for the (component, platform) task that raised
// it: all are deterministic given the same inputs, so automatic retry would
// reproduce the identical failure. Use errors.Is() to classify, and Wrap()
// to attach the token/rule/platform that makes the report actionable.
var (
	// ErrMissingToken indicates a CSM references a token absent from the token set
	ErrMissingToken = New("missing token")

	// ErrMissingDefaultVariant indicates a variant axis declares no default value
	ErrMissingDefaultVariant = New("variant axis missing default")

	// ErrCapabilityGap indicates a target platform cannot natively express a
	// required contract element. Surfaced, never swallowed: silently dropping
	// an accessibility guarantee is a correctness bug.
	ErrCapabilityGap = New("platform capability gap")

	// ErrValidationFailed indicates an artifact failed its accessibility contract
	ErrValidationFailed = New("accessibility validation failed")

	// ErrGeneratorTimeout indicates a generator exceeded its invocation budget
	ErrGeneratorTimeout = New("generator timed out")

	// ErrRegistryConflict indicates an attempted overwrite of an existing
	// immutable registry key
	ErrRegistryConflict = New("registry key already published")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidSource indicates a CSM or token source document is malformed
	ErrInvalidSource = New("invalid source document")
)

// IsMissingTokenError checks if an error is or wraps ErrMissingToken
func IsMissingTokenError(err error) bool {
	return err != nil && Is(err, ErrMissingToken)
}

// IsCapabilityGapError checks if an error is or wraps ErrCapabilityGap
func IsCapabilityGapError(err error) bool {
	return err != nil && Is(err, ErrCapabilityGap)
}

// IsValidationError checks if an error is or wraps ErrValidationFailed
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidationFailed)
}

// IsConflictError checks if an error is or wraps ErrRegistryConflict
func IsConflictError(err error) bool {
	return err != nil && Is(err, ErrRegistryConflict)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewMissingTokenError reports a token referenced by a CSM that is absent
// from the token set. Both names are carried so batch reports can attribute
// the failure without parsing the message.
func NewMissingTokenError(token, csmID string) error {
	err := Wrapf(ErrMissingToken, "token %q requested by component %q", token, csmID)
	return WithDetailf(err, "token=%s component=%s", token, csmID)
}

// NewMissingDefaultVariantError reports a variant axis with no default value.
func NewMissingDefaultVariantError(axis, csmID string) error {
	err := Wrapf(ErrMissingDefaultVariant, "axis %q in component %q", axis, csmID)
	return WithHint(err, "every variant axis must declare a default so the resolver can produce a style set with no explicit selection")
}

// NewCapabilityGapError reports a contract element the platform cannot express.
func NewCapabilityGapError(platform, requirement string) error {
	return Wrapf(ErrCapabilityGap, "platform %q cannot express %s", platform, requirement)
}

// NewGeneratorTimeoutError reports a generator that exceeded its budget.
func NewGeneratorTimeoutError(platform string, budget string) error {
	return Wrapf(ErrGeneratorTimeout, "platform %q exceeded %s", platform, budget)
}
