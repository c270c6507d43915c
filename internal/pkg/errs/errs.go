// Package errs provides the standardized error types used across the
// ordering engine. Each category follows the same pattern: a sentinel
// error, a struct carrying details, constructors with and without a
// cause, an Error() formatter and an Unwrap() to the sentinel so callers
// can classify failures with errors.Is.
//
// Categories and their HTTP mapping (applied by the inbound adapter):
//   - ValueIsRequiredError / ValueIsInvalidError — caller-facing validation, 400
//   - ObjectNotFoundError — unknown meal/seller/order/coupon, 404
//   - ConflictError — already-claimed order, illegal status edge,
//     double coupon redemption, 409
//   - NotAuthorizedError — wrong role or non-owner, 403
//
// Anything not matched by these sentinels is treated as an
// infrastructure failure and surfaced as a 500 with the transaction
// rolled back in full.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueIsRequired is the sentinel for missing required values.
	ErrValueIsRequired = errors.New("value is required")
	// ErrValueIsInvalid is the sentinel for malformed or out-of-domain values.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrObjectNotFound is the sentinel for lookups of unknown objects.
	ErrObjectNotFound = errors.New("object not found")
	// ErrConflict is the sentinel for state conflicts: a claim lost to
	// another actor, an illegal status edge, a repeated coupon redemption.
	ErrConflict = errors.New("conflict")
	// ErrNotAuthorized is the sentinel for role or ownership violations.
	ErrNotAuthorized = errors.New("not authorized")
)

// sanitize flattens newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError indicates a required parameter was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a supplied value violates a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError indicates the requested change lost to the current state:
// the order was already claimed, the status edge is illegal, or the
// coupon was already redeemed for this order. It is an expected business
// outcome, never a generic failure.
type ConflictError struct {
	Message string
	Cause   error
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func NewConflictErrorWithCause(message string, cause error) *ConflictError {
	return &ConflictError{Message: message, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, sanitize(e.Message), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotAuthorizedError indicates the acting user lacks the role or the
// ownership required for the operation.
type NotAuthorizedError struct {
	Action string
	Cause  error
}

func NewNotAuthorizedError(action string) *NotAuthorizedError {
	return &NotAuthorizedError{Action: action}
}

func NewNotAuthorizedErrorWithCause(action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Action: action, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrNotAuthorized, sanitize(e.Action), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrNotAuthorized, sanitize(e.Action))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}
