// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// Package validate provides bounds/length/presence checks returning typed
// validation failures, plus a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arcadia-gg/arcadia/internal/platform/apperr"
)

var (
	// uuidRegex matches the canonical lower-case hyphenated UUID text form.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Sentinel identifier values that are never valid entity references.
const (
	nilUUID = "00000000-0000-0000-0000-000000000000"
	maxUUID = "ffffffff-ffff-ffff-ffff-ffffffffffff"
)

// # Standalone Checks

// Length validates that value's byte length falls within [min, max] inclusive.
//
// An empty value with min > 0 fails as a required-field violation; otherwise
// values shorter than min or longer than max fail with the offending bound in
// the message. Returns nil when the value is within bounds.
func Length(name, value string, min, max int) error {
	length := len(value)
	switch {
	case min > 0 && length == 0:
		return fieldError(name, "This field is required")
	case length < min:
		return fieldError(name, fmt.Sprintf("Must be at least %d", min))
	case length > max:
		return fieldError(name, fmt.Sprintf("Must be at most %d", max))
	}
	return nil
}

// InRange validates that a numeric value falls within [min, max] inclusive.
func InRange[T int | int32 | int64 | uint | uint32 | uint64](name string, value, min, max T) error {
	switch {
	case value < min:
		return fieldError(name, fmt.Sprintf("Must be at least %d", min))
	case value > max:
		return fieldError(name, fmt.Sprintf("Must be at most %d", max))
	}
	return nil
}

// Identifier validates that value is a canonical UUID string usable as an
// entity reference.
//
// Beyond the textual format (36 chars, lower-case hex, dashes at 8/13/18/23),
// the all-zero and all-max sentinel values are rejected since no row is ever
// keyed by them.
func Identifier(name, value string) error {
	if !uuidRegex.MatchString(value) {
		return fieldError(name, "Must be a valid UUID")
	}
	if value == nilUUID || value == maxUUID {
		return fieldError(name, "Must not be a reserved UUID")
	}
	return nil
}

// # Chainable Validator

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the byte length exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the byte length is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if len(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// UUID fails if the value is not a valid entity identifier per [Identifier].
func (v *Validator) UUID(field, value string) *Validator {
	if err := Identifier(field, value); err != nil {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("tag", len(tag) > 32, "Maximum 32 characters")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// fieldError builds a single-field validation failure.
func fieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
