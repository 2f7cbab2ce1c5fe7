// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

/*
Package apperr defines the centralized error handling framework for Arcadia.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: A closed set of eight classified kinds; every public operation fails
    with exactly one of them, never an unclassified error.
  - Mapping: Fluent helpers to lift arbitrary underlying errors into a kind,
    optionally prefixed with caller-supplied context text.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Arcadia API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] for a malformed request.
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Player") // Returns "Player not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Fluent Mapping

// Any underlying error can be lifted into exactly one kind of the taxonomy,
// with the client-safe message set to "{context}: {underlying}". The original
// error is preserved as the Cause for server-side logging and errors.Is checks.

// MapBadRequest wraps err as a BAD_REQUEST error prefixed with context.
func MapBadRequest(err error, context string) *AppError {
	return mapKind(err, context, "BAD_REQUEST", http.StatusBadRequest)
}

// MapUnauthorized wraps err as an UNAUTHORIZED error prefixed with context.
func MapUnauthorized(err error, context string) *AppError {
	return mapKind(err, context, "UNAUTHORIZED", http.StatusUnauthorized)
}

// MapForbidden wraps err as a FORBIDDEN error prefixed with context.
func MapForbidden(err error, context string) *AppError {
	return mapKind(err, context, "FORBIDDEN", http.StatusForbidden)
}

// MapNotFound wraps err as a NOT_FOUND error prefixed with context.
func MapNotFound(err error, context string) *AppError {
	return mapKind(err, context, "NOT_FOUND", http.StatusNotFound)
}

// MapConflict wraps err as a CONFLICT error prefixed with context.
func MapConflict(err error, context string) *AppError {
	return mapKind(err, context, "CONFLICT", http.StatusConflict)
}

// MapValidation wraps err as a VALIDATION_ERROR prefixed with context.
func MapValidation(err error, context string) *AppError {
	return mapKind(err, context, "VALIDATION_ERROR", http.StatusBadRequest)
}

// MapRateLimited wraps err as a RATE_LIMITED error prefixed with context.
func MapRateLimited(err error, context string) *AppError {
	return mapKind(err, context, "RATE_LIMITED", http.StatusTooManyRequests)
}

// MapInternal wraps err as an INTERNAL_ERROR prefixed with context.
func MapInternal(err error, context string) *AppError {
	return mapKind(err, context, "INTERNAL_ERROR", http.StatusInternalServerError)
}

func mapKind(err error, context, code string, status int) *AppError {
	message := context
	if err != nil {
		message = fmt.Sprintf("%s: %s", context, err)
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
