// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package apperr defines the centralized error handling framework for the
Rentora client.

It provides a rich error type that bridges the gap between low-level transport
errors and the typed, user-presentable failures the rest of the client reasons
about.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and a
    user-friendly message.
  - Classification: Explicit mapping from upstream HTTP status codes to
    client-side error codes.
  - Recovery: No transport or marketplace-API failure is allowed to escape a
    component boundary untyped.

Every error that leaves a service layer should be wrapped as an [AppError] so
the CLI can decide between inline correction hints and generic failure copy.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Rentora client.
//
// It carries a machine-readable code, a message safe to show the user, the
// upstream HTTP status (when one was received), and an optional slice of
// field-level validation errors.
//
// # Security
//
// The Cause field is for diagnostic logging only and is never shown to the
// user, to avoid leaking transport internals into the terminal UI.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "UNAUTHORIZED").
	Code string `json:"code"`
	// Message is a human-readable description safe to show the user.
	Message string `json:"error"`
	// UpstreamStatus is the HTTP status returned by the marketplace API,
	// or 0 when no response was received.
	UpstreamStatus int `json:"-"`
	// Cause is the underlying error, used for diagnostic logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR results.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Error Codes

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeValidationRejected = "VALIDATION_REJECTED"
	CodeNotFound           = "NOT_FOUND"
	CodeUnreachable        = "UNREACHABLE"
	CodeServerError        = "SERVER_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// # Credential / Authorization Errors

// InvalidCredentials creates the error shown when a login attempt is rejected.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:           CodeInvalidCredentials,
		Message:        "Invalid email or password",
		UpstreamStatus: http.StatusUnauthorized,
	}
}

// Unauthorized creates the error raised when the API rejects a bearer token.
// The submission retry policy treats this code as "refresh once, then give up".
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:           CodeUnauthorized,
		Message:        msg,
		UpstreamStatus: http.StatusUnauthorized,
	}
}

// # Validation Errors

// ValidationError creates a client-side (pre-submit) validation failure with
// optional per-field details. It never involves a network round trip.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidationError,
		Message: msg,
		Details: details,
	}
}

// Rejected creates a server-side validation failure (4xx with a message body).
// The upstream message is surfaced verbatim so the user sees exactly what the
// marketplace API objected to.
func Rejected(status int, msg string) *AppError {
	return &AppError{
		Code:           CodeValidationRejected,
		Message:        msg,
		UpstreamStatus: status,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Property") // Returns "Property not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:           CodeNotFound,
		Message:        resource + " not found",
		UpstreamStatus: http.StatusNotFound,
	}
}

// # Transport / Server Errors

// Unreachable creates the error used when no response was received at all
// (connection refused, DNS failure, timeout). The cause is kept for logging.
func Unreachable(cause error) *AppError {
	return &AppError{
		Code:    CodeUnreachable,
		Message: "Cannot reach the Rentora service. Check your connection and try again.",
		Cause:   cause,
	}
}

// Server creates the error used for unexpected 5xx responses. Not retried
// automatically.
func Server(status int) *AppError {
	return &AppError{
		Code:           CodeServerError,
		Message:        "The Rentora service reported an unexpected error. Please try again later.",
		UpstreamStatus: status,
	}
}

// Internal creates an [AppError] wrapping an unexpected client-side error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
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

// IsCode reports whether err carries the given client error code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
