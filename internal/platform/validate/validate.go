// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively by the wizard and session layers — never in
// presentation code. It ensures submissions only ever carry semantically valid
// data, replacing the late, ambient string coercion the marketplace forms
// historically relied on with an explicit parse-and-validate step per field
// type.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rentora/rentora/internal/platform/apperr"
)

var (
	// phoneRegex accepts international numbers with an optional +country
	// prefix and common separators.
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,17}$`)
)

// DateLayout is the wire format for date fields (e.g. available-from).
const DateLayout = "2006-01-02"

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every operation.
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

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Integer fails if the value does not parse as a non-negative base-10 integer.
func (v *Validator) Integer(field, value string) *Validator {
	if _, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err != nil {
		v.add(field, "Must be a whole number")
	}
	return v
}

// Currency fails if the value does not parse as a non-negative amount with at
// most two decimal places.
func (v *Validator) Currency(field, value string) *Validator {
	trimmed := strings.TrimSpace(value)
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || amount < 0 {
		v.add(field, "Must be a valid amount")
		return v
	}
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 && len(trimmed)-dot-1 > 2 {
		v.add(field, "Must have at most two decimal places")
	}
	return v
}

// Date fails if the value does not parse as a calendar date in [DateLayout].
func (v *Validator) Date(field, value string) *Validator {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		v.add(field, "Must be a date in YYYY-MM-DD format")
	}
	return v
}

// Phone fails if the value is not a plausible phone number.
func (v *Validator) Phone(field, value string) *Validator {
	if !phoneRegex.MatchString(strings.TrimSpace(value)) {
		v.add(field, "Must be a valid phone number")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("images", len(images) == 0, "At least one photo is required")
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

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
