// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package wizard implements a generic finite-state controller for bounded
multi-step data-collection forms.

The marketplace historically carried several near-identical multi-step form
implementations (property submission variants, booking). This package collapses
them into one data-driven controller parameterized by a step schema, so the
state machine (step gating, attachment caps, submission with a single
authentication retry) exists exactly once.

Architecture:

  - Schema: Declarative description of steps, typed field rules, attachment
    caps, and derived fields.
  - Wizard: One in-progress submission; owns step position, draft field state,
    binary attachments, and submission status.
  - Payload: Multipart serialization: string parts for scalars, one
    JSON-encoded part per composite field, role-named binary parts for files.
*/
package wizard

import (
	"github.com/rentora/rentora/internal/platform/validate"
)

// FieldKind selects the explicit parse-and-validate rule applied to a field,
// replacing ambient string coercion at submission time.
type FieldKind int

const (
	// KindText is free-form text.
	KindText FieldKind = iota

	// KindEmail must parse as an RFC 5322 address.
	KindEmail

	// KindInteger must parse as a non-negative whole number.
	KindInteger

	// KindCurrency must parse as a non-negative amount, max two decimals.
	KindCurrency

	// KindDate must parse as YYYY-MM-DD.
	KindDate

	// KindPhone must be a plausible phone number.
	KindPhone

	// KindChoice must be one of the rule's Choices.
	KindChoice

	// KindMultiChoice holds a set of selections from Choices. Serialized as a
	// single JSON-encoded string part, never as repeated parts.
	KindMultiChoice
)

// FieldRule describes one form field.
type FieldRule struct {
	// Name is the wire name of the field (multipart part name).
	Name string

	// Label is shown next to validation messages.
	Label string

	Kind     FieldKind
	Required bool

	// Choices constrains KindChoice / KindMultiChoice values.
	Choices []string

	// MaxLen bounds the Unicode length of text values. Zero means unbounded.
	MaxLen int

	// Local marks a field that gates the flow but is never sent upstream
	// (e.g. an agreement checkbox).
	Local bool
}

// DerivedRule declares a field whose value defaults to a fixed fraction of
// another numeric field when the user leaves it blank. The value is computed
// at payload-build time, never persisted into the draft, so it always tracks
// the latest source value unless explicitly overridden.
type DerivedRule struct {
	// Name is the target field (e.g. "securityDepositAmount").
	Name string

	// From is the source field (e.g. "price").
	From string

	// Rate is the fraction applied to the source (e.g. 0.30).
	Rate float64
}

// Step is one screen of a wizard.
type Step struct {
	Title string

	// Fields validated when the user advances past this step.
	Fields []FieldRule

	// RequireAttachments lists roles that must hold at least one file before
	// this step may be left.
	RequireAttachments []string

	// Validate, when set, runs after the field rules and may add failures
	// that span multiple fields.
	Validate func(v *validate.Validator, values Values)
}

// Schema is the full description of one wizard flow.
type Schema struct {
	// Name identifies the flow in logs.
	Name string

	Steps []Step

	// AttachmentCaps limits how many files each role may hold. Roles without
	// an entry are uncapped.
	AttachmentCaps map[string]int

	// Derived lists payload-time defaulting rules.
	Derived []DerivedRule

	// Constants are fixed scalar parts appended to every payload (e.g. a
	// policy flag the upstream API expects).
	Constants map[string]string
}

// Values is a read-only snapshot of a wizard's scalar and composite fields,
// passed to custom step validators.
type Values struct {
	scalar map[string]string
	multi  map[string][]string
}

// Get returns the scalar value of a field.
func (values Values) Get(name string) string { return values.scalar[name] }

// Selected returns the selections of a composite field.
func (values Values) Selected(name string) []string { return values.multi[name] }

// fieldRule looks a rule up by name across all steps.
func (s Schema) fieldRule(name string) (FieldRule, bool) {
	for _, step := range s.Steps {
		for _, rule := range step.Fields {
			if rule.Name == name {
				return rule, true
			}
		}
	}
	return FieldRule{}, false
}
