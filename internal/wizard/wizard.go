// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rentora/rentora/internal/platform/apperr"
	"github.com/rentora/rentora/internal/platform/validate"
)

// # State Machine

// Status is the lifecycle state of one wizard instance.
type Status int

const (
	// StatusEditing means the user is filling in a step.
	StatusEditing Status = iota

	// StatusSubmitting means a submission is in flight. Further submit calls
	// are rejected until it settles.
	StatusSubmitting

	// StatusSucceeded is terminal; the draft has been cleared.
	StatusSucceeded

	// StatusFailed is terminal except via [Wizard.Retry]; fields and
	// attachments are retained so nothing is re-entered.
	StatusFailed
)

// String implements fmt.Stringer for log output.
func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func errNotEditing(status Status) error {
	return apperr.ValidationError(fmt.Sprintf("Form is %s and can no longer be edited", status))
}

// # Collaborator Contracts

// TokenSource is the slice of the session manager the wizard needs: a valid
// token immediately before submission, and a refresh for the single
// authentication retry.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Poster is the slice of the request gateway the wizard needs.
type Poster interface {
	DoMultipart(ctx context.Context, method, path, token, contentType string, body io.Reader, out interface{}) error
}

// # Wizard

// Wizard drives one in-progress multi-step submission.
//
// # Concurrency
//
// A Wizard is owned by a single presentation flow and is not safe for
// concurrent use; network completions are serialized through [Wizard.Submit].
type Wizard struct {
	schema Schema
	log    *slog.Logger

	step        int // 1-indexed, bounded [1, len(schema.Steps)]
	fields      map[string]string
	multi       map[string][]string
	attachments []Attachment
	status      Status
	lastError   string
}

// New creates a wizard at Editing(1) with empty fields.
func New(schema Schema, log *slog.Logger) *Wizard {
	return &Wizard{
		schema: schema,
		log:    log,
		step:   1,
		fields: make(map[string]string),
		multi:  make(map[string][]string),
		status: StatusEditing,
	}
}

// CurrentStep returns the 1-indexed step position.
func (w *Wizard) CurrentStep() int { return w.step }

// StepCount returns N, the number of steps in the flow.
func (w *Wizard) StepCount() int { return len(w.schema.Steps) }

// Definition returns the schema driving this wizard, for presentation layers
// that render steps and prompts from it.
func (w *Wizard) Definition() Schema { return w.schema }

// Status returns the lifecycle state.
func (w *Wizard) Status() Status { return w.status }

// LastError returns the message of the most recent validation or submission
// failure, or "".
func (w *Wizard) LastError() string { return w.lastError }

// Values returns a read-only snapshot of the draft fields. The maps are
// copied so step validators cannot mutate the draft through it.
func (w *Wizard) Values() Values {
	scalar := make(map[string]string, len(w.fields))
	for name, value := range w.fields {
		scalar[name] = value
	}
	multi := make(map[string][]string, len(w.multi))
	for name, selected := range w.multi {
		multi[name] = append([]string(nil), selected...)
	}
	return Values{scalar: scalar, multi: multi}
}

// # Draft Mutation

// SetField records a scalar field value. Only legal while editing.
func (w *Wizard) SetField(name, value string) error {
	if w.status != StatusEditing {
		return errNotEditing(w.status)
	}
	w.fields[name] = value
	return nil
}

// Field returns the current scalar value of a field.
func (w *Wizard) Field(name string) string { return w.fields[name] }

// Toggle flips one option of a composite (multi-choice) field.
func (w *Wizard) Toggle(name, option string) error {
	if w.status != StatusEditing {
		return errNotEditing(w.status)
	}

	selected := w.multi[name]
	for i, existing := range selected {
		if existing == option {
			w.multi[name] = append(selected[:i], selected[i+1:]...)
			return nil
		}
	}
	w.multi[name] = append(selected, option)
	return nil
}

// # Step Transitions

/*
Next advances to the following step.

Description: Guarded by the current step's field rules: every required field
must be present and type-valid, and every role the step requires must hold at
least one attachment. A guard violation keeps the position unchanged and
surfaces the validation message; it never silently advances.

Returns:
  - error: VALIDATION_ERROR describing the failing fields, or nil
*/
func (w *Wizard) Next() error {
	if w.status != StatusEditing {
		return errNotEditing(w.status)
	}
	if w.step >= len(w.schema.Steps) {
		return validate.RequiredError("step", "Already on the final step")
	}

	if err := w.validateStep(w.step); err != nil {
		w.lastError = err.Error()
		return err
	}

	w.step++
	w.lastError = ""
	return nil
}

// Previous steps back. No-op on the first step.
func (w *Wizard) Previous() {
	if w.status != StatusEditing {
		return
	}
	if w.step > 1 {
		w.step--
	}
}

// validateStep applies the typed field rules of one step.
func (w *Wizard) validateStep(step int) error {
	definition := w.schema.Steps[step-1]
	v := &validate.Validator{}

	for _, rule := range definition.Fields {
		w.applyRule(v, rule)
	}
	for _, role := range definition.RequireAttachments {
		v.Custom(role, w.countRole(role) == 0, "At least one file is required")
	}
	if definition.Validate != nil {
		definition.Validate(v, w.Values())
	}

	return v.Err()
}

// applyRule runs the parse-and-validate step for a single field.
func (w *Wizard) applyRule(v *validate.Validator, rule FieldRule) {
	if rule.Kind == KindMultiChoice {
		selected := w.multi[rule.Name]
		v.Custom(rule.Name, rule.Required && len(selected) == 0, "Select at least one option")
		for _, choice := range selected {
			v.OneOf(rule.Name, choice, rule.Choices...)
		}
		return
	}

	value := w.fields[rule.Name]
	if rule.Required {
		v.Required(rule.Name, value)
	}
	// Optional fields left blank skip the typed checks.
	if value == "" {
		return
	}

	if rule.MaxLen > 0 {
		v.MaxLen(rule.Name, value, rule.MaxLen)
	}

	switch rule.Kind {
	case KindEmail:
		v.Email(rule.Name, value)
	case KindInteger:
		v.Integer(rule.Name, value)
	case KindCurrency:
		v.Currency(rule.Name, value)
	case KindDate:
		v.Date(rule.Name, value)
	case KindPhone:
		v.Phone(rule.Name, value)
	case KindChoice:
		v.OneOf(rule.Name, value, rule.Choices...)
	}
}

// # Submission

/*
Submit executes the final-step submission with the single-retry auth policy.

Description: Only legal from Editing on the last step, after that step's guard
passes. Fetches a currently valid token from the session manager immediately
before use, posts the multipart payload, and on an authentication failure
performs exactly one silent refresh-and-resubmit. Any further failure settles
in Failed with the draft retained; success settles in Succeeded with the draft
cleared.

Parameters:
  - ctx: context.Context
  - tokens: The session manager
  - poster: The request gateway
  - path: Target API path
  - out: Optional pointer decoded from the success body

Returns:
  - error: The classified failure, or nil on success
*/
func (w *Wizard) Submit(ctx context.Context, tokens TokenSource, poster Poster, path string, out interface{}) error {
	if w.status != StatusEditing {
		return errNotEditing(w.status)
	}
	if w.step != len(w.schema.Steps) {
		return validate.RequiredError("step", "Submission is only allowed from the final step")
	}
	if err := w.validateStep(w.step); err != nil {
		w.lastError = err.Error()
		return err
	}

	w.status = StatusSubmitting
	w.log.Debug("wizard_submitting", slog.String("flow", w.schema.Name))

	token, err := tokens.GetValidToken(ctx)
	if err != nil {
		return w.fail(apperr.Unauthorized("You must be logged in to submit"))
	}

	payload, err := w.buildPayload()
	if err != nil {
		return w.fail(apperr.Internal(err))
	}

	// First attempt.
	err = poster.DoMultipart(ctx, http.MethodPost, path, token, payload.ContentType, payload.Reader(), out)
	if err == nil {
		return w.succeed()
	}

	// One silent refresh-and-retry on an authentication failure; everything
	// else settles immediately.
	if !apperr.IsCode(err, apperr.CodeUnauthorized) {
		return w.fail(err)
	}

	freshToken, refreshErr := tokens.Refresh(ctx)
	if refreshErr != nil {
		return w.fail(apperr.Unauthorized("Session expired. Please log in again."))
	}

	w.log.Debug("wizard_resubmitting_after_refresh", slog.String("flow", w.schema.Name))
	err = poster.DoMultipart(ctx, http.MethodPost, path, freshToken, payload.ContentType, payload.Reader(), out)
	if err == nil {
		return w.succeed()
	}
	if apperr.IsCode(err, apperr.CodeUnauthorized) {
		// No third attempt.
		return w.fail(apperr.Unauthorized("Session expired. Please log in again."))
	}
	return w.fail(err)
}

// succeed settles the wizard in Succeeded and clears the draft.
func (w *Wizard) succeed() error {
	w.status = StatusSucceeded
	w.lastError = ""
	w.fields = make(map[string]string)
	w.multi = make(map[string][]string)
	w.attachments = nil
	w.log.Info("wizard_succeeded", slog.String("flow", w.schema.Name))
	return nil
}

// fail settles the wizard in Failed, retaining fields and attachments so the
// user can correct and resubmit without re-entering everything.
func (w *Wizard) fail(err error) error {
	w.status = StatusFailed
	w.lastError = err.Error()
	w.log.Warn("wizard_failed",
		slog.String("flow", w.schema.Name),
		slog.String("error", w.lastError),
	)
	return err
}

// Retry moves Failed back to Editing on the final step, the only way back to
// editing after a failed submit. The retained draft stays as-is.
func (w *Wizard) Retry() error {
	if w.status != StatusFailed {
		return validate.RequiredError("status", "Nothing to retry")
	}
	w.status = StatusEditing
	return nil
}

// Reset abandons this instance's draft entirely and returns to Editing(1)
// with cleared fields. Used for explicit cancellation and for starting a new
// submission after success.
func (w *Wizard) Reset() {
	w.step = 1
	w.status = StatusEditing
	w.lastError = ""
	w.fields = make(map[string]string)
	w.multi = make(map[string][]string)
	w.attachments = nil
}
