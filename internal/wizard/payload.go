// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
)

// Payload is one fully serialized multipart submission. The body is buffered
// so the authentication retry can replay the identical bytes.
type Payload struct {
	ContentType string
	body        []byte
}

// Reader returns a fresh reader over the payload bytes.
func (p *Payload) Reader() *bytes.Reader {
	return bytes.NewReader(p.body)
}

/*
buildPayload serializes the draft into multipart/form-data.

Description: Scalar fields become string parts (blank optional fields are
omitted), composite fields become one JSON-encoded string part each, derived
fields are computed here from the latest source values, and attachments become
ordered role-named binary parts.
*/
func (w *Wizard) buildPayload() (*Payload, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	// Derived fields are written by the derivation pass, override included,
	// so the scalar pass must skip them to avoid duplicate parts.
	derivedNames := make(map[string]bool, len(w.schema.Derived))
	for _, rule := range w.schema.Derived {
		derivedNames[rule.Name] = true
	}

	// Scalar fields in deterministic order.
	names := make([]string, 0, len(w.fields))
	for name := range w.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if derivedNames[name] {
			continue
		}
		if rule, ok := w.schema.fieldRule(name); ok && rule.Local {
			continue
		}
		value := w.fields[name]
		if value == "" {
			// Blank optional fields are omitted; required ones were already
			// guaranteed non-empty by step gating.
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("wizard_payload_field_failed: %w", err)
		}
	}

	// Composite fields: a single JSON-encoded string part each, never
	// repeated parts.
	multiNames := make([]string, 0, len(w.multi))
	for name := range w.multi {
		multiNames = append(multiNames, name)
	}
	sort.Strings(multiNames)

	for _, name := range multiNames {
		selected := w.multi[name]
		if selected == nil {
			selected = []string{}
		}
		encoded, err := json.Marshal(selected)
		if err != nil {
			return nil, fmt.Errorf("wizard_payload_composite_failed: %w", err)
		}
		if err := writer.WriteField(name, string(encoded)); err != nil {
			return nil, fmt.Errorf("wizard_payload_composite_failed: %w", err)
		}
	}

	// Derived fields, computed from the latest source values unless the user
	// explicitly overrode them.
	for _, rule := range w.schema.Derived {
		value, err := w.derivedValue(rule)
		if err != nil {
			return nil, err
		}
		if err := writer.WriteField(rule.Name, value); err != nil {
			return nil, fmt.Errorf("wizard_payload_derived_failed: %w", err)
		}
	}

	// Fixed policy parts.
	constants := make([]string, 0, len(w.schema.Constants))
	for name := range w.schema.Constants {
		constants = append(constants, name)
	}
	sort.Strings(constants)
	for _, name := range constants {
		if err := writer.WriteField(name, w.schema.Constants[name]); err != nil {
			return nil, fmt.Errorf("wizard_payload_constant_failed: %w", err)
		}
	}

	// Attachments as ordered, role-named binary parts.
	for _, attachment := range w.attachments {
		part, err := writer.CreatePart(partHeader(attachment))
		if err != nil {
			return nil, fmt.Errorf("wizard_payload_attachment_failed: %w", err)
		}
		if _, err := part.Write(attachment.Data); err != nil {
			return nil, fmt.Errorf("wizard_payload_attachment_failed: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("wizard_payload_close_failed: %w", err)
	}

	return &Payload{
		ContentType: writer.FormDataContentType(),
		body:        buffer.Bytes(),
	}, nil
}

// derivedValue resolves one derived field: the explicit override wins,
// otherwise the rounded fraction of the source field.
func (w *Wizard) derivedValue(rule DerivedRule) (string, error) {
	if override := strings.TrimSpace(w.fields[rule.Name]); override != "" {
		return override, nil
	}

	source := strings.TrimSpace(w.fields[rule.From])
	if source == "" {
		return "0", nil
	}
	amount, err := strconv.ParseFloat(source, 64)
	if err != nil {
		return "", fmt.Errorf("wizard_payload_derived_failed: field %q is not numeric", rule.From)
	}

	derived := int64(math.Round(amount * rule.Rate))
	return strconv.FormatInt(derived, 10), nil
}

// partHeader builds the MIME header for one binary part, preserving the
// attachment's content type.
func partHeader(attachment Attachment) textproto.MIMEHeader {
	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		attachment.Role, attachment.Filename))
	header.Set("Content-Type", contentType)
	return header
}
