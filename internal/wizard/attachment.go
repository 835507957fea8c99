// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package wizard

import (
	"fmt"

	"github.com/rentora/rentora/internal/platform/validate"
	"github.com/rentora/rentora/pkg/slice"
)

// Attachment is one in-memory binary file handle, tagged with the role it
// plays in the submission (gallery image, payment proof, identity document).
// File bytes are held as-is, never base64-encoded into the field mapping.
type Attachment struct {
	// Role is the multipart part name the file is sent under.
	Role string

	Filename string

	// ContentType defaults to application/octet-stream when empty.
	ContentType string

	Data []byte
}

/*
Attach appends a batch of files under one role.

Description: Admission is all-or-nothing. When the batch would push the
role's count past its cap, nothing is appended and a validation error is
returned with the existing attachments left unchanged.

Parameters:
  - role: Attachment role (part name)
  - files: The batch to append

Returns:
  - error: VALIDATION_ERROR when the cap would be exceeded
*/
func (w *Wizard) Attach(role string, files ...Attachment) error {
	if w.status != StatusEditing {
		return errNotEditing(w.status)
	}
	if len(files) == 0 {
		return nil
	}

	if cap, capped := w.schema.AttachmentCaps[role]; capped {
		if w.countRole(role)+len(files) > cap {
			return validate.RequiredError(role, fmt.Sprintf("Maximum %d files allowed", cap))
		}
	}

	for _, file := range files {
		file.Role = role
		w.attachments = append(w.attachments, file)
	}
	return nil
}

// RemoveAttachment drops the i-th file of a role. Out-of-range indexes are
// ignored.
func (w *Wizard) RemoveAttachment(role string, index int) {
	if w.status != StatusEditing {
		return
	}

	seen := 0
	for position, attachment := range w.attachments {
		if attachment.Role != role {
			continue
		}
		if seen == index {
			w.attachments = append(w.attachments[:position], w.attachments[position+1:]...)
			return
		}
		seen++
	}
}

// Attachments returns the files held under a role, in insertion order.
func (w *Wizard) Attachments(role string) []Attachment {
	return slice.Filter(w.attachments, func(a Attachment) bool { return a.Role == role })
}

// countRole counts the files currently held under a role.
func (w *Wizard) countRole(role string) int {
	return len(w.Attachments(role))
}
