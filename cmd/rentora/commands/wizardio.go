// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/wizard"
)

// promptLine reads one trimmed line from the command's input.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

/*
runWizard drives a wizard flow interactively step by step.

Description: For every step it prompts the schema's fields, collects the
required attachments as file paths, and advances. Validation failures are
printed and the step is prompted again, so the flow can never advance with
invalid input.
*/
func runWizard(cmd *cobra.Command, w *wizard.Wizard) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())
	schema := w.Definition()

	for {
		step := schema.Steps[w.CurrentStep()-1]
		fmt.Fprintf(out, "\nStep %d/%d: %s\n", w.CurrentStep(), w.StepCount(), step.Title)

		for _, rule := range step.Fields {
			if err := promptField(out, in, w, rule); err != nil {
				return err
			}
		}
		for _, role := range step.RequireAttachments {
			if err := promptAttachments(out, in, w, role, schema.AttachmentCaps[role]); err != nil {
				return err
			}
		}

		if w.CurrentStep() == w.StepCount() {
			// Submit validates the final step itself.
			return nil
		}

		if err := w.Next(); err != nil {
			fmt.Fprintf(out, "  %s\n", err.Error())
		}
	}
}

// promptField asks for one field, re-asking until the value is accepted by a
// trial advance or left blank when optional.
func promptField(out io.Writer, in *bufio.Reader, w *wizard.Wizard, rule wizard.FieldRule) error {
	label := rule.Label
	if len(rule.Choices) > 0 {
		label += " (" + strings.Join(rule.Choices, ", ") + ")"
	}
	if !rule.Required {
		label += " [optional]"
	}

	fmt.Fprintf(out, "  %s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	value := strings.TrimSpace(line)

	if rule.Kind == wizard.KindMultiChoice {
		for _, choice := range strings.Split(value, ",") {
			choice = strings.TrimSpace(choice)
			if choice == "" {
				continue
			}
			if err := w.Toggle(rule.Name, choice); err != nil {
				return err
			}
		}
		return nil
	}
	return w.SetField(rule.Name, value)
}

// promptAttachments asks for file paths for one attachment role.
func promptAttachments(out io.Writer, in *bufio.Reader, w *wizard.Wizard, role string, limit int) error {
	prompt := fmt.Sprintf("  Files for %s (comma-separated paths", role)
	if limit > 0 {
		prompt += fmt.Sprintf(", max %d", limit)
	}
	prompt += "): "

	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}

	var files []wizard.Attachment
	for _, path := range strings.Split(strings.TrimSpace(line), ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		attachment, err := attachmentFromFile(role, path)
		if err != nil {
			return err
		}
		files = append(files, attachment)
	}
	if len(files) == 0 {
		return nil
	}
	return w.Attach(role, files...)
}

// attachmentFromFile loads one file from disk as a wizard attachment.
func attachmentFromFile(role, path string) (wizard.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wizard.Attachment{}, fmt.Errorf("cli_attachment_read_failed: %w", err)
	}
	return wizard.Attachment{
		Role:        role,
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
