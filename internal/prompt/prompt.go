// SPDX-License-Identifier: MPL-2.0

// Package prompt provides the interactive prompter used by the solution
// workflows. Every workflow step that needs user input goes through the
// Prompter interface so tests can script answers; dismissing any prompt
// cancels the whole operation via ErrCancelled.
package prompt

import "errors"

// ErrCancelled is returned when the user dismisses a prompt. Workflows treat
// it as a silent whole-operation abort: no error message is shown.
var ErrCancelled = errors.New("operation cancelled by user")

type (
	// InputOptions configures a single-line text input prompt.
	InputOptions struct {
		// Title is the prompt displayed above the input.
		Title string
		// Placeholder is shown while the input is empty.
		Placeholder string
		// Default is the initial value of the input.
		Default string
		// Validate rejects invalid values before the prompt resolves.
		// A nil Validate accepts anything, including the empty string.
		Validate func(string) error
	}

	// Prompter is the interactive collaborator consumed by the workflows.
	Prompter interface {
		// QuickPick asks the user to choose one of options.
		QuickPick(title string, options []string) (string, error)
		// Input asks the user for a line of text.
		Input(opts InputOptions) (string, error)
		// Confirm asks a yes/no question.
		Confirm(title string) (bool, error)
	}
)
