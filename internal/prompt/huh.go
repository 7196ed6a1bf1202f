// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	// Accessible enables huh's accessible mode (no alt screen, plain
	// prompts), useful for screen readers and dumb terminals.
	Accessible bool
}

var _ Prompter = (*HuhPrompter)(nil)

// QuickPick implements Prompter.
func (p *HuhPrompter) QuickPick(title string, options []string) (string, error) {
	var result string

	huhOpts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt, opt)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huhOpts...).
			Value(&result),
	)).WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return result, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(opts InputOptions) (string, error) {
	result := opts.Default

	input := huh.NewInput().
		Title(opts.Title).
		Placeholder(opts.Placeholder).
		Value(&result)
	if opts.Validate != nil {
		input = input.Validate(opts.Validate)
	}

	form := huh.NewForm(huh.NewGroup(input)).WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return result, nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var result bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&result),
	)).WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		return false, mapHuhErr(err)
	}
	return result, nil
}

// mapHuhErr converts huh's abort error into the package-level cancellation
// sentinel so callers only need to check one error.
func mapHuhErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
