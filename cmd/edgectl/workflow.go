// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"edgectl/internal/descriptor"
	"edgectl/internal/prompt"
	"edgectl/internal/registry"
	"edgectl/internal/scaffold"
	"edgectl/internal/solution"
)

// newPrompter builds the interactive prompter honoring the accessible-mode
// setting.
func newPrompter() prompt.Prompter {
	return &prompt.HuhPrompter{Accessible: settings.Accessible}
}

// newWorkflow wires the add-module collaborators from the loaded settings.
func newWorkflow(p prompt.Prompter) *solution.Workflow {
	return &solution.Workflow{
		Builder: &descriptor.Builder{
			Prompter:          p,
			Registry:          &promptRegistryBrowser{Prompter: p},
			Jobs:              &jobFileBrowser{Prompter: p},
			DefaultRepository: settings.DefaultRepository,
		},
		Executor:  &scaffold.ExecExecutor{Logger: logger},
		Allocator: &registry.Reconciler{},
		Populator: &registry.Populator{
			Source: &registry.AzCLISource{},
			Logger: logger,
		},
		Logger: logger,
	}
}

// pickTemplate asks the user to choose a module template, built-in kinds
// first, then any third-party templates registered in the config file.
func pickTemplate(p prompt.Prompter) (descriptor.BuildRequest, error) {
	var options []string
	for _, k := range descriptor.PickableKinds() {
		options = append(options, k.String())
	}
	for _, t := range settings.Templates {
		options = append(options, t.Name)
	}

	choice, err := p.QuickPick("Select module template", options)
	if err != nil {
		return descriptor.BuildRequest{}, err
	}

	if kind, ok := descriptor.KindByName(choice); ok {
		return descriptor.BuildRequest{Kind: kind}, nil
	}
	for _, t := range settings.Templates {
		if t.Name == choice {
			return descriptor.BuildRequest{Kind: descriptor.KindCustom, Command: t.Command}, nil
		}
	}
	return descriptor.BuildRequest{}, fmt.Errorf("unknown module template %q", choice)
}

// promptModuleName asks for the new module's name, validating it up front so
// the scaffold step never sees an unusable name.
func promptModuleName(p prompt.Prompter) (string, error) {
	return p.Input(prompt.InputOptions{
		Title:    "Module name",
		Default:  "SampleModule",
		Validate: descriptor.ValidateName,
	})
}

// finishWorkflow turns a dismissed prompt into a silent success so fang does
// not render an error card for a deliberate abort.
func finishWorkflow(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	return err
}
