// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"edgectl/internal/descriptor"
	"edgectl/internal/prompt"
)

// promptRegistryBrowser resolves an already-built image by asking for its
// full reference. The CLI has no registry catalog to browse, so a typed
// reference stands in for the graphical registry picker.
type promptRegistryBrowser struct {
	Prompter prompt.Prompter
}

var _ descriptor.RegistryBrowser = (*promptRegistryBrowser)(nil)

func (b *promptRegistryBrowser) SelectImage() (string, error) {
	return b.Prompter.Input(prompt.InputOptions{
		Title:       "Image from container registry",
		Placeholder: "myregistry.azurecr.io/repo:tag",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("image reference cannot be empty")
			}
			return nil
		},
	})
}

// jobFileBrowser resolves a streaming-analytics job from an exported job
// definition file.
type jobFileBrowser struct {
	Prompter prompt.Prompter
}

var _ descriptor.JobBrowser = (*jobFileBrowser)(nil)

// jobDefinition mirrors the exported job JSON: the module settings published
// for the job plus its desired twin content.
type jobDefinition struct {
	Name     string `json:"name"`
	Settings struct {
		Image         string         `json:"image"`
		CreateOptions map[string]any `json:"createOptions"`
	} `json:"settings"`
	Twin struct {
		Content map[string]any `json:"content"`
	} `json:"twin"`
}

func (b *jobFileBrowser) SelectJob() (*descriptor.Job, error) {
	path, err := b.Prompter.Input(prompt.InputOptions{
		Title:       "Exported job definition (JSON file)",
		Placeholder: "job.json",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("path cannot be empty")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job definition: %w", err)
	}
	var def jobDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse job definition %s: %w", path, err)
	}
	if def.Settings.Image == "" {
		return nil, fmt.Errorf("job definition %s has no image", path)
	}

	return &descriptor.Job{
		Name:          def.Name,
		Image:         def.Settings.Image,
		CreateOptions: def.Settings.CreateOptions,
		Twin:          def.Twin.Content,
	}, nil
}
