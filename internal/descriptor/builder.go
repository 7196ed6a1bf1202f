// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"

	"edgectl/internal/prompt"
)

type (
	// Job is the streaming-analytics job info consumed when importing a
	// job as a module. Image, create options, and twin content are copied
	// into the descriptor verbatim.
	Job struct {
		Name          string
		Image         string
		CreateOptions map[string]any
		Twin          map[string]any
	}

	// RegistryBrowser resolves an already-built image reference from a
	// container registry.
	RegistryBrowser interface {
		SelectImage() (string, error)
	}

	// JobBrowser resolves a streaming-analytics job.
	JobBrowser interface {
		SelectJob() (*Job, error)
	}

	// Builder turns a template selection into a Descriptor, prompting for
	// whatever the selected kind requires.
	Builder struct {
		Prompter prompt.Prompter
		Registry RegistryBrowser
		Jobs     JobBrowser

		// DefaultRepository prefixes the suggested repository for
		// scaffolded modules (e.g. "localhost:5000").
		DefaultRepository string
	}

	// BuildRequest selects the template and names the module.
	BuildRequest struct {
		Kind Kind
		Name string

		// Command is the scaffold command pattern for KindCustom.
		Command string
	}
)

// Build produces the descriptor for the request. It may invoke interactive
// prompts; a dismissed prompt propagates prompt.ErrCancelled.
func (b *Builder) Build(req BuildRequest) (*Descriptor, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}

	d := &Descriptor{
		Name:               req.Name,
		Kind:               req.Kind,
		CreateOptions:      defaultCreateOptions(req.Kind),
		DebugCreateOptions: debugCreateOptions(req.Kind),
	}

	switch req.Kind {
	case KindRegistryImage:
		image, err := b.Registry.SelectImage()
		if err != nil {
			return nil, err
		}
		d.Image = image
		d.DebugImage = image
		d.RepositoryName = TrimReference(image)

	case KindExistingImage:
		image, err := b.Prompter.Input(prompt.InputOptions{
			Title:       "Image reference",
			Placeholder: "registry.example.com/repo:tag",
			Validate:    notEmpty("image reference"),
		})
		if err != nil {
			return nil, err
		}
		d.Image = image
		d.DebugImage = image
		d.RepositoryName = TrimReference(image)

	case KindStreamAnalytics:
		job, err := b.Jobs.SelectJob()
		if err != nil {
			return nil, err
		}
		d.Image = job.Image
		d.DebugImage = job.Image
		d.Twin = job.Twin
		d.CreateOptions = job.CreateOptions
		if d.CreateOptions == nil {
			d.CreateOptions = map[string]any{}
		}
		d.DebugCreateOptions = d.CreateOptions

	case KindCustom:
		if req.Command == "" {
			return nil, fmt.Errorf("third-party template has no scaffold command")
		}
		d.Command = req.Command
		// Only templates whose command references the repository need one.
		if strings.Contains(req.Command, TokenRepository) {
			repo, err := b.promptRepository(req.Name)
			if err != nil {
				return nil, err
			}
			d.RepositoryName = repo
		}
		d.Image = ImagePlaceholder(req.Name)
		d.DebugImage = DebugImagePlaceholder(req.Name)

	default:
		repo, err := b.promptRepository(req.Name)
		if err != nil {
			return nil, err
		}
		d.RepositoryName = repo
		d.Image = ImagePlaceholder(req.Name)
		d.DebugImage = DebugImagePlaceholder(req.Name)

		if req.Kind == KindJava {
			group, err := b.Prompter.Input(prompt.InputOptions{
				Title:    "Group ID",
				Default:  "com.edgemodule",
				Validate: notEmpty("group ID"),
			})
			if err != nil {
				return nil, err
			}
			d.GroupID = group
		}
	}

	return d, nil
}

func (b *Builder) promptRepository(moduleName string) (string, error) {
	registry := b.DefaultRepository
	if registry == "" {
		registry = "localhost:5000"
	}
	return b.Prompter.Input(prompt.InputOptions{
		Title:    "Docker image repository",
		Default:  registry + "/" + strings.ToLower(moduleName),
		Validate: notEmpty("repository"),
	})
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}
