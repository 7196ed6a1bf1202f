// SPDX-License-Identifier: MPL-2.0

package solution

import (
	"context"

	"edgectl/internal/descriptor"
	"edgectl/internal/envfile"
	"edgectl/internal/launchcfg"
	"edgectl/internal/manifest"
	"edgectl/internal/registry"
	"edgectl/internal/scaffold"

	"github.com/charmbracelet/log"
)

type (
	// Workflow wires the collaborators of the add-module sequence. All
	// steps run sequentially in one invocation; the production and debug
	// manifests are mutated one after the other, never concurrently,
	// because both feed the same env file and credential key set.
	Workflow struct {
		Builder   *descriptor.Builder
		Executor  scaffold.Executor
		Allocator manifest.CredentialAllocator
		Populator *registry.Populator
		Logger    *log.Logger
	}

	// Result summarizes what AddModule did, for the CLI to report.
	Result struct {
		Descriptor *descriptor.Descriptor

		// VarsAllocated lists the credential variable names added to the
		// env file (empty when the registry needed no credentials).
		VarsAllocated []string

		// AutoFilled reports whether literal credential values were
		// fetched and written; false means the user must edit the env
		// file.
		AutoFilled bool

		// LaunchUpdated reports whether a debugger configuration was
		// merged into the workspace launch file.
		LaunchUpdated bool
	}
)

// AddModule runs the whole add-module workflow against sol. The seed flag
// marks a brand-new solution whose first module gets the sensor seed route.
//
// Validation (malformed manifest, duplicate module name, duplicate module
// folder) happens before any file is touched. The production manifest write
// is the last recoverable point: failures after it leave the manifest
// updated.
func (w *Workflow) AddModule(ctx context.Context, sol *Solution, req descriptor.BuildRequest, seed bool) (*Result, error) {
	if err := descriptor.ValidateName(req.Name); err != nil {
		return nil, err
	}

	prod, err := manifest.Load(sol.TemplatePath())
	if err != nil {
		return nil, err
	}
	if _, exists := prod.Content.EdgeAgent.Modules[req.Name]; exists {
		return nil, &manifest.DuplicateModuleError{Name: req.Name}
	}

	d, err := w.Builder.Build(req)
	if err != nil {
		return nil, err
	}
	if err := scaffold.CheckTarget(sol.ModulesPath(), d); err != nil {
		return nil, err
	}

	if err := scaffold.Generate(ctx, w.Executor, sol.ModulesPath(), d); err != nil {
		return nil, err
	}

	env, err := envfile.Load(sol.EnvPath())
	if err != nil {
		return nil, err
	}

	mutator := &manifest.Mutator{Allocator: w.Allocator}

	prodVars, err := mutator.Apply(prod, d, manifest.ApplyOptions{Seed: seed, Env: env})
	if err != nil {
		return nil, err
	}
	if err := manifest.Save(sol.TemplatePath(), prod); err != nil {
		return nil, err
	}

	var debugVars manifest.CredentialVars
	if debugPath, ok := sol.DebugTemplatePath(); ok {
		debug, err := manifest.Load(debugPath)
		if err != nil {
			return nil, err
		}
		debugVars, err = mutator.Apply(debug, d, manifest.ApplyOptions{Debug: true, Seed: seed, Env: env})
		if err != nil {
			return nil, err
		}
		if err := manifest.Save(debugPath, debug); err != nil {
			return nil, err
		}
	}

	result := &Result{Descriptor: d}
	if err := w.populate(ctx, sol, d, prodVars, debugVars, result); err != nil {
		return nil, err
	}

	cfg, err := launchcfg.Generate(d.Kind, d.Name)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if err := launchcfg.Merge(sol.LaunchPath(), cfg); err != nil {
			return nil, err
		}
		result.LaunchUpdated = true
	}

	return result, nil
}

// populate writes values for the allocated credential variables. The two
// manifest passes usually allocate the same names; the populator skips
// variables already declared, so the second pass is a no-op then.
func (w *Workflow) populate(ctx context.Context, sol *Solution, d *descriptor.Descriptor, prodVars, debugVars manifest.CredentialVars, result *Result) error {
	address := registry.AddressOf(d.RepositoryName)

	for _, vars := range []manifest.CredentialVars{prodVars, debugVars} {
		if vars.Username == "" && vars.Password == "" {
			continue
		}
		auto, err := w.Populator.Populate(ctx, sol.EnvPath(), address,
			registry.Vars{Username: vars.Username, Password: vars.Password})
		if err != nil {
			return err
		}
		result.AutoFilled = result.AutoFilled || auto
		result.VarsAllocated = appendMissing(result.VarsAllocated, vars.Username, vars.Password)
	}

	if len(result.VarsAllocated) > 0 && w.Logger != nil {
		if result.AutoFilled {
			w.Logger.Info("registry credentials were set automatically", "address", address)
		} else {
			w.Logger.Warn("registry credentials need values", "file", sol.EnvPath())
		}
	}
	return nil
}

func appendMissing(names []string, add ...string) []string {
	for _, candidate := range add {
		found := false
		for _, existing := range names {
			if existing == candidate {
				found = true
				break
			}
		}
		if !found {
			names = append(names, candidate)
		}
	}
	return names
}
