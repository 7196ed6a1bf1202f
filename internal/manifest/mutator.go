// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"

	"edgectl/internal/descriptor"
	"edgectl/internal/envfile"
)

// SensorModuleName is the conventional default sensor module whose
// temperature output seeds the first route of a brand-new solution.
const SensorModuleName = "SimulatedTemperatureSensor"

type (
	// CredentialAllocator ensures registry credentials exist for a
	// repository's registry address, mutating the given credentials map
	// in place. Implemented by registry.Reconciler.
	CredentialAllocator interface {
		Reconcile(repository string, creds map[string]RegistryCredential, env envfile.Env) (usernameVar, passwordVar string, err error)
	}

	// ApplyOptions selects the manifest variant being mutated.
	ApplyOptions struct {
		// Debug mutates with the descriptor's debug image and create
		// options instead of the production ones.
		Debug bool
		// Seed additionally wires the default sensor module's temperature
		// output into the new module (brand-new solutions only).
		Seed bool
		// Env is the loaded environment file, used to resolve $VAR
		// references in existing credential entries.
		Env envfile.Env
	}

	// CredentialVars are the environment-variable names allocated during
	// one Apply. Both are empty when no credentials were needed.
	CredentialVars struct {
		Username string
		Password string
	}

	// Mutator merges a module descriptor into a deployment manifest. The
	// same code path serves the production and the debug manifest so both
	// variants stay structurally identical.
	Mutator struct {
		Allocator CredentialAllocator
	}
)

// Apply inserts the descriptor's twin, registry credentials, module entry,
// and routes into the manifest in memory. The duplicate-module check runs
// before any mutation, so a rejected Apply leaves the manifest untouched.
// Persisting the result is the caller's job: nothing here writes to disk,
// which keeps the eventual file write a single full-file replace.
func (mu *Mutator) Apply(m *Manifest, d *descriptor.Descriptor, opts ApplyOptions) (CredentialVars, error) {
	agent := &m.Content.EdgeAgent
	if agent.Modules == nil {
		agent.Modules = map[string]Module{}
	}
	if _, exists := agent.Modules[d.Name]; exists {
		return CredentialVars{}, &DuplicateModuleError{Name: d.Name}
	}

	if d.Twin != nil {
		if m.Content.Twins == nil {
			m.Content.Twins = map[string]map[string]any{}
		}
		m.Content.Twins[d.Name] = map[string]any{desiredKey: d.Twin}
	}

	if agent.Runtime.Settings.RegistryCredentials == nil {
		agent.Runtime.Settings.RegistryCredentials = map[string]RegistryCredential{}
	}

	var vars CredentialVars
	if d.Kind.NeedsRegistryCredentials() {
		username, password, err := mu.Allocator.Reconcile(
			d.RepositoryName, agent.Runtime.Settings.RegistryCredentials, opts.Env)
		if err != nil {
			return CredentialVars{}, err
		}
		vars = CredentialVars{Username: username, Password: password}
	}

	image, createOptions := d.Image, d.CreateOptions
	if opts.Debug {
		image, createOptions = d.DebugImage, d.DebugCreateOptions
	}
	if createOptions == nil {
		createOptions = map[string]any{}
	}
	agent.Modules[d.Name] = Module{
		Version:       "1.0",
		Type:          "docker",
		Status:        "running",
		RestartPolicy: "always",
		Settings:      ModuleSettings{Image: image, CreateOptions: createOptions},
	}

	hub := &m.Content.EdgeHub
	if hub.Routes == nil {
		hub.Routes = map[string]string{}
	}
	// Re-adding a module after a partial previous failure overwrites the
	// route rather than failing.
	hub.Routes[d.Name+"ToIoTHub"] = upstreamRoute(d.Name)
	if opts.Seed {
		hub.Routes["sensorTo"+d.Name] = sensorRoute(d.Name)
	}

	return vars, nil
}

func upstreamRoute(name string) string {
	return fmt.Sprintf("FROM /messages/modules/%s/outputs/* INTO $upstream", name)
}

func sensorRoute(name string) string {
	return fmt.Sprintf(
		"FROM /messages/modules/%s/outputs/temperatureOutput INTO BrokeredEndpoint(\"/modules/%s/inputs/input1\")",
		SensorModuleName, name)
}
