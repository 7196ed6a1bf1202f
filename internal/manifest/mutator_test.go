// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"testing"

	"edgectl/internal/descriptor"
	"edgectl/internal/envfile"
)

// recordingAllocator implements CredentialAllocator and records whether it
// was consulted.
type recordingAllocator struct {
	called       bool
	repository   string
	usernameVar  string
	passwordVar  string
	insertedAddr string
}

func (a *recordingAllocator) Reconcile(repository string, creds map[string]RegistryCredential, _ envfile.Env) (string, string, error) {
	a.called = true
	a.repository = repository
	if a.insertedAddr != "" {
		creds["test"] = RegistryCredential{
			Username: "$" + a.usernameVar,
			Password: "$" + a.passwordVar,
			Address:  a.insertedAddr,
		}
	}
	return a.usernameVar, a.passwordVar, nil
}

func emptyManifest() *Manifest {
	return &Manifest{
		Content: ModulesContent{
			EdgeAgent: EdgeAgentDesired{
				SchemaVersion: "1.1",
				Runtime:       Runtime{Type: "docker"},
				Modules:       map[string]Module{},
			},
			EdgeHub: EdgeHubDesired{
				SchemaVersion: "1.1",
				Routes:        map[string]string{},
			},
			Twins: map[string]map[string]any{},
		},
	}
}

func TestApplyInsertsModule(t *testing.T) {
	t.Parallel()

	alloc := &recordingAllocator{
		usernameVar:  "CONTAINER_REGISTRY_USERNAME_MYREG",
		passwordVar:  "CONTAINER_REGISTRY_PASSWORD_MYREG",
		insertedAddr: "myreg.azurecr.io",
	}
	mu := &Mutator{Allocator: alloc}
	m := emptyManifest()

	d := &descriptor.Descriptor{
		Name:           "FilterModule",
		Kind:           descriptor.KindCSharp,
		RepositoryName: "myreg.azurecr.io/filtermodule",
		Image:          "${MODULES.FilterModule}",
		DebugImage:     "${MODULES.FilterModule.debug}",
		CreateOptions:  map[string]any{},
	}

	vars, err := mu.Apply(m, d, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if vars.Username != alloc.usernameVar || vars.Password != alloc.passwordVar {
		t.Errorf("Apply() vars = %+v", vars)
	}
	if !alloc.called {
		t.Error("allocator was not consulted")
	}
	if alloc.repository != d.RepositoryName {
		t.Errorf("allocator repository = %q, want %q", alloc.repository, d.RepositoryName)
	}

	mod, ok := m.Content.EdgeAgent.Modules["FilterModule"]
	if !ok {
		t.Fatal("module entry missing")
	}
	if mod.Version != "1.0" || mod.Type != "docker" || mod.Status != "running" || mod.RestartPolicy != "always" {
		t.Errorf("module fixed fields = %+v", mod)
	}
	if mod.Settings.Image != "${MODULES.FilterModule}" {
		t.Errorf("module image = %q", mod.Settings.Image)
	}
	if mod.Settings.CreateOptions == nil {
		t.Error("createOptions must be an empty object, not null")
	}

	wantRoute := "FROM /messages/modules/FilterModule/outputs/* INTO $upstream"
	if got := m.Content.EdgeHub.Routes["FilterModuleToIoTHub"]; got != wantRoute {
		t.Errorf("upstream route = %q, want %q", got, wantRoute)
	}
	if _, ok := m.Content.EdgeHub.Routes["sensorToFilterModule"]; ok {
		t.Error("seed route added without Seed option")
	}
}

func TestApplyDebugVariant(t *testing.T) {
	t.Parallel()

	mu := &Mutator{Allocator: &recordingAllocator{}}
	m := emptyManifest()

	d := &descriptor.Descriptor{
		Name:               "NodeModule",
		Kind:               descriptor.KindNode,
		RepositoryName:     "localhost:5000/nodemodule",
		Image:              "${MODULES.NodeModule}",
		DebugImage:         "${MODULES.NodeModule.debug}",
		CreateOptions:      map[string]any{},
		DebugCreateOptions: map[string]any{"ExposedPorts": map[string]any{"9229/tcp": map[string]any{}}},
	}

	if _, err := mu.Apply(m, d, ApplyOptions{Debug: true}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	mod := m.Content.EdgeAgent.Modules["NodeModule"]
	if mod.Settings.Image != "${MODULES.NodeModule.debug}" {
		t.Errorf("debug image = %q", mod.Settings.Image)
	}
	if _, ok := mod.Settings.CreateOptions["ExposedPorts"]; !ok {
		t.Error("debug createOptions not applied")
	}
}

func TestApplySeedRoute(t *testing.T) {
	t.Parallel()

	mu := &Mutator{Allocator: &recordingAllocator{}}
	m := emptyManifest()

	d := &descriptor.Descriptor{
		Name:           "First",
		Kind:           descriptor.KindPython,
		RepositoryName: "localhost:5000/first",
		Image:          "${MODULES.First}",
	}
	if _, err := mu.Apply(m, d, ApplyOptions{Seed: true}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := `FROM /messages/modules/SimulatedTemperatureSensor/outputs/temperatureOutput INTO BrokeredEndpoint("/modules/First/inputs/input1")`
	if got := m.Content.EdgeHub.Routes["sensorToFirst"]; got != want {
		t.Errorf("seed route = %q, want %q", got, want)
	}
}

func TestApplyDuplicateModule(t *testing.T) {
	t.Parallel()

	alloc := &recordingAllocator{}
	mu := &Mutator{Allocator: alloc}
	m := emptyManifest()
	m.Content.EdgeAgent.Modules["Taken"] = Module{}

	d := &descriptor.Descriptor{Name: "Taken", Kind: descriptor.KindCSharp}
	_, err := mu.Apply(m, d, ApplyOptions{})

	var dup *DuplicateModuleError
	if !errors.As(err, &dup) {
		t.Fatalf("Apply() error = %v, want *DuplicateModuleError", err)
	}
	if dup.Name != "Taken" {
		t.Errorf("DuplicateModuleError.Name = %q", dup.Name)
	}
	if alloc.called {
		t.Error("allocator consulted despite duplicate rejection")
	}
	if len(m.Content.EdgeHub.Routes) != 0 {
		t.Error("routes mutated despite duplicate rejection")
	}
}

func TestApplyStreamingJobSkipsCredentials(t *testing.T) {
	t.Parallel()

	alloc := &recordingAllocator{}
	mu := &Mutator{Allocator: alloc}
	m := emptyManifest()

	d := &descriptor.Descriptor{
		Name:          "asaJob",
		Kind:          descriptor.KindStreamAnalytics,
		Image:         "mcr.microsoft.com/azure-stream-analytics/azureiotedge:1.0",
		CreateOptions: map[string]any{},
		Twin:          map[string]any{"ASAJobInfo": "https://example.invalid/job"},
	}
	vars, err := mu.Apply(m, d, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if alloc.called {
		t.Error("allocator consulted for a streaming-job module")
	}
	if vars.Username != "" || vars.Password != "" {
		t.Errorf("vars = %+v, want empty", vars)
	}

	twin, ok := m.Content.Twins["asaJob"]
	if !ok {
		t.Fatal("job twin not inserted")
	}
	desired, _ := twin["properties.desired"].(map[string]any)
	if desired["ASAJobInfo"] != "https://example.invalid/job" {
		t.Errorf("twin desired = %v", desired)
	}
}
