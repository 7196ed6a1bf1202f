// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"testing"

	"edgectl/internal/envfile"
	"edgectl/internal/manifest"
)

func TestReconcileAllocates(t *testing.T) {
	t.Parallel()

	creds := map[string]manifest.RegistryCredential{}
	username, password, err := Reconciler{}.Reconcile("MyRegistry.azurecr.io/filtermodule", creds, envfile.Env{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if username != "CONTAINER_REGISTRY_USERNAME_MYREGISTRY" {
		t.Errorf("username var = %q", username)
	}
	if password != "CONTAINER_REGISTRY_PASSWORD_MYREGISTRY" {
		t.Errorf("password var = %q", password)
	}

	entry, ok := creds["myregistry"]
	if !ok {
		t.Fatalf("creds keys = %v, want myregistry", keys(creds))
	}
	if entry.Address != "myregistry.azurecr.io" {
		t.Errorf("entry address = %q", entry.Address)
	}
	if entry.Username != "$CONTAINER_REGISTRY_USERNAME_MYREGISTRY" {
		t.Errorf("entry username = %q, want a $VAR reference", entry.Username)
	}
	if entry.Password != "$CONTAINER_REGISTRY_PASSWORD_MYREGISTRY" {
		t.Errorf("entry password = %q, want a $VAR reference", entry.Password)
	}
}

func TestReconcileLocalRegistry(t *testing.T) {
	t.Parallel()

	for _, repo := range []string{
		"localhost:5000/module",
		"LOCALHOST:5000/module",
		"localhost/module",
	} {
		creds := map[string]manifest.RegistryCredential{}
		username, password, err := Reconciler{}.Reconcile(repo, creds, envfile.Env{})
		if err != nil {
			t.Fatalf("Reconcile(%q) error = %v", repo, err)
		}
		if username != "" || password != "" || len(creds) != 0 {
			t.Errorf("Reconcile(%q) allocated credentials for a local registry", repo)
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	t.Parallel()

	creds := map[string]manifest.RegistryCredential{}
	env := envfile.Env{}
	if _, _, err := (Reconciler{}).Reconcile("myreg.azurecr.io/a", creds, env); err != nil {
		t.Fatal(err)
	}

	// Same registry, different repository: existing entry matches, no-op.
	username, password, err := Reconciler{}.Reconcile("MYREG.azurecr.io/b", creds, env)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if username != "" || password != "" {
		t.Errorf("second Reconcile allocated vars %q, %q", username, password)
	}
	if len(creds) != 1 {
		t.Errorf("creds grew to %d entries", len(creds))
	}
}

func TestReconcileExpandsExistingAddresses(t *testing.T) {
	t.Parallel()

	// Hand-written manifests may template the address itself.
	creds := map[string]manifest.RegistryCredential{
		"main": {Username: "$U", Password: "$P", Address: "$REGISTRY_ADDRESS"},
	}
	env := envfile.Env{"REGISTRY_ADDRESS": "myreg.azurecr.io"}

	username, _, err := Reconciler{}.Reconcile("myreg.azurecr.io/mod", creds, env)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if username != "" {
		t.Error("Reconcile did not resolve the templated address against the env")
	}
	if len(creds) != 1 {
		t.Errorf("creds = %v, want untouched", keys(creds))
	}
}

func TestReconcileKeyCollision(t *testing.T) {
	t.Parallel()

	creds := map[string]manifest.RegistryCredential{}
	env := envfile.Env{}

	// Two distinct registries sharing a first DNS label.
	if _, _, err := (Reconciler{}).Reconcile("shop.example.com/a", creds, env); err != nil {
		t.Fatal(err)
	}
	username, _, err := Reconciler{}.Reconcile("shop.other.io/b", creds, env)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if username != "CONTAINER_REGISTRY_USERNAME_SHOP_2" {
		t.Errorf("collision username var = %q, want _2 suffix", username)
	}
	if _, ok := creds["shop_2"]; !ok {
		t.Errorf("creds keys = %v, want shop_2", keys(creds))
	}
}

func TestAddressOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		repo string
		want string
	}{
		{"myreg.azurecr.io/module", "myreg.azurecr.io"},
		{"localhost:5000/module", "localhost:5000"},
		{"localhost/module", "localhost"},
		{"library/nginx", "docker.io"},
		{"nginx", "docker.io"},
		{"Registry.Example.COM/app", "registry.example.com"},
	}
	for _, tt := range tests {
		if got := AddressOf(tt.repo); got != tt.want {
			t.Errorf("AddressOf(%q) = %q, want %q", tt.repo, got, tt.want)
		}
	}
}

func keys(creds map[string]manifest.RegistryCredential) []string {
	out := make([]string, 0, len(creds))
	for k := range creds {
		out = append(out, k)
	}
	return out
}
