// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"edgectl/internal/envfile"
)

type fakeSource struct {
	cred  Credential
	err   error
	calls int
}

func (f *fakeSource) AdminCredential(_ context.Context, address string) (Credential, error) {
	f.calls++
	if f.err != nil {
		return Credential{}, f.err
	}
	return f.cred, nil
}

func TestPopulateManagedRegistry(t *testing.T) {
	t.Parallel()

	source := &fakeSource{cred: Credential{Username: "admin", Password: "s3cret"}}
	p := &Populator{Source: source}
	envPath := filepath.Join(t.TempDir(), ".env")

	auto, err := p.Populate(context.Background(), envPath, "myreg.azurecr.io",
		Vars{Username: "CONTAINER_REGISTRY_USERNAME_MYREG", Password: "CONTAINER_REGISTRY_PASSWORD_MYREG"})
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if !auto {
		t.Error("Populate() = false, want auto-filled")
	}

	env, err := envfile.Load(envPath)
	if err != nil {
		t.Fatal(err)
	}
	if env["CONTAINER_REGISTRY_USERNAME_MYREG"] != "admin" {
		t.Errorf("username value = %q", env["CONTAINER_REGISTRY_USERNAME_MYREG"])
	}
	if env["CONTAINER_REGISTRY_PASSWORD_MYREG"] != "s3cret" {
		t.Errorf("password value = %q", env["CONTAINER_REGISTRY_PASSWORD_MYREG"])
	}
}

func TestPopulateUnmanagedRegistry(t *testing.T) {
	t.Parallel()

	source := &fakeSource{cred: Credential{Username: "x", Password: "y"}}
	p := &Populator{Source: source}
	envPath := filepath.Join(t.TempDir(), ".env")

	auto, err := p.Populate(context.Background(), envPath, "registry.example.com",
		Vars{Username: "U", Password: "P"})
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if auto {
		t.Error("Populate() auto-filled an unmanaged registry")
	}
	if source.calls != 0 {
		t.Error("credential source consulted for an unmanaged registry")
	}

	env, err := envfile.Load(envPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"U", "P"} {
		if value, declared := env[name]; !declared || value != "" {
			t.Errorf("env[%s] = %q, %v; want empty declaration", name, value, declared)
		}
	}
}

func TestPopulateFetchFailureFallsBack(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: &CredentialFetchError{Address: "myreg.azurecr.io", Err: fmt.Errorf("admin user disabled")}}
	p := &Populator{Source: source}
	envPath := filepath.Join(t.TempDir(), ".env")

	auto, err := p.Populate(context.Background(), envPath, "myreg.azurecr.io", Vars{Username: "U", Password: "P"})
	if err != nil {
		t.Fatalf("Populate() error = %v, fetch failures must be non-fatal", err)
	}
	if auto {
		t.Error("Populate() reported auto-fill despite fetch failure")
	}

	env, err := envfile.Load(envPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, declared := env["U"]; !declared {
		t.Error("username variable not declared after fetch failure")
	}
}

func TestPopulateSkipsDeclaredVariables(t *testing.T) {
	t.Parallel()

	envPath := filepath.Join(t.TempDir(), ".env")
	if err := envfile.Append(envPath, []envfile.Pair{
		{Key: "U", Value: "keepme"},
		{Key: "P", Value: ""},
	}); err != nil {
		t.Fatal(err)
	}

	source := &fakeSource{cred: Credential{Username: "new", Password: "new"}}
	p := &Populator{Source: source}

	auto, err := p.Populate(context.Background(), envPath, "myreg.azurecr.io", Vars{Username: "U", Password: "P"})
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if auto {
		t.Error("Populate() rewrote declared variables")
	}
	if source.calls != 0 {
		t.Error("credential source consulted although nothing was missing")
	}

	env, err := envfile.Load(envPath)
	if err != nil {
		t.Fatal(err)
	}
	if env["U"] != "keepme" {
		t.Errorf("env[U] = %q, existing value must survive", env["U"])
	}
}

func TestPopulateNoVars(t *testing.T) {
	t.Parallel()

	p := &Populator{}
	envPath := filepath.Join(t.TempDir(), ".env")

	auto, err := p.Populate(context.Background(), envPath, "myreg.azurecr.io", Vars{})
	if err != nil || auto {
		t.Errorf("Populate() = %v, %v; want no-op", auto, err)
	}
}
