// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"fmt"
	"strings"

	"edgectl/internal/envfile"

	"github.com/charmbracelet/log"
)

// ManagedRegistrySuffix marks registries whose admin credentials can be
// fetched automatically.
const ManagedRegistrySuffix = ".azurecr.io"

type (
	// Credential is a literal username/password pair fetched from a
	// managed registry.
	Credential struct {
		Username string
		Password string
	}

	// AdminCredentialSource fetches the admin credential of a managed
	// registry. Implemented elsewhere (the default shells out to the
	// provider CLI); consumed here only by contract.
	AdminCredentialSource interface {
		AdminCredential(ctx context.Context, address string) (Credential, error)
	}

	// Vars are the environment-variable names allocated for one registry
	// credential entry. Zero value means no credentials were needed.
	Vars struct {
		Username string
		Password string
	}

	// Populator appends values for allocated credential variables to the
	// solution's env file. Appends are strictly additive: variables already
	// declared in the file are skipped, which also de-duplicates the
	// production and debug manifest passes of a single invocation.
	Populator struct {
		Source AdminCredentialSource
		Logger *log.Logger
	}
)

// Empty reports whether no variables were allocated.
func (v Vars) Empty() bool {
	return v.Username == "" && v.Password == ""
}

// CredentialFetchError reports a failed admin-credential fetch. It is
// non-fatal: the caller falls back to empty-valued declarations.
type CredentialFetchError struct {
	Address string
	Err     error
}

func (e *CredentialFetchError) Error() string {
	return fmt.Sprintf("failed to fetch admin credential for %s: %v", e.Address, e.Err)
}

func (e *CredentialFetchError) Unwrap() error {
	return e.Err
}

// Populate appends declarations for vars to the env file at envPath,
// creating the file when missing. For managed-registry addresses it attempts
// to fetch literal admin credentials; on fetch failure, or for any other
// address, it appends empty-valued declarations instead. It returns true
// when literal values were written, so the caller can tell the user whether
// the env file still needs editing.
func (p *Populator) Populate(ctx context.Context, envPath, address string, vars Vars) (bool, error) {
	if vars.Empty() {
		return false, nil
	}

	env, err := envfile.Load(envPath)
	if err != nil {
		return false, err
	}

	var missing []string
	for _, name := range []string{vars.Username, vars.Password} {
		if _, declared := env[name]; !declared {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	if cred, ok := p.fetch(ctx, address); ok {
		values := map[string]string{
			vars.Username: cred.Username,
			vars.Password: cred.Password,
		}
		pairs := make([]envfile.Pair, 0, len(missing))
		for _, name := range missing {
			pairs = append(pairs, envfile.Pair{Key: name, Value: values[name]})
		}
		if err := envfile.Append(envPath, pairs); err != nil {
			return false, err
		}
		return true, nil
	}

	pairs := make([]envfile.Pair, 0, len(missing))
	for _, name := range missing {
		pairs = append(pairs, envfile.Pair{Key: name})
	}
	if err := envfile.Append(envPath, pairs); err != nil {
		return false, err
	}
	return false, nil
}

// fetch attempts the managed-registry admin-credential lookup. Failures are
// logged, never surfaced as operation failures.
func (p *Populator) fetch(ctx context.Context, address string) (Credential, bool) {
	if p.Source == nil || !hasManagedSuffix(address) {
		return Credential{}, false
	}
	cred, err := p.Source.AdminCredential(ctx, address)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warn("could not fetch registry admin credential",
				"address", address, "error", err)
		}
		return Credential{}, false
	}
	return cred, true
}

func hasManagedSuffix(address string) bool {
	addr := Normalize(address)
	return strings.HasSuffix(addr, ManagedRegistrySuffix) && addr != ManagedRegistrySuffix
}
