// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"strings"

	"edgectl/internal/envfile"
	"edgectl/internal/manifest"
)

const (
	usernameVarPrefix = "CONTAINER_REGISTRY_USERNAME_"
	passwordVarPrefix = "CONTAINER_REGISTRY_PASSWORD_"
)

// Reconciler decides whether a target registry address already has matching
// credentials in a manifest's registry-credentials map and, if not, inserts
// a templated entry referencing freshly allocated environment variables.
// It mutates only the in-memory map; the environment file is populated
// separately by Populator.
type Reconciler struct{}

// Reconcile implements manifest.CredentialAllocator. The returned variable
// names are empty when no credentials are needed: local registries and
// addresses that already have an entry (after expanding $VAR references
// against the loaded env) are both no-ops, making re-adding a module that
// targets a known registry idempotent.
func (Reconciler) Reconcile(repository string, creds map[string]manifest.RegistryCredential, env envfile.Env) (usernameVar, passwordVar string, err error) {
	address := AddressOf(repository)
	if IsLocal(address) {
		return "", "", nil
	}

	for _, entry := range creds {
		if Normalize(envfile.Expand(entry.Address, env)) == address {
			return "", "", nil
		}
	}

	key := allocateKey(address, creds)
	usernameVar = usernameVarPrefix + strings.ToUpper(key)
	passwordVar = passwordVarPrefix + strings.ToUpper(key)

	creds[key] = manifest.RegistryCredential{
		Username: "$" + usernameVar,
		Password: "$" + passwordVar,
		Address:  address,
	}
	return usernameVar, passwordVar, nil
}

// allocateKey derives a map key from the address that does not collide with
// any existing key, compared case-insensitively.
func allocateKey(address string, creds map[string]manifest.RegistryCredential) string {
	base := keyFor(address)

	taken := func(candidate string) bool {
		for existing := range creds {
			if strings.EqualFold(existing, candidate) {
				return true
			}
		}
		return false
	}

	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
