// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// AzCLISource fetches managed-registry admin credentials by shelling out to
// the provider CLI (`az acr credential show`). A registry without
// admin-enabled credentials, a missing CLI, or malformed output all surface
// as *CredentialFetchError, which callers treat as non-fatal.
type AzCLISource struct {
	// Binary overrides the CLI executable name (default "az").
	Binary string
}

var _ AdminCredentialSource = (*AzCLISource)(nil)

// AdminCredential implements AdminCredentialSource.
func (s *AzCLISource) AdminCredential(ctx context.Context, address string) (Credential, error) {
	binary := s.Binary
	if binary == "" {
		binary = "az"
	}

	// "myregistry.azurecr.io" -> "myregistry"
	name, _, _ := strings.Cut(Normalize(address), ".")

	cmd := exec.CommandContext(ctx, binary,
		"acr", "credential", "show", "--name", name, "--output", "json")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Credential{}, &CredentialFetchError{
			Address: address,
			Err:     fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	var payload struct {
		Username  string `json:"username"`
		Passwords []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"passwords"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return Credential{}, &CredentialFetchError{Address: address, Err: err}
	}
	if payload.Username == "" || len(payload.Passwords) == 0 {
		return Credential{}, &CredentialFetchError{
			Address: address,
			Err:     fmt.Errorf("registry has no admin-enabled credentials"),
		}
	}

	return Credential{
		Username: payload.Username,
		Password: payload.Passwords[0].Value,
	}, nil
}
