// SPDX-License-Identifier: MPL-2.0

package solution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"edgectl/internal/envfile"
	"edgectl/internal/manifest"
)

// EnvReport lists the credential variables a manifest references that the
// env file does not resolve.
type EnvReport struct {
	File       string
	Unresolved []string
}

// CheckEnv inspects the solution's deployment manifests for registry
// credentials whose $VAR references the env file cannot resolve. It backs
// the workspace-open check that prompts the user to fill in the env file.
func CheckEnv(sol *Solution) ([]EnvReport, error) {
	env, err := envfile.Load(sol.EnvPath())
	if err != nil {
		return nil, err
	}

	var reports []EnvReport
	for _, path := range []string{sol.TemplatePath(), filepath.Join(sol.Dir, DeploymentDebugTemplate)} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		creds := m.Content.EdgeAgent.Runtime.Settings.RegistryCredentials
		if len(creds) == 0 {
			continue
		}
		text, err := json.Marshal(creds)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect registry credentials: %w", err)
		}
		if names := envfile.UnresolvedNames(string(text), env); len(names) > 0 {
			reports = append(reports, EnvReport{
				File:       filepath.Base(path),
				Unresolved: names,
			})
		}
	}
	return reports, nil
}
