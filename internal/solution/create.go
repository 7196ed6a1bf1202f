// SPDX-License-Identifier: MPL-2.0

package solution

import (
	"fmt"
	"os"
	"path/filepath"

	"edgectl/internal/manifest"
)

// Container images seeded into new solutions.
const (
	edgeAgentImage = "mcr.microsoft.com/azureiotedge-agent:1.5"
	edgeHubImage   = "mcr.microsoft.com/azureiotedge-hub:1.5"
	sensorImage    = "mcr.microsoft.com/azureiotedge-simulated-temperature-sensor:1.5"
)

const gitignoreContent = "# Solution secrets live in the env file.\n.env\n"

// Create scaffolds a new solution folder: the production and debug
// deployment templates (seeded with the simulated temperature sensor), an
// empty env file, a .gitignore covering it, and the modules directory.
// An existing solution in dir is rejected before anything is written.
func Create(dir string) (*Solution, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(abs, DeploymentTemplate)); err == nil {
		return nil, fmt.Errorf("a solution already exists at %s", abs)
	}

	if err := os.MkdirAll(filepath.Join(abs, ModulesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create solution directory: %w", err)
	}

	seed := seedManifest()
	if err := manifest.Save(filepath.Join(abs, DeploymentTemplate), seed); err != nil {
		return nil, err
	}
	if err := manifest.Save(filepath.Join(abs, DeploymentDebugTemplate), seedManifest()); err != nil {
		return nil, err
	}

	if err := os.WriteFile(filepath.Join(abs, EnvFileName), nil, 0o644); err != nil {
		return nil, fmt.Errorf("failed to create env file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(abs, ".gitignore"), []byte(gitignoreContent), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create .gitignore: %w", err)
	}

	return &Solution{Dir: abs}, nil
}

// seedManifest builds the template both deployment variants start from.
func seedManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Content: manifest.ModulesContent{
			EdgeAgent: manifest.EdgeAgentDesired{
				SchemaVersion: "1.1",
				Runtime: manifest.Runtime{
					Type: "docker",
					Settings: manifest.RuntimeSettings{
						MinDockerVersion:    "v1.25",
						RegistryCredentials: map[string]manifest.RegistryCredential{},
					},
				},
				SystemModules: map[string]any{
					"edgeAgent": map[string]any{
						"type": "docker",
						"settings": map[string]any{
							"image":         edgeAgentImage,
							"createOptions": map[string]any{},
						},
					},
					"edgeHub": map[string]any{
						"type":          "docker",
						"status":        "running",
						"restartPolicy": "always",
						"settings": map[string]any{
							"image": edgeHubImage,
							"createOptions": map[string]any{
								"HostConfig": map[string]any{
									"PortBindings": map[string]any{
										"5671/tcp": []any{map[string]any{"HostPort": "5671"}},
										"8883/tcp": []any{map[string]any{"HostPort": "8883"}},
										"443/tcp":  []any{map[string]any{"HostPort": "443"}},
									},
								},
							},
						},
					},
				},
				Modules: map[string]manifest.Module{
					manifest.SensorModuleName: {
						Version:       "1.0",
						Type:          "docker",
						Status:        "running",
						RestartPolicy: "always",
						Settings: manifest.ModuleSettings{
							Image:         sensorImage,
							CreateOptions: map[string]any{},
						},
					},
				},
			},
			EdgeHub: manifest.EdgeHubDesired{
				SchemaVersion: "1.1",
				Routes:        map[string]string{},
				StoreAndForwardConfiguration: map[string]any{
					"timeToLiveSecs": 7200,
				},
			},
			Twins: map[string]map[string]any{},
		},
	}
}
