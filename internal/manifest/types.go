// SPDX-License-Identifier: MPL-2.0

// Package manifest models the deployment template document: the JSON file
// describing the desired state of module containers and message routes on an
// edge device. Only the sections this tool mutates are typed; everything else
// is preserved verbatim across a load/save round trip.
package manifest

import (
	"encoding/json"
	"fmt"
)

const (
	// desiredKey is the literal twin property bag key used by the
	// deployment schema.
	desiredKey = "properties.desired"

	edgeAgentKey = "$edgeAgent"
	edgeHubKey   = "$edgeHub"
)

type (
	// Manifest is a deployment template document. Top-level keys other
	// than modulesContent are preserved untouched.
	Manifest struct {
		Content ModulesContent

		// rest holds unrecognized top-level fields, round-tripped verbatim.
		rest map[string]json.RawMessage
	}

	// ModulesContent is the modulesContent section: the $edgeAgent and
	// $edgeHub system twins plus per-module twin sections keyed by module
	// name.
	ModulesContent struct {
		EdgeAgent EdgeAgentDesired
		EdgeHub   EdgeHubDesired

		// Twins maps module names to their desired twin content.
		Twins map[string]map[string]any
	}

	// EdgeAgentDesired is $edgeAgent["properties.desired"].
	EdgeAgentDesired struct {
		SchemaVersion string            `json:"schemaVersion,omitempty"`
		Runtime       Runtime           `json:"runtime"`
		SystemModules map[string]any    `json:"systemModules,omitempty"`
		Modules       map[string]Module `json:"modules"`
	}

	// Runtime is the edge agent's container runtime section.
	Runtime struct {
		Type     string          `json:"type,omitempty"`
		Settings RuntimeSettings `json:"settings"`
	}

	// RuntimeSettings holds runtime-wide settings, most importantly the
	// registry credentials map. At most one entry exists per distinct
	// registry address within a single manifest.
	RuntimeSettings struct {
		MinDockerVersion    string                        `json:"minDockerVersion,omitempty"`
		LoggingOptions      string                        `json:"loggingOptions,omitempty"`
		RegistryCredentials map[string]RegistryCredential `json:"registryCredentials,omitempty"`
	}

	// RegistryCredential is one registry login entry. Username and password
	// are $VAR references into the solution's env file, never literal
	// secrets.
	RegistryCredential struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Address  string `json:"address"`
	}

	// Module is one entry of the edge agent's modules map.
	Module struct {
		Version       string         `json:"version"`
		Type          string         `json:"type"`
		Status        string         `json:"status"`
		RestartPolicy string         `json:"restartPolicy"`
		Settings      ModuleSettings `json:"settings"`
	}

	// ModuleSettings is the container image and create options of a module.
	ModuleSettings struct {
		Image         string         `json:"image"`
		CreateOptions map[string]any `json:"createOptions"`
	}

	// EdgeHubDesired is $edgeHub["properties.desired"].
	EdgeHubDesired struct {
		SchemaVersion                string            `json:"schemaVersion,omitempty"`
		Routes                       map[string]string `json:"routes"`
		StoreAndForwardConfiguration map[string]any    `json:"storeAndForwardConfiguration,omitempty"`
	}
)

// MalformedError reports a manifest that is not valid JSON or lacks a
// required schema section.
type MalformedError struct {
	Path   string // file path, when known
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed deployment manifest %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("malformed deployment manifest: %s", e.Reason)
}

// DuplicateModuleError reports an attempt to add a module whose name is
// already present in the manifest. It is raised before any mutation occurs.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q already exists in the deployment manifest", e.Name)
}
