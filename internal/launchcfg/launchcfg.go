// SPDX-License-Identifier: MPL-2.0

// Package launchcfg generates debugger launch configurations for scaffolded
// modules and merges them into the workspace's launch document without
// disturbing existing entries.
package launchcfg

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"edgectl/internal/descriptor"
)

//go:embed templates/*.json
var templates embed.FS

// Placeholder tokens substituted into the embedded launch templates.
const (
	tokenModuleName   = "%MODULE_NAME%"
	tokenModuleFolder = "%MODULE_FOLDER%"
)

// LaunchConfig is a debugger launch document: a version marker and a list of
// configuration objects.
type LaunchConfig struct {
	Version        string           `json:"version"`
	Configurations []map[string]any `json:"configurations"`
}

// templateFiles maps template-bearing kinds to their embedded template. The
// functions variant shares the .NET template; Generate filters it down to
// attach-style entries because functions are attached to, never launched.
var templateFiles = map[descriptor.Kind]string{
	descriptor.KindC:          "templates/c.json",
	descriptor.KindCSharp:     "templates/csharp.json",
	descriptor.KindCSharpFunc: "templates/csharp.json",
	descriptor.KindNode:       "templates/node.json",
	descriptor.KindPython:     "templates/python.json",
	descriptor.KindJava:       "templates/java.json",
}

// Generate produces the launch configuration for a module, substituting the
// module name and its workspace folder into the language template. It
// returns nil for kinds with no debug template (streaming-job and
// image-reference modules).
func Generate(kind descriptor.Kind, moduleName string) (*LaunchConfig, error) {
	file, ok := templateFiles[kind]
	if !ok {
		return nil, nil
	}

	raw, err := templates.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch template for %s: %w", kind, err)
	}

	folder := "${workspaceFolder}/modules/" + moduleName
	text := strings.ReplaceAll(string(raw), tokenModuleName, moduleName)
	text = strings.ReplaceAll(text, tokenModuleFolder, folder)

	var cfg LaunchConfig
	if err := json.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse launch template for %s: %w", kind, err)
	}

	if kind == descriptor.KindCSharpFunc {
		attachOnly := cfg.Configurations[:0]
		for _, entry := range cfg.Configurations {
			if request, _ := entry["request"].(string); request != "launch" {
				attachOnly = append(attachOnly, entry)
			}
		}
		cfg.Configurations = attachOnly
	}

	return &cfg, nil
}
