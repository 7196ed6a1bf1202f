// SPDX-License-Identifier: MPL-2.0

package launchcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Merge appends cfg's configurations into the launch document at path,
// creating it (and its parent directory) when absent. Existing entries are
// preserved. The document may contain comments when read; they are stripped
// before parsing and not preserved on rewrite.
func Merge(path string, cfg *LaunchConfig) error {
	doc := LaunchConfig{Version: "0.2.0"}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		standardized, err := hujson.Standardize(raw)
		if err != nil {
			return fmt.Errorf("failed to parse launch configuration %s: %w", path, err)
		}
		if err := json.Unmarshal(standardized, &doc); err != nil {
			return fmt.Errorf("failed to parse launch configuration %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Start a fresh document.
	default:
		return fmt.Errorf("failed to read launch configuration %s: %w", path, err)
	}

	doc.Configurations = append(doc.Configurations, cfg.Configurations...)
	if doc.Version == "" {
		doc.Version = cfg.Version
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode launch configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create launch configuration directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write launch configuration: %w", err)
	}
	return nil
}
