// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// legacyContentKey is the pre-current schema name for modulesContent; Load
// transparently migrates it.
const legacyContentKey = "moduleContent"

// Load reads a deployment manifest from disk, normalizing any older known
// schema shape to the current one. It fails with *MalformedError when the
// file is not valid JSON or lacks the required sections.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		var me *MalformedError
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes a deployment manifest document.
func Parse(data []byte) (*Manifest, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &MalformedError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	contentRaw, ok := top["modulesContent"]
	if !ok {
		// Older schema shape used the singular key.
		if contentRaw, ok = top[legacyContentKey]; !ok {
			return nil, &MalformedError{Reason: "missing required key 'modulesContent'"}
		}
		delete(top, legacyContentKey)
	}
	delete(top, "modulesContent")

	content, err := parseModulesContent(contentRaw)
	if err != nil {
		return nil, err
	}

	return &Manifest{Content: *content, rest: top}, nil
}

func parseModulesContent(raw json.RawMessage) (*ModulesContent, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, &MalformedError{Reason: fmt.Sprintf("modulesContent is not an object: %v", err)}
	}

	mc := &ModulesContent{Twins: map[string]map[string]any{}}

	agentRaw, ok := sections[edgeAgentKey]
	if !ok {
		return nil, &MalformedError{Reason: "missing required section 'modulesContent.$edgeAgent'"}
	}
	if err := parseDesired(agentRaw, edgeAgentKey, &mc.EdgeAgent); err != nil {
		return nil, err
	}
	if mc.EdgeAgent.Modules == nil {
		mc.EdgeAgent.Modules = map[string]Module{}
	}

	hubRaw, ok := sections[edgeHubKey]
	if !ok {
		return nil, &MalformedError{Reason: "missing required section 'modulesContent.$edgeHub'"}
	}
	if err := parseDesired(hubRaw, edgeHubKey, &mc.EdgeHub); err != nil {
		return nil, err
	}
	if mc.EdgeHub.Routes == nil {
		mc.EdgeHub.Routes = map[string]string{}
	}

	for name, twinRaw := range sections {
		if name == edgeAgentKey || name == edgeHubKey {
			continue
		}
		var twin map[string]any
		if err := json.Unmarshal(twinRaw, &twin); err != nil {
			return nil, &MalformedError{Reason: fmt.Sprintf("twin section %q is not an object: %v", name, err)}
		}
		mc.Twins[name] = twin
	}

	return mc, nil
}

// parseDesired unwraps the "properties.desired" bag of a system twin into dst.
func parseDesired(raw json.RawMessage, section string, dst any) error {
	var twin map[string]json.RawMessage
	if err := json.Unmarshal(raw, &twin); err != nil {
		return &MalformedError{Reason: fmt.Sprintf("section %q is not an object: %v", section, err)}
	}
	desired, ok := twin[desiredKey]
	if !ok {
		return &MalformedError{Reason: fmt.Sprintf("section %q lacks %q", section, desiredKey)}
	}
	if err := json.Unmarshal(desired, dst); err != nil {
		return &MalformedError{Reason: fmt.Sprintf("section %q has an invalid %q: %v", section, desiredKey, err)}
	}
	return nil
}

// Save serializes the manifest with stable key ordering and 2-space
// indentation and overwrites the file in full. The write is atomic only to
// the extent the underlying filesystem write is.
func Save(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write deployment manifest: %w", err)
	}
	return nil
}

// Encode renders the manifest document. encoding/json sorts object keys,
// which gives the stable ordering the on-disk format requires.
func Encode(m *Manifest) ([]byte, error) {
	sections := map[string]any{
		edgeAgentKey: map[string]any{desiredKey: m.Content.EdgeAgent},
		edgeHubKey:   map[string]any{desiredKey: m.Content.EdgeHub},
	}
	for name, twin := range m.Content.Twins {
		sections[name] = twin
	}

	top := map[string]any{"modulesContent": sections}
	for k, v := range m.rest {
		top[k] = v
	}

	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode deployment manifest: %w", err)
	}
	return append(data, '\n'), nil
}
