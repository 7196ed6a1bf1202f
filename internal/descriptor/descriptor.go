// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder tokens recognized in scaffold command patterns. Third-party
// templates prompt for a repository only when their pattern contains
// TokenRepository.
const (
	TokenModuleName = "%MODULE_NAME%"
	TokenRepository = "%REPOSITORY%"
	TokenGroupID    = "%GROUP_ID%"
)

// Descriptor is the resolved result of a module template selection.
// It is immutable after Build.
type Descriptor struct {
	Name           string
	Kind           Kind
	RepositoryName string

	// Image and DebugImage are either concrete image references or
	// ${MODULES.<name>} placeholders resolved at build time by the edge
	// tooling.
	Image      string
	DebugImage string

	CreateOptions      map[string]any
	DebugCreateOptions map[string]any

	// Twin is the module's desired twin content, when the template
	// provides one.
	Twin map[string]any

	// GroupID is the JVM group identifier (Java templates only).
	GroupID string

	// Command is the scaffold command pattern (custom templates only).
	Command string
}

// moduleNameRegex matches valid module names: start with a letter or digit,
// then letters, digits, dots, underscores or hyphens.
var moduleNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateName checks a module name against the naming rules.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}
	if !moduleNameRegex.MatchString(name) {
		return fmt.Errorf("module name %q is invalid: must start with a letter or digit and contain only letters, digits, dots, underscores, or hyphens", name)
	}
	return nil
}

// ImagePlaceholder returns the manifest variable reference for a module's
// production image.
func ImagePlaceholder(name string) string {
	return fmt.Sprintf("${MODULES.%s}", name)
}

// DebugImagePlaceholder returns the manifest variable reference for a
// module's debug image.
func DebugImagePlaceholder(name string) string {
	return fmt.Sprintf("${MODULES.%s.debug}", name)
}

// TrimReference strips the tag or digest suffix from an image reference,
// yielding the repository name. The registry port colon is left intact.
//
//	myregistry.azurecr.io/sensor:0.0.1     -> myregistry.azurecr.io/sensor
//	localhost:5000/sensor                  -> localhost:5000/sensor
//	reg.io/app@sha256:abcd                 -> reg.io/app
func TrimReference(ref string) string {
	if at := strings.Index(ref, "@"); at != -1 {
		ref = ref[:at]
	}
	lastColon := strings.LastIndex(ref, ":")
	lastSlash := strings.LastIndex(ref, "/")
	if lastColon > lastSlash {
		ref = ref[:lastColon]
	}
	return ref
}
