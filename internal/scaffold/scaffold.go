// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edgectl/internal/descriptor"

	"mvdan.cc/sh/v3/shell"
)

// commandPatterns maps scaffolded kinds to their generator invocation.
// Placeholders are expanded per descriptor before shell-word splitting.
var commandPatterns = map[descriptor.Kind]string{
	descriptor.KindC:          `git clone https://github.com/Azure/azure-iot-edge-c-module.git %MODULE_NAME%`,
	descriptor.KindCSharp:     `dotnet new aziotedgemodule -n %MODULE_NAME% -r %REPOSITORY%`,
	descriptor.KindCSharpFunc: `dotnet new aziotedgefunction -n %MODULE_NAME% -r %REPOSITORY%`,
	descriptor.KindNode:       `yo azure-iot-edge-module -n %MODULE_NAME% -r %REPOSITORY%`,
	descriptor.KindPython:     `cookiecutter --no-input https://github.com/Azure/cookiecutter-template-azure-iot-edge-module module_name=%MODULE_NAME% image_repository=%REPOSITORY%`,
	descriptor.KindJava:       `mvn archetype:generate -B -DarchetypeGroupId=com.microsoft.azure -DarchetypeArtifactId=azure-iot-edge-archetype -DgroupId=%GROUP_ID% -DartifactId=%MODULE_NAME% -Drepository=%REPOSITORY%`,
}

// DuplicateFileError reports that the module's target folder already exists.
// It is raised before any file is written or any manifest is mutated.
type DuplicateFileError struct {
	Path string
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("module folder already exists: %s", e.Path)
}

// CheckTarget validates that a module folder can be created under
// modulesDir. Non-scaffolded kinds always pass.
func CheckTarget(modulesDir string, d *descriptor.Descriptor) error {
	if !d.Kind.Scaffolded() {
		return nil
	}
	target := filepath.Join(modulesDir, d.Name)
	if _, err := os.Stat(target); err == nil {
		return &DuplicateFileError{Path: target}
	}
	return nil
}

// Generate runs the module generator for the descriptor inside modulesDir.
// The directory is created first when missing. Non-scaffolded kinds are
// no-ops.
func Generate(ctx context.Context, executor Executor, modulesDir string, d *descriptor.Descriptor) error {
	if !d.Kind.Scaffolded() {
		return nil
	}
	if err := CheckTarget(modulesDir, d); err != nil {
		return err
	}
	if err := os.MkdirAll(modulesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create modules directory: %w", err)
	}

	pattern := d.Command
	if pattern == "" {
		pattern = commandPatterns[d.Kind]
	}
	if pattern == "" {
		return fmt.Errorf("no scaffold command registered for %s", d.Kind)
	}

	name, args, err := splitCommand(expandTokens(pattern, d))
	if err != nil {
		return err
	}
	if err := executor.Run(ctx, modulesDir, name, args...); err != nil {
		return err
	}

	// Template clones carry their upstream git history; drop it so the
	// module starts clean inside the solution repository.
	if d.Kind == descriptor.KindC {
		_ = os.RemoveAll(filepath.Join(modulesDir, d.Name, ".git"))
	}
	return nil
}

func expandTokens(pattern string, d *descriptor.Descriptor) string {
	expanded := strings.ReplaceAll(pattern, descriptor.TokenModuleName, d.Name)
	expanded = strings.ReplaceAll(expanded, descriptor.TokenRepository, d.RepositoryName)
	expanded = strings.ReplaceAll(expanded, descriptor.TokenGroupID, d.GroupID)
	return expanded
}

// splitCommand splits a command line into argv using shell word rules, so
// quoted arguments in user-supplied template commands survive intact.
func splitCommand(cmdline string) (string, []string, error) {
	fields, err := shell.Fields(cmdline, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid scaffold command %q: %w", cmdline, err)
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty scaffold command")
	}
	return fields[0], fields[1:], nil
}
